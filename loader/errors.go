package loader

import "errors"

var (
	ErrSchemeUnsupported  = errors.New("unsupported scheme")
	ErrModuleNotAvailable = errors.New("module not available")
	ErrInputEmpty         = errors.New("input is empty")
	ErrLoaderNil          = errors.New("loader is nil")
)
