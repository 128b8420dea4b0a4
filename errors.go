package wasmbridge

import (
	"errors"

	"github.com/robbyt/go-wasmbridge/bridge"
	"github.com/robbyt/go-wasmbridge/compiler"
)

var (
	// ErrLoadFailed wraps failures to fetch module bytes.
	ErrLoadFailed = errors.New("module load failed")
	ErrNoInstance = errors.New("no module instance loaded")
	ErrHostClosed = errors.New("host is closed")

	// ErrCompileFailed wraps failures to compile, link or instantiate a module.
	ErrCompileFailed = compiler.ErrCompileFailed
	// ErrOutOfBounds is returned when a guest logs a range outside its memory.
	ErrOutOfBounds = bridge.ErrOutOfBounds
)
