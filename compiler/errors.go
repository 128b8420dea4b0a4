package compiler

import "errors"

var (
	// ErrCompileFailed is the class of every failure to turn bytes into a running
	// instance. The more specific errors below are always paired with it.
	ErrCompileFailed = errors.New("wasm compile failed")

	// ErrReadFailed means the module bytes could not be read from the reader
	// given to Compile. It is not paired with ErrCompileFailed.
	ErrReadFailed = errors.New("failed to read module")

	ErrContentNil        = errors.New("wasm content is nil")
	ErrInvalidBinary     = errors.New("invalid wasm binary")
	ErrImportMismatch    = errors.New("module imports do not match the import table")
	ErrMissingExport     = errors.New("module is missing a required export")
	ErrInstantiateFailed = errors.New("wasm instantiation failed")

	ErrExportNotFound   = errors.New("export not found")
	ErrExportSignature  = errors.New("export has an unexpected signature")
	ErrExecutableClosed = errors.New("executable is closed")
	ErrInstanceClosed   = errors.New("instance is closed")
)
