package bridge

import "errors"

var (
	// ErrOutOfBounds means a logging range does not lie inside the guest's memory.
	ErrOutOfBounds = errors.New("logging range out of memory bounds")
	// ErrNoMemory means the guest has no exported memory to read a logging range from.
	ErrNoMemory = errors.New("module exports no linear memory")
)
