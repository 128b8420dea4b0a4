// Package bridge implements the host side of the guest logging contract.
//
// A guest module imports a single host function:
//
//	(import "env" "console_log_ex" (func (param i32 i32)))
//
// and calls it with a (location, size) pair naming a byte range of its own linear
// memory. The bridge reads exactly that range from the memory exported as "memory",
// decodes it as UTF-8 and writes the text as one entry to a Sink.
//
// Memory may have grown, and been reallocated, since instantiation, so every call
// reads the memory afresh and bounds checks against its current size. A range that
// runs past the end of memory fails with ErrOutOfBounds and logs nothing; when the
// failure happens inside a guest call the call is aborted and the error surfaces
// from the wazero call that triggered it.
package bridge
