package bridge

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Memory is the part of api.Memory the bridge reads through.
type Memory interface {
	// Size returns the current size in bytes.
	Size() uint32
	// Read returns a view of byteCount bytes at offset, or false if out of range.
	Read(offset, byteCount uint32) ([]byte, bool)
}

// View returns the bytes in [location, location+size) of mem without copying.
// The view aliases guest memory and holds only until the guest runs again or
// memory grows.
func View(mem Memory, location, size uint32) ([]byte, error) {
	if mem == nil {
		return nil, ErrNoMemory
	}

	memSize := mem.Size()
	end := uint64(location) + uint64(size)
	if end > uint64(memSize) {
		return nil, fmt.Errorf("%w: range [%d, %d) exceeds memory size %d",
			ErrOutOfBounds, location, end, memSize)
	}

	view, ok := mem.Read(location, size)
	if !ok {
		return nil, fmt.Errorf("%w: range [%d, %d) exceeds memory size %d",
			ErrOutOfBounds, location, end, memSize)
	}
	return view, nil
}

// Decode converts b to a string the same way a browser TextDecoder does in its
// default mode: one leading byte order mark is dropped and every maximal
// ill-formed subsequence becomes U+FFFD. It never fails.
func Decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
