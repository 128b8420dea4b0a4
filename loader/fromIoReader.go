package loader

import (
	"fmt"
	"io"
)

// FromIoReader loads a module from an io.Reader. The reader is drained once, at
// construction, so the loader can be reused.
type FromIoReader struct {
	inMemory
}

// NewFromIoReader reads all of reader. sourceName becomes the host part of the
// source URL and defaults to "unnamed".
func NewFromIoReader(reader io.Reader, sourceName string) (*FromIoReader, error) {
	if reader == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrModuleNotAvailable)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: reader returned no content", ErrInputEmpty)
	}

	if sourceName == "" {
		sourceName = "unnamed"
	}
	m, err := newInMemory(content, "reader", sourceName)
	if err != nil {
		return nil, err
	}
	return &FromIoReader{inMemory: m}, nil
}

func (l *FromIoReader) String() string {
	return fmt.Sprintf("loader.FromIoReader{Bytes: %d, Source: %s}", l.Size(), l.sourceURL)
}
