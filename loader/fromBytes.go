package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/url"

	"github.com/robbyt/go-wasmbridge/internal/helpers"
)

// inMemory serves a module that is already held in memory. Every GetReader call
// starts from the first byte.
type inMemory struct {
	content   []byte
	sourceURL *url.URL
}

// newInMemory names content with a URL of the form scheme://host/<short sha>.
func newInMemory(content []byte, scheme, host string) (inMemory, error) {
	u := &url.URL{Scheme: scheme, Host: host, Path: "/" + helpers.ShortSHA256(content)}
	if _, err := url.Parse(u.String()); err != nil {
		return inMemory{}, fmt.Errorf("failed to create source URL: %w", err)
	}
	return inMemory{content: content, sourceURL: u}, nil
}

// GetReader returns a new reader for the stored content.
func (m *inMemory) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.content)), nil
}

// GetSourceURL returns the source URL of the module.
func (m *inMemory) GetSourceURL() *url.URL {
	return m.sourceURL
}

// Size returns the module size in bytes.
func (m *inMemory) Size() int {
	return len(m.content)
}

// FromBytes loads a module from a byte slice, such as one embedded in the binary.
type FromBytes struct {
	inMemory
}

// NewFromBytes creates a loader for content. The slice is not copied.
func NewFromBytes(content []byte) (*FromBytes, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: content is empty", ErrInputEmpty)
	}
	m, err := newInMemory(content, "bytes", "inline")
	if err != nil {
		return nil, err
	}
	return &FromBytes{inMemory: m}, nil
}

func (l *FromBytes) String() string {
	return fmt.Sprintf("loader.FromBytes{Bytes: %d}", l.Size())
}
