// Package loader fetches the raw bytes of a compiled wasm module from a source
// location: an HTTP(S) URL, a file on disk, an in-memory byte slice or an io.Reader.
package loader

import (
	"context"
	"io"
	"net/url"
)

// Loader is used by the host to obtain module bytes.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}

// ContextLoader is a Loader whose fetch can be cancelled.
type ContextLoader interface {
	Loader
	GetReaderWithContext(ctx context.Context) (io.ReadCloser, error)
}

// Open returns a reader for l, using the context-aware variant when l supports it.
func Open(ctx context.Context, l Loader) (io.ReadCloser, error) {
	if l == nil {
		return nil, ErrLoaderNil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cl, ok := l.(ContextLoader); ok {
		return cl.GetReaderWithContext(ctx)
	}
	return l.GetReader()
}
