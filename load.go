package wasmbridge

import (
	"context"
	"fmt"

	"github.com/robbyt/go-wasmbridge/loader"
	"github.com/robbyt/go-wasmbridge/options"
)

// LoadFromDisk creates a Host and loads the module at path into it.
func LoadFromDisk(ctx context.Context, path string, opts ...options.Option) (*Host, error) {
	l, err := loader.NewFromDisk(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return newLoaded(ctx, l, opts...)
}

// LoadFromHTTP creates a Host and loads the module at rawURL into it. httpOpts
// may be nil for the loader defaults.
func LoadFromHTTP(
	ctx context.Context,
	rawURL string,
	httpOpts *loader.HTTPOptions,
	opts ...options.Option,
) (*Host, error) {
	if httpOpts == nil {
		httpOpts = loader.DefaultHTTPOptions()
	}
	l, err := loader.NewFromHTTPWithOptions(rawURL, httpOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return newLoaded(ctx, l, opts...)
}

// LoadFromBytes creates a Host and loads the module in content into it.
func LoadFromBytes(ctx context.Context, content []byte, opts ...options.Option) (*Host, error) {
	l, err := loader.NewFromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return newLoaded(ctx, l, opts...)
}

func newLoaded(ctx context.Context, l loader.Loader, opts ...options.Option) (*Host, error) {
	host, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if _, err := host.Load(ctx, l); err != nil {
		_ = host.Close(ctx)
		return nil, err
	}
	return host, nil
}
