package options

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-wasmbridge/bridge"
	"github.com/robbyt/go-wasmbridge/compiler"
)

// Config holds all configuration for creating a Host
type Config struct {
	// Logger for the host, also passed to the compiler and bridge
	handler slog.Handler
	// Where guest console_log_ex entries go
	sink bridge.Sink
	// Extra compiler options, applied after the ones derived from this config
	compilerOptions []compiler.FunctionalOption
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogHandler sets the log handler for the host
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.handler = handler
		return nil
	}
}

// WithSlog sets the host logger, using its handler
func WithSlog(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.handler = logger.Handler()
		return nil
	}
}

// WithSink sets the sink guest log entries are written to
func WithSink(sink bridge.Sink) Option {
	return func(c *Config) error {
		if sink == nil {
			return fmt.Errorf("sink cannot be nil")
		}
		c.sink = sink
		return nil
	}
}

// WithCompilerOptions adds options for the compiler used by every Load
func WithCompilerOptions(opts ...compiler.FunctionalOption) Option {
	return func(c *Config) error {
		for _, opt := range opts {
			if opt == nil {
				return fmt.Errorf("compiler option cannot be nil")
			}
		}
		c.compilerOptions = append(c.compilerOptions, opts...)
		return nil
	}
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	if c.handler == nil {
		return fmt.Errorf("no log handler specified")
	}
	if c.sink == nil {
		return fmt.Errorf("no sink specified")
	}
	return nil
}

// GetHandler returns the configured log handler
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// SetHandler sets the log handler
func (c *Config) SetHandler(handler slog.Handler) {
	c.handler = handler
}

// GetSink returns the configured sink
func (c *Config) GetSink() bridge.Sink {
	return c.sink
}

// SetSink sets the sink
func (c *Config) SetSink(sink bridge.Sink) {
	c.sink = sink
}

// GetCompilerOptions returns the compiler options for this config: logging and
// sink first, then anything added with WithCompilerOptions.
func (c *Config) GetCompilerOptions() []compiler.FunctionalOption {
	opts := make([]compiler.FunctionalOption, 0, len(c.compilerOptions)+2)
	if c.handler != nil {
		opts = append(opts, compiler.WithLogHandler(c.handler))
	}
	if c.sink != nil {
		opts = append(opts, compiler.WithSink(c.sink))
	}
	return append(opts, c.compilerOptions...)
}
