package options

import (
	"log/slog"
	"os"

	"github.com/robbyt/go-wasmbridge/bridge"
)

// DefaultConfig initializes a Config with sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.SetHandler(DefaultHandler())
	cfg.SetSink(DefaultSink())
	return cfg
}

// DefaultHandler returns the default logging handler
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stdout, nil)
}

// DefaultSink returns the default guest log sink, one line per entry on stdout
func DefaultSink() bridge.Sink {
	return bridge.NewWriterSink(os.Stdout)
}

// WithDefaults applies default values to any config properties that are nil
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}

		if c.sink == nil {
			c.sink = DefaultSink()
		}

		return nil
	}
}
