package compiler

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/robbyt/go-wasmbridge/bridge"
	"github.com/tetratelabs/wazero"
)

// Options holds the configuration for the Compiler
type Options struct {
	LogHandler       slog.Handler
	Logger           *slog.Logger
	Sink             bridge.Sink
	EnableWASI       bool
	RuntimeConfig    wazero.RuntimeConfig
	CompilationCache wazero.CompilationCache
	RequiredExports  []string
}

// FunctionalOption is a function that configures an Options instance
type FunctionalOption func(*Options) error

// WithLogHandler creates an option to set the log handler for the compiler and
// the bridge it installs. This is the preferred logging option.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(cfg *Options) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		cfg.LogHandler = handler
		// Clear logger if handler is explicitly set
		cfg.Logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the compiler.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(cfg *Options) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		cfg.Logger = logger
		// Clear handler if logger is explicitly set
		cfg.LogHandler = nil
		return nil
	}
}

// WithSink sets where guest console_log_ex entries are written.
func WithSink(sink bridge.Sink) FunctionalOption {
	return func(cfg *Options) error {
		if sink == nil {
			return fmt.Errorf("sink cannot be nil")
		}
		cfg.Sink = sink
		return nil
	}
}

// WithWASIEnabled creates an option to enable or disable WASI preview1 imports.
func WithWASIEnabled(enabled bool) FunctionalOption {
	return func(cfg *Options) error {
		cfg.EnableWASI = enabled
		return nil
	}
}

// WithRuntimeConfig creates an option to set a custom wazero runtime configuration
func WithRuntimeConfig(config wazero.RuntimeConfig) FunctionalOption {
	return func(cfg *Options) error {
		if config == nil {
			return fmt.Errorf("runtime config cannot be nil")
		}
		cfg.RuntimeConfig = config
		return nil
	}
}

// WithCompilationCache shares compiled code between the runtimes of this compiler.
// The caller owns the cache and closes it after every Executable is closed.
func WithCompilationCache(cache wazero.CompilationCache) FunctionalOption {
	return func(cfg *Options) error {
		if cache == nil {
			return fmt.Errorf("compilation cache cannot be nil")
		}
		cfg.CompilationCache = cache
		return nil
	}
}

// WithRequiredExports makes Compile reject modules that do not export every named
// function.
func WithRequiredExports(names ...string) FunctionalOption {
	return func(cfg *Options) error {
		for _, name := range names {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("required export name cannot be empty")
			}
		}
		cfg.RequiredExports = append(cfg.RequiredExports, names...)
		return nil
	}
}

// ApplyDefaults sets the default values for an Options
func ApplyDefaults(cfg *Options) {
	// Default to stderr for logging if neither handler nor logger specified
	if cfg.LogHandler == nil && cfg.Logger == nil {
		cfg.LogHandler = slog.NewTextHandler(os.Stderr, nil)
	}

	if cfg.Sink == nil {
		cfg.Sink = bridge.NewWriterSink(os.Stdout)
	}

	if cfg.RuntimeConfig == nil {
		cfg.RuntimeConfig = wazero.NewRuntimeConfig()
	}
}

// Validate checks if the configuration is valid
func Validate(cfg *Options) error {
	if cfg.LogHandler == nil && cfg.Logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}

	if cfg.Sink == nil {
		return fmt.Errorf("sink must be specified")
	}

	if cfg.RuntimeConfig == nil {
		return fmt.Errorf("runtime config cannot be nil")
	}

	return nil
}
