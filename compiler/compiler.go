package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/robbyt/go-wasmbridge/bridge"
	"github.com/robbyt/go-wasmbridge/internal/helpers"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Compiler turns wasm bytes into an Executable bound to the host import table.
type Compiler struct {
	options    *Options
	bridge     *bridge.Bridge
	logHandler slog.Handler
	logger     *slog.Logger
}

// NewCompiler creates a new Compiler instance with the provided options.
func NewCompiler(opts ...FunctionalOption) (*Compiler, error) {
	cfg := &Options{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}

	c := &Compiler{options: cfg}
	if cfg.Logger != nil {
		c.logHandler = cfg.Logger.Handler()
		c.logger = cfg.Logger
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(cfg.LogHandler, "compiler", "Compiler")
	}
	c.bridge = bridge.New(cfg.Sink, c.logHandler)

	return c, nil
}

func (c *Compiler) String() string {
	return "compiler.Compiler"
}

// Bridge returns the logging bridge installed into every runtime.
func (c *Compiler) Bridge() *bridge.Bridge {
	return c.bridge
}

// Compile reads and closes r, then compiles and validates the module in a fresh
// runtime. The returned Executable owns the runtime.
func (c *Compiler) Compile(ctx context.Context, r io.ReadCloser) (*Executable, error) {
	logger := c.logger.WithGroup("compile")

	if r == nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, ErrContentNil)
	}

	wasmBytes, err := io.ReadAll(r)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("%w: failed to close reader: %w", ErrReadFailed, err)
	}

	if len(wasmBytes) == 0 {
		logger.Error("Compile called with empty module")
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, ErrContentNil)
	}

	return c.CompileBytes(ctx, wasmBytes)
}

// CompileBytes is Compile for an in-memory module.
func (c *Compiler) CompileBytes(ctx context.Context, wasmBytes []byte) (*Executable, error) {
	logger := c.logger.WithGroup("compile")
	if len(wasmBytes) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, ErrContentNil)
	}
	logger.Debug("Starting wasm compilation",
		"size", len(wasmBytes), "sha256", helpers.ShortSHA256(wasmBytes))

	rtConfig := c.options.RuntimeConfig
	if c.options.CompilationCache != nil {
		rtConfig = rtConfig.WithCompilationCache(c.options.CompilationCache)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, rtConfig)
	closeRuntime := func() {
		if err := rt.Close(ctx); err != nil {
			logger.Warn("Failed to close runtime", "error", err)
		}
	}

	if c.options.EnableWASI {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
			closeRuntime()
			return nil, fmt.Errorf("%w: failed to instantiate WASI: %w", ErrCompileFailed, err)
		}
	}

	if _, err := c.bridge.Instantiate(ctx, rt); err != nil {
		closeRuntime()
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		closeRuntime()
		logger.Warn("Wasm compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w: %w", ErrCompileFailed, ErrInvalidBinary, err)
	}

	if err := c.validate(compiled); err != nil {
		closeRuntime()
		logger.Warn("Module rejected", "error", err)
		return nil, err
	}

	exe := newExecutable(wasmBytes, rt, compiled, c.options.EnableWASI, c.logHandler)
	logger.Debug("Wasm compilation completed successfully", "executable", exe.String())
	return exe, nil
}
