package wasmbridge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sync"

	"github.com/robbyt/go-wasmbridge/compiler"
	"github.com/robbyt/go-wasmbridge/internal/helpers"
	"github.com/robbyt/go-wasmbridge/loader"
	"github.com/robbyt/go-wasmbridge/options"
)

// Demonstration operands passed to add by RunDemo.
const (
	DemoA int32 = 2
	DemoB int32 = 2
)

// Host holds at most one live module instance. It is empty until a Load
// succeeds; each successful Load replaces the instance and closes the previous
// one.
type Host struct {
	compiler *compiler.Compiler
	logger   *slog.Logger

	mu         sync.RWMutex
	executable *compiler.Executable
	instance   *compiler.Instance
	source     *url.URL
	closed     bool
}

// New creates an empty Host.
func New(opts ...options.Option) (*Host, error) {
	cfg := options.DefaultConfig()

	// Apply all options
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	// Apply defaults option as final step to fill in any missing values
	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	comp, err := compiler.NewCompiler(cfg.GetCompilerOptions()...)
	if err != nil {
		return nil, err
	}

	_, logger := helpers.SetupLogger(cfg.GetHandler(), "wasmbridge", "Host")
	return &Host{compiler: comp, logger: logger}, nil
}

func (h *Host) String() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.instance == nil {
		return "wasmbridge.Host{empty}"
	}
	return fmt.Sprintf("wasmbridge.Host{Source: %s, Instance: %s}", h.source, h.instance.Name())
}

// Load fetches, compiles and instantiates the module from l and stores the
// instance in the Host. On failure the Host is left as it was.
func (h *Host) Load(ctx context.Context, l loader.Loader) (*compiler.Instance, error) {
	if h.isClosed() {
		return nil, ErrHostClosed
	}

	reader, err := loader.Open(ctx, l)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to fetch module", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	source := l.GetSourceURL()
	logger := h.logger.With("source", fmt.Sprint(source))

	wasmBytes, err := readModule(reader)
	if err != nil {
		logger.WarnContext(ctx, "Failed to fetch module", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	exe, err := h.compiler.CompileBytes(ctx, wasmBytes)
	if err != nil {
		logger.WarnContext(ctx, "Failed to compile module", "error", err)
		return nil, err
	}

	inst, err := exe.Instantiate(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Failed to instantiate module", "error", err)
		h.closeExecutable(ctx, exe)
		return nil, err
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		h.closeExecutable(ctx, exe)
		return nil, ErrHostClosed
	}
	previous := h.executable
	h.executable, h.instance, h.source = exe, inst, source
	h.mu.Unlock()

	if previous != nil {
		h.closeExecutable(ctx, previous)
	}

	logger.InfoContext(ctx, "Module loaded", "instance", inst.Name(), "exports", exe.Exports())
	return inst, nil
}

// readModule drains and closes r. The fetch is only complete once the whole
// body has arrived, so a truncated or interrupted body is a load failure.
func readModule(r io.ReadCloser) ([]byte, error) {
	wasmBytes, err := io.ReadAll(r)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to read module: %w", err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}
	return wasmBytes, nil
}

// Instance returns the loaded instance, or nil if nothing is loaded.
func (h *Host) Instance() *compiler.Instance {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.instance
}

// Source returns where the loaded instance came from, or nil.
func (h *Host) Source() *url.URL {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.source
}

// RunDemo calls add(DemoA, DemoB) on the loaded instance and logs the result.
func (h *Host) RunDemo(ctx context.Context) (int32, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.instance == nil {
		return 0, ErrNoInstance
	}

	sum, err := h.instance.Add(ctx, DemoA, DemoB)
	if err != nil {
		h.logger.ErrorContext(ctx, "Demo call failed", "error", err)
		return 0, err
	}

	h.logger.InfoContext(ctx, "add result", "result", sum)
	return sum, nil
}

// LoadAndRunDemo loads the module from l and then runs RunDemo on it. The demo
// call is skipped if the load fails.
func (h *Host) LoadAndRunDemo(ctx context.Context, l loader.Loader) (int32, error) {
	if _, err := h.Load(ctx, l); err != nil {
		return 0, err
	}
	return h.RunDemo(ctx)
}

// Close releases the loaded module. The Host cannot be used afterwards.
func (h *Host) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	exe := h.executable
	h.executable, h.instance, h.source = nil, nil, nil
	if exe == nil {
		return nil
	}
	return exe.Close(ctx)
}

func (h *Host) isClosed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closed
}

func (h *Host) closeExecutable(ctx context.Context, exe *compiler.Executable) {
	if err := exe.Close(ctx); err != nil {
		h.logger.WarnContext(ctx, "Failed to close executable", "error", err)
	}
}
