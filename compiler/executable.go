package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/robbyt/go-wasmbridge/internal/helpers"
	"github.com/tetratelabs/wazero"
)

// Executable is a validated module compiled in its own runtime. Closing it
// closes the runtime and every Instance created from it.
type Executable struct {
	source    []byte
	runtime   wazero.Runtime
	compiled  wazero.CompiledModule
	wasi      bool
	instances atomic.Uint64
	closed    atomic.Bool
	rwMutex   sync.RWMutex
	logger    *slog.Logger
}

func newExecutable(
	source []byte,
	rt wazero.Runtime,
	compiled wazero.CompiledModule,
	wasi bool,
	handler slog.Handler,
) *Executable {
	_, logger := helpers.SetupLogger(handler, "compiler", "Executable")
	return &Executable{
		source:   source,
		runtime:  rt,
		compiled: compiled,
		wasi:     wasi,
		logger:   logger.With("sha256", helpers.ShortSHA256(source)),
	}
}

func (e *Executable) String() string {
	return fmt.Sprintf("compiler.Executable{Size: %d, SHA256: %s, Exports: %v}",
		len(e.source), helpers.ShortSHA256(e.source), e.Exports())
}

// Source returns the module bytes the executable was compiled from.
func (e *Executable) Source() []byte {
	return e.source
}

// Exports returns the sorted names of the exported functions.
func (e *Executable) Exports() []string {
	return slices.Sorted(maps.Keys(e.compiled.ExportedFunctions()))
}

// Instantiate creates a new instance of the module, running its start function.
// Any log calls the start function makes reach the bridge before this returns.
func (e *Executable) Instantiate(ctx context.Context) (*Instance, error) {
	e.rwMutex.RLock()
	defer e.rwMutex.RUnlock()

	if e.closed.Load() {
		return nil, ErrExecutableClosed
	}

	name := fmt.Sprintf("guest-%d", e.instances.Add(1))
	cfg := wazero.NewModuleConfig().WithName(name)
	if e.wasi {
		cfg = cfg.WithStdout(os.Stdout).WithStderr(os.Stderr)
	}

	mod, err := e.runtime.InstantiateModule(ctx, e.compiled, cfg)
	if err != nil {
		e.logger.Warn("Instantiation failed", "module", name, "error", err)
		return nil, fmt.Errorf("%w: %w: %w", ErrCompileFailed, ErrInstantiateFailed, err)
	}

	e.logger.Debug("Module instantiated", "module", name)
	return newInstance(mod, e.logger), nil
}

// IsClosed reports whether Close has been called.
func (e *Executable) IsClosed() bool {
	return e.closed.Load()
}

// Close releases the runtime. It is safe to call more than once.
func (e *Executable) Close(ctx context.Context) error {
	e.rwMutex.Lock()
	defer e.rwMutex.Unlock()

	if e.closed.CompareAndSwap(false, true) {
		return e.runtime.Close(ctx)
	}
	return nil
}
