package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/robbyt/go-wasmbridge/bridge"
	"github.com/tetratelabs/wazero/api"
)

// AddExport is the exported function Add calls.
const AddExport = "add"

var addParams = []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}

var addResults = []api.ValueType{api.ValueTypeI32}

// Instance is one live instantiation of an Executable.
type Instance struct {
	module api.Module
	logger *slog.Logger
}

func newInstance(mod api.Module, logger *slog.Logger) *Instance {
	return &Instance{module: mod, logger: logger.With("module", mod.Name())}
}

func (i *Instance) String() string {
	return fmt.Sprintf("compiler.Instance{Name: %s}", i.module.Name())
}

// Name returns the module name the instance is registered under.
func (i *Instance) Name() string {
	return i.module.Name()
}

// Module returns the underlying wazero module.
func (i *Instance) Module() api.Module {
	return i.module
}

// Memory returns the memory the bridge reads from, or nil if the module has none.
func (i *Instance) Memory() api.Memory {
	if mem := i.module.ExportedMemory(bridge.MemoryExport); mem != nil {
		return mem
	}
	return i.module.Memory()
}

// Call invokes the exported function name with raw wasm values.
func (i *Instance) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	fn, err := i.lookup(name)
	if err != nil {
		return nil, err
	}
	return i.call(ctx, fn, name, params...)
}

// Add calls the exported add(i32, i32) -> i32 function.
func (i *Instance) Add(ctx context.Context, a, b int32) (int32, error) {
	fn, err := i.lookup(AddExport)
	if err != nil {
		return 0, err
	}

	def := fn.Definition()
	if !slices.Equal(def.ParamTypes(), addParams) || !slices.Equal(def.ResultTypes(), addResults) {
		return 0, fmt.Errorf("%w: %s is %s, want %s", ErrExportSignature, AddExport,
			bridge.FormatSignature(def.ParamTypes(), def.ResultTypes()),
			bridge.FormatSignature(addParams, addResults))
	}

	results, err := i.call(ctx, fn, AddExport, api.EncodeI32(a), api.EncodeI32(b))
	if err != nil {
		return 0, err
	}
	return api.DecodeI32(results[0]), nil
}

// Close closes the instance. Its executable stays usable.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}

func (i *Instance) lookup(name string) (api.Function, error) {
	if i.module.IsClosed() {
		return nil, ErrInstanceClosed
	}
	fn := i.module.ExportedFunction(name)
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrExportNotFound, name)
	}
	return fn, nil
}

func (i *Instance) call(ctx context.Context, fn api.Function, name string, params ...uint64) ([]uint64, error) {
	i.logger.DebugContext(ctx, "Calling export", "function", name, "params", params)
	results, err := fn.Call(ctx, params...)
	if err != nil {
		i.logger.WarnContext(ctx, "Export call failed", "function", name, "error", err)
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	return results, nil
}
