package bridge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-wasmbridge/internal/helpers"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// Bridge connects guest log calls to a Sink.
type Bridge struct {
	sink   Sink
	logger *slog.Logger
}

// New creates a Bridge writing to sink. A nil sink writes to stdout and a nil
// handler logs diagnostics to stderr.
func New(sink Sink, handler slog.Handler) *Bridge {
	if sink == nil {
		sink = NewWriterSink(nil)
	}
	b := &Bridge{sink: sink}
	_, b.logger = helpers.SetupLogger(handler, "bridge", "Bridge")
	return b
}

func (b *Bridge) String() string {
	return fmt.Sprintf("bridge.Bridge{Sink: %T}", b.sink)
}

// Sink returns the sink entries are written to.
func (b *Bridge) Sink() Sink {
	return b.sink
}

// Log decodes [location, location+size) of mem and writes it to the sink as one
// entry. Nothing is written when the range is out of bounds.
func (b *Bridge) Log(ctx context.Context, mem Memory, location, size uint32) error {
	view, err := View(mem, location, size)
	if err != nil {
		b.logger.WarnContext(ctx, "Rejected guest log request",
			"location", location, "size", size, "error", err)
		return err
	}
	b.sink.Log(ctx, Decode(view))
	return nil
}

// ConsoleLogEx is the host function bound to env.console_log_ex. Errors abort the
// calling guest function; wazero recovers the panic and returns it, wrapped, from
// the export call or instantiation in flight.
func (b *Bridge) ConsoleLogEx(ctx context.Context, mod api.Module, location, size uint32) {
	mem := mod.ExportedMemory(MemoryExport)
	if mem == nil {
		b.logger.WarnContext(ctx, "Guest logged without an exported memory",
			"module", mod.Name(), "export", MemoryExport)
		panic(fmt.Errorf("%w: %q has no export %q", ErrNoMemory, mod.Name(), MemoryExport))
	}
	if err := b.Log(ctx, mem, location, size); err != nil {
		panic(err)
	}
}

// Instantiate registers the env host module, exporting console_log_ex, in rt.
func (b *Bridge) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	mod, err := rt.NewHostModuleBuilder(Namespace).
		NewFunctionBuilder().
		WithFunc(b.ConsoleLogEx).
		WithParameterNames("location", "size").
		Export(ConsoleLogEx).
		Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate %s host module: %w", Namespace, err)
	}
	b.logger.DebugContext(ctx, "Host module instantiated",
		"namespace", Namespace, "function", ConsoleLogEx)
	return mod, nil
}
