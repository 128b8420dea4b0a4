package bridge

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Sink receives decoded guest log entries, one call per console_log_ex.
type Sink interface {
	Log(ctx context.Context, text string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, text string)

func (f SinkFunc) Log(ctx context.Context, text string) {
	f(ctx, text)
}

// WriterSink writes each entry as a line to an io.Writer. It is the default sink,
// writing to stdout like a browser console.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink writing to w, or to os.Stdout if w is nil.
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		w = os.Stdout
	}
	return &WriterSink{w: w}
}

func (s *WriterSink) Log(_ context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, text+"\n")
}

// SlogSink logs each entry as the message of an Info record.
type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Log(ctx context.Context, text string) {
	s.logger.InfoContext(ctx, text, "source", "guest")
}

// ZapSink logs each entry through a zap logger at Info level.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

func (s *ZapSink) Log(_ context.Context, text string) {
	s.logger.Info(text, zap.String("source", "guest"))
}
