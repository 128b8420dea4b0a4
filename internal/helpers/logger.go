package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger creates a logger for a wasmbridge component. If handler is nil a text
// handler writing to stderr is created and grouped under component.
//
// Parameters:
//   - handler: The slog.Handler to use, or nil for defaults
//   - component: The component name (e.g., "compiler", "bridge")
//   - groupName: Optional additional group name within the component
//
// Returns:
//   - The configured handler
//   - A logger created from the handler
func SetupLogger(handler slog.Handler, component string, groupName string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil).WithGroup(component)
		slog.New(handler).Debug("Handler is nil, using the default logger configuration.")
	}

	if groupName != "" {
		return handler, slog.New(handler.WithGroup(groupName))
	}
	return handler, slog.New(handler)
}
