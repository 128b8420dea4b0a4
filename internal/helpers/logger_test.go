package helpers

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("nil handler gets a default", func(t *testing.T) {
		t.Parallel()
		handler, logger := SetupLogger(nil, "compiler", "")
		require.NotNil(t, handler)
		require.NotNil(t, logger)
	})

	t.Run("provided handler is kept", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, nil)

		gotHandler, logger := SetupLogger(handler, "compiler", "")
		assert.Equal(t, handler, gotHandler)

		logger.Info("compiled")
		assert.Contains(t, buf.String(), "msg=compiled")
	})

	t.Run("group name is applied", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, nil)

		_, logger := SetupLogger(handler, "compiler", "Compiler")
		logger.Info("compiled", "bytes", 154)
		assert.Contains(t, buf.String(), "Compiler.bytes=154")
	})
}
