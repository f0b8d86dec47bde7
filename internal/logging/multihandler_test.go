package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privgate/go-rootwrap/internal/logging"
)

func TestMultiHandler_FansOutToAllHandlers(t *testing.T) {
	var first, second bytes.Buffer
	handler := logging.NewMultiHandler(
		slog.NewTextHandler(&first, nil),
		slog.NewTextHandler(&second, nil),
	)
	logger := slog.New(handler)

	logger.Info("test message", "key", "value")

	assert.Contains(t, first.String(), "test message")
	assert.Contains(t, second.String(), "test message")
	assert.Contains(t, first.String(), "key=value")
}

func TestMultiHandler_RespectsHandlerLevels(t *testing.T) {
	var debugOut, errorOut bytes.Buffer
	handler := logging.NewMultiHandler(
		slog.NewTextHandler(&debugOut, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errorOut, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(handler)

	logger.Info("info only")

	assert.Contains(t, debugOut.String(), "info only")
	assert.Empty(t, errorOut.String())
}

func TestMultiHandler_Enabled(t *testing.T) {
	handler := logging.NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	assert.True(t, handler.Enabled(context.Background(), slog.LevelWarn))
	assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := logging.NewMultiHandler(slog.NewTextHandler(&buf, nil))

	logger := slog.New(handler.WithAttrs([]slog.Attr{slog.String("component", "test")}))
	logger.Info("message")

	assert.Contains(t, buf.String(), "component=test")
}

func TestGenerateRunID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := logging.GenerateRunID()
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup, "run IDs must be unique")
		seen[id] = struct{}{}
	}
}
