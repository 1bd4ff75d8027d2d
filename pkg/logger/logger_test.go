package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	var debug, warn bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h).With("branch_id", 1)

	log.Info("sale recorded", "sale_id", 42)
	log.Warn("sale rejected", "reason", "insufficient_stock")

	assert.Equal(t, 2, bytes.Count(debug.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(warn.Bytes(), []byte("\n")))

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(warn.Bytes()), &rec))
	assert.Equal(t, "sale rejected", rec["msg"])
	assert.Equal(t, float64(1), rec["branch_id"])
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	var buf bytes.Buffer
	scoped := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")
	ctx := InjectLogger(context.Background(), scoped)

	WithCtx(ctx).Info("alerts generated")
	assert.Contains(t, buf.String(), "request_id=abc")
}
