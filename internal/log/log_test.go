package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelInfo, true},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantErr, err != nil, tt.in)
	}
}

func TestJSONLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentTracker, Output: &buf})

	logger.Debug("hidden")
	logger.Info("Transaction added", NewFields().
		WithTransaction("t1", "expense", decimal.RequireFromString("12.50"), "Food").
		ToSlice()...)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Transaction added", rec["msg"])
	assert.Equal(t, ComponentTracker, rec[FieldComponent])
	assert.Equal(t, "t1", rec[FieldTransactionID])
	assert.Equal(t, "12.5", rec[FieldAmount])
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: slog.LevelDebug, Format: "json", Component: ComponentApp, Output: &buf})
	storeLog := base.WithComponent(ComponentStorage)

	assert.Equal(t, ComponentApp, base.Component())
	assert.Equal(t, ComponentStorage, storeLog.Component())

	storeLog.Debug("saved")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, ComponentStorage, rec[FieldComponent])
}

func TestContextRoundTrip(t *testing.T) {
	logger := Discard().WithComponent(ComponentVoice)
	ctx := IntoContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	assert.Equal(t, "unknown", fallback.Component())
}
