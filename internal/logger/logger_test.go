package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("opened", "path", "a.map")

	out := buf.String()
	require.Contains(t, out, `"msg":"opened"`)
	require.Contains(t, out, `"path":"a.map"`)
	require.Contains(t, out, `"level":"INFO"`)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := Text(&buf, slog.LevelWarn)
	log.Debug("hidden")
	log.Info("hidden")
	require.Zero(t, buf.Len())

	log.Warn("corrupted machine stamp")
	log.Error("short read")
	require.Contains(t, buf.String(), "corrupted machine stamp")
	require.Contains(t, buf.String(), "short read")
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelDebug).With("handle", "reader").WithGroup("layout")
	log.Debug("decoded", "sections", 3)

	out := buf.String()
	require.Contains(t, out, `"handle":"reader"`)
	require.Contains(t, out, `"layout":{"sections":3}`)
}

func TestNop(t *testing.T) {
	log := Nop()
	require.NotPanics(t, func() {
		log.Error("discarded")
		log.With("k", "v").WithGroup("g").Info("discarded")
	})
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	log := Text(&buf, slog.LevelInfo)

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("round trip")
	require.Contains(t, buf.String(), "round trip")

	require.NotNil(t, FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, ok := ParseLevel(tt.in)
			require.Equal(t, tt.level, level)
			require.Equal(t, tt.ok, ok)
		})
	}
}
