package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"":        LevelInfo,
		"DEBUG":   LevelDebug,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestNewJSONWriter_WritesBaseFieldsAndErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo, "service", "stathub")

	logger.DebugContext(context.Background(), "hidden")
	logger.WarnContext(context.Background(), "evaluate achievements failed", "player_id", int64(4), "error", errors.New("db down"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `"service":"stathub"`)
	require.Contains(t, out, `"player_id":4`)
	require.Contains(t, out, `"error":"db down"`)
	require.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	require.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "noop")
		logger.With("k", "v").Info("noop")
	})
}

func TestToFields_BadKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo)
	logger.Info("leaderboard refreshed", "mode", "goals", 42, "dangling")
	require.NoError(t, logger.Sync())

	out := buf.String()
	require.Contains(t, out, `"mode":"goals"`)
	require.Contains(t, out, `"!BADKEY":"dangling"`)
}
