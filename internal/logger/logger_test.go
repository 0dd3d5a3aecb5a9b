package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{raw: "", want: slog.LevelInfo},
		{raw: "DEBUG", want: slog.LevelDebug},
		{raw: " warn ", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, parseLevel(tt.raw))
		})
	}
}

func TestNewHonoursLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	log := New("api")
	require.NotNil(t, log)
	require.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, log.Enabled(context.Background(), slog.LevelWarn))
}
