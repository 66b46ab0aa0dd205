package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	require.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("loud"), "Unknown levels fall back to info")
}

func TestPadCaller(t *testing.T) {
	t.Run("short paths are padded", func(t *testing.T) {
		got := padCaller("local.go", 12)
		require.Len(t, got, callerWidth)
		require.True(t, strings.HasPrefix(got, "local.go:12 "))
	})

	t.Run("long paths keep their tail", func(t *testing.T) {
		got := padCaller("a_really_long_file_name_for_testing.go", 1234)
		require.Len(t, got, callerWidth)
		require.True(t, strings.HasSuffix(got, ".go:1234"))
	})
}

func TestInit(t *testing.T) {
	previous := log.Logger
	previousLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	})

	var buf bytes.Buffer
	lvl := Init("warn", &buf)

	require.Equal(t, zerolog.WarnLevel, lvl)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "logger_test.go")
}
