// Package logger sets up the global zerolog logger used across the engine.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

const callerWidth = 30

// Init points log.Logger at a console writer on w (stderr when nil) and sets
// the global level. An unknown level falls back to info.
func Init(level string, w io.Writer) zerolog.Level {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return padCaller(filepath.Base(file), line)
	}

	lvl := ParseLevel(level)
	zerolog.SetGlobalLevel(lvl)

	if w == nil {
		w = os.Stderr
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: milliTimeFormat,
		NoColor:    os.Getenv("HEX_LOG_COLOR") != "true",
	}
	log.Logger = zerolog.New(output).With().Timestamp().Caller().Logger()

	log.Debug().Str("level", lvl.String()).Msg("logger initialized")
	return lvl
}

func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// padCaller keeps the caller column a fixed width so messages line up.
func padCaller(file string, line int) string {
	path := fmt.Sprintf("%s:%d", file, line)
	if len(path) >= callerWidth {
		return path[len(path)-callerWidth:]
	}
	return path + strings.Repeat(" ", callerWidth-len(path))
}
