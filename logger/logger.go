package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development gets human readable console
// output on stderr, everything else JSON lines on stdout.
func New(env, level string) (zerolog.Logger, error) {
	if env == "development" {
		return newLogger(zerolog.ConsoleWriter{Out: os.Stderr}, level)
	}
	return newLogger(os.Stdout, level)
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
