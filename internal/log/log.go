// Package log builds the zerolog logger used by the command line tools.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

type (
	Level  = zerolog.Level
	Logger = zerolog.Logger
)

const (
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
	LevelError = zerolog.ErrorLevel
)

type Config struct {
	Level string `yaml:"level"`
}

func (c *Config) Default() {
	if c.Level == "" {
		c.Level = LevelInfo.String()
	}
}

func (c *Config) Validate() error {
	_, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("log: invalid level %q: %w", c.Level, err)
	}
	return nil
}

// New returns a logger writing to w at the given level. Terminals get the
// human readable console writer, everything else gets JSON lines.
func New(w io.Writer, level string) (Logger, error) {
	if level == "" {
		level = LevelInfo.String()
	}
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log: failed to parse logging level %q: %w", level, err)
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f}
	}

	return zerolog.New(w).With().
		Timestamp().Logger().
		Level(logLevel), nil
}
