package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/paneedit/internal/config"
)

// New returns a logger writing to w at the configured level, either as
// human-readable console lines or as JSON objects.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	switch cfg.Format {
	case config.FormatJSON:
	case config.FormatConsole, "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q: %w", cfg.Format, config.ErrInvalidConfig)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
