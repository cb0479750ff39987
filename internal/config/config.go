package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds every setting of the editor.
type Config struct {
	History HistoryConfig `toml:"history"`
	Search  SearchConfig  `toml:"search"`
	View    ViewConfig    `toml:"view"`
	Log     LogConfig     `toml:"log"`
	Script  ScriptConfig  `toml:"script"`
}

// HistoryConfig controls undo history.
type HistoryConfig struct {
	// Limit caps the undo groups kept per buffer. 0 keeps every group.
	Limit int `toml:"limit"`
}

// SearchConfig holds the default search options.
type SearchConfig struct {
	IgnoreCase bool `toml:"ignore_case"`
	Regexp     bool `toml:"regexp"`
}

// ViewConfig controls views.
type ViewConfig struct {
	// ScrollMargin is the minimum number of lines kept between the
	// primary cursor and the window edge.
	ScrollMargin int `toml:"scroll_margin"`
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...).
	Level string `toml:"level"`
	// Format is "console" or "json".
	Format string `toml:"format"`
}

// ScriptConfig controls the Lua sandbox.
type ScriptConfig struct {
	// Timeout bounds a single script run. 0 disables the limit.
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string such as "5s".
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History: HistoryConfig{Limit: 0},
		View:    ViewConfig{ScrollMargin: 0},
		Log: LogConfig{
			Level:  zerolog.WarnLevel.String(),
			Format: FormatConsole,
		},
		Script: ScriptConfig{Timeout: Duration(5 * time.Second)},
	}
}

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if c.History.Limit < 0 {
		errs = append(errs, &ValidationError{Path: "history.limit", Message: "must not be negative", Value: c.History.Limit})
	}
	if c.View.ScrollMargin < 0 {
		errs = append(errs, &ValidationError{Path: "view.scroll_margin", Message: "must not be negative", Value: c.View.ScrollMargin})
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		errs = append(errs, &ValidationError{Path: "log.level", Message: "unknown level", Value: c.Log.Level})
	}
	if c.Log.Format != FormatConsole && c.Log.Format != FormatJSON {
		errs = append(errs, &ValidationError{
			Path:    "log.format",
			Message: fmt.Sprintf("must be %q or %q", FormatConsole, FormatJSON),
			Value:   c.Log.Format,
		})
	}
	if c.Script.Timeout < 0 {
		errs = append(errs, &ValidationError{Path: "script.timeout", Message: "must not be negative", Value: c.Script.Timeout.Std()})
	}

	return errors.Join(errs...)
}
