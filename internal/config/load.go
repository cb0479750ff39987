package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix starts the name of every environment override.
const EnvPrefix = "PANEEDIT_"

// Load reads the TOML file at path over the defaults. A missing file is
// not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML data over the defaults and validates the result.
// Unknown keys are rejected. source names the data in errors.
func Parse(source string, data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// envSetters maps environment variables to the setting they override.
var envSetters = map[string]func(c *Config, v string) error{
	EnvPrefix + "HISTORY_LIMIT": func(c *Config, v string) error {
		return setInt(&c.History.Limit, v)
	},
	EnvPrefix + "SEARCH_IGNORE_CASE": func(c *Config, v string) error {
		return setBool(&c.Search.IgnoreCase, v)
	},
	EnvPrefix + "SEARCH_REGEXP": func(c *Config, v string) error {
		return setBool(&c.Search.Regexp, v)
	},
	EnvPrefix + "VIEW_SCROLL_MARGIN": func(c *Config, v string) error {
		return setInt(&c.View.ScrollMargin, v)
	},
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.Log.Level = strings.ToLower(v)
		return nil
	},
	EnvPrefix + "LOG_FORMAT": func(c *Config, v string) error {
		c.Log.Format = strings.ToLower(v)
		return nil
	},
	EnvPrefix + "SCRIPT_TIMEOUT": func(c *Config, v string) error {
		return c.Script.Timeout.UnmarshalText([]byte(v))
	},
}

// ApplyEnv overrides settings from environment variables looked up with
// lookup (usually os.LookupEnv) and validates the result.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for name, set := range envSetters {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return c.Validate()
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setBool(dst *bool, v string) error {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	default:
		return fmt.Errorf("not a boolean: %q", v)
	}
	return nil
}
