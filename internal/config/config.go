// Package config loads the YAML configuration of the command line tools.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/paraglidehq/b32"
	"github.com/paraglidehq/b32/internal/log"
)

type Config struct {
	Log       *log.Config      `yaml:"log"`
	Encoding  *EncodingConfig  `yaml:"encoding"`
	Generator *GeneratorConfig `yaml:"generator"`
}

type EncodingConfig struct {
	// Group inserts a hyphen every Group symbols of encoded output, 0 disables it.
	Group int `yaml:"group"`
}

type GeneratorConfig struct {
	// Start is the first raw code issued. Nil means 1; an explicit 0 is kept.
	Start  *uint64    `yaml:"start"`
	Key    uint64     `yaml:"key"`
	Format b32.Format `yaml:"format"`
}

func (c *Config) Default() {
	if c.Log == nil {
		c.Log = &log.Config{}
	}
	c.Log.Default()
	if c.Encoding == nil {
		c.Encoding = &EncodingConfig{}
	}
	if c.Generator == nil {
		c.Generator = &GeneratorConfig{}
	}
	c.Generator.Default()
}

func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if c.Encoding.Group < 0 {
		return fmt.Errorf("config: encoding.group must not be negative, got %d", c.Encoding.Group)
	}
	return c.Generator.Validate()
}

func (c *GeneratorConfig) Default() {
	if c.Start == nil {
		start := uint64(1)
		c.Start = &start
	}
	if c.Format == "" {
		c.Format = b32.FormatCrockford
	}
}

func (c *GeneratorConfig) Validate() error {
	if c.Start == nil {
		return errors.New("config: generator.start is not set")
	}
	if _, err := b32.FromUint64(*c.Start); err != nil {
		return fmt.Errorf("config: generator.start: %w", err)
	}
	switch c.Format {
	case b32.FormatCrockford, b32.FormatDecimal, b32.FormatBase58:
		return nil
	default:
		return fmt.Errorf("config: generator.format %q is not one of crockford, decimal, base58", c.Format)
	}
}

// Load reads path, applies defaults and validates the result. A missing file
// yields the default configuration when optional is set.
func Load(path string, optional bool) (*Config, error) {
	c := &Config{}
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := Decode(f, c); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("config: %w", err)
	}

	c.Default()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Decode(r io.Reader, c *Config) error {
	err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(c)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func Encode(w io.Writer, c *Config) error {
	return yaml.NewEncoder(w).Encode(c)
}
