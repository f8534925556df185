// Package config loads the nsco configuration file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/creasty/defaults"
	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"nsco/internal/charset"
	"nsco/internal/ctxlog"
	"nsco/internal/journal"
)

// DefaultFile is read when no config file is named. It may be absent.
const DefaultFile = "nsco.yaml"

type Config struct {
	// Charset is the digit alphabet. Empty means charset.Reference.
	Charset      string  `yaml:"charset"`
	MaxInputSize string  `yaml:"maxInputSize" default:"1MiB"`
	Workers      int     `yaml:"workers" default:"4" validate:"min=1,max=256"`
	Log          Log     `yaml:"log"`
	Journal      Journal `yaml:"journal"`
}

type Log struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
}

type Journal struct {
	Enabled        bool `yaml:"enabled"`
	journal.Config `yaml:",inline"`
}

// Default is the configuration used without a file.
func Default() Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Errorf("config: defaults: %w", err))
	}
	return c
}

// Load reads filename. A missing DefaultFile yields Default().
func Load(ctx context.Context, filename string) (Config, error) {
	if filename == "" {
		filename = DefaultFile
	}

	file, err := os.Open(filename)
	if err != nil {
		if filename == DefaultFile && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open %q: %w", filename, err)
	}
	defer ctxlog.Close(ctx, "config file", file)

	dec := yaml.NewDecoder(file, yaml.Strict())

	var config Config
	err = dec.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}

	if err := defaults.Set(&config); err != nil {
		return Config{}, fmt.Errorf("defaults: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if _, err := c.MaxInputBytes(); err != nil {
		return err
	}
	if _, err := c.CharsetValue(); err != nil {
		return err
	}
	return nil
}

// MaxInputBytes parses MaxInputSize. Zero means unlimited.
func (c Config) MaxInputBytes() (int64, error) {
	if c.MaxInputSize == "" || c.MaxInputSize == "0" {
		return 0, nil
	}
	n, err := units.RAMInBytes(c.MaxInputSize)
	if err != nil {
		return 0, fmt.Errorf("maxInputSize: %w", err)
	}
	return n, nil
}

func (c Config) CharsetValue() (*charset.Charset, error) {
	if c.Charset == "" {
		return charset.Default(), nil
	}
	cs, err := charset.New(c.Charset)
	if err != nil {
		return nil, fmt.Errorf("charset: %w", err)
	}
	return cs, nil
}
