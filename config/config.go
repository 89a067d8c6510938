// SPDX-License-Identifier: MIT

// Package config loads process-level settings for lvfst tools: the default
// comparison delta, logging and the automaton store.
//
// A configuration file is YAML:
//
//	delta: 0.0009765625
//	log:
//	  level: info
//	  development: false
//	store:
//	  backend: sqlite
//	  dsn: automata.db
//
// Missing keys keep their Default values.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvfst/store"
	"github.com/katalvlaran/lvfst/weight"
)

// ErrInvalid indicates a configuration that fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Log selects the logger built by NewLogger.
type Log struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // console encoder, stack traces on warn
}

// Config is the root of a configuration file.
type Config struct {
	Delta float64      `yaml:"delta"`
	Log   Log          `yaml:"log"`
	Store store.Config `yaml:"store"`
}

// Default returns weight.DefaultDelta, info-level production logging and
// the file store rooted at the working directory.
func Default() Config {
	return Config{
		Delta: weight.DefaultDelta,
		Log:   Log{Level: "info"},
		Store: store.Config{Backend: "file"},
	}
}

// Validate checks the delta, the log level and the store backend name.
func (c Config) Validate() error {
	if !(c.Delta > 0) {
		return fmt.Errorf("%w: delta must be > 0, got %g", ErrInvalid, c.Delta)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	switch c.Store.Backend {
	case "", "file", "memory", "sqlite", "postgres", "redis", "mongo", "badger":
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalid, store.ErrUnknownBackend, c.Store.Backend)
	}
	return nil
}

// UnmarshalYAML decodes over Default and validates the result.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type alias Config
	tmp := alias(Default())
	if err := node.Decode(&tmp); err != nil {
		return err
	}
	if err := Config(tmp).Validate(); err != nil {
		return err
	}
	*c = Config(tmp)
	return nil
}

// Parse decodes a YAML document. An empty document yields Default.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return c, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Redacted returns a one-line summary with any DSN password masked.
func (c Config) Redacted() string {
	return fmt.Sprintf("delta=%g log=%s store=%s dsn=%s addr=%s",
		c.Delta, c.Log.Level, backendName(c.Store.Backend), redactDSN(c.Store.DSN), c.Store.Addr)
}

func backendName(b string) string {
	if b == "" {
		return "file"
	}
	return b
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
