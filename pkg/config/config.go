// Package config loads the optional configuration file of the simple command.
//
// The file is TOML or YAML, told apart by its extension. All keys are
// optional, and flags given on the command line take precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the simple command.
type Config struct {
	// Format of parse tree dumps: "text", "json" or "yaml".
	TreeFormat string `toml:"tree_format" yaml:"tree_format"`
	// When to style error messages: "auto", "always" or "never".
	Color string `toml:"color" yaml:"color"`
	// Path of the run history database. Empty disables the history.
	DB string `toml:"db" yaml:"db"`
	// Path of the debug log. Empty disables logging.
	Log string `toml:"log" yaml:"log"`
}

// Valid values of Config fields.
var (
	TreeFormats = []string{"text", "json", "yaml"}
	Colors      = []string{"auto", "always", "never"}
)

// ErrUnsupportedFormat is returned by Load for files that are neither TOML nor
// YAML.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// Default returns the configuration used when there is no configuration file.
func Default() *Config {
	return &Config{TreeFormat: "text", Color: "auto"}
}

// Load loads the configuration file at path. Environment variables in path
// are expanded. Keys that are missing from the file keep their default
// values; unknown keys are errors.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse %s: unknown key %s", path, undecoded[0])
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF; keep the defaults.
		if err := dec.Decode(cfg); err != nil && len(bytes.TrimSpace(content)) > 0 {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the fields with a fixed set of values are valid.
func (c *Config) Validate() error {
	if !oneOf(c.TreeFormat, TreeFormats) {
		return fmt.Errorf("tree_format must be one of %s, got %q",
			strings.Join(TreeFormats, ", "), c.TreeFormat)
	}
	if !oneOf(c.Color, Colors) {
		return fmt.Errorf("color must be one of %s, got %q",
			strings.Join(Colors, ", "), c.Color)
	}
	return nil
}

func oneOf(s string, values []string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
