// Package config loads lexer settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v2"

	"minic/internal/colors"
	"minic/internal/frontend/lexer"
)

// MaxDistanceLimit bounds max_distance. Larger values make every short word a near miss.
const MaxDistanceLimit = 8

// Config mirrors the YAML file. Unknown keys are rejected.
type Config struct {
	Mode        string `yaml:"mode"`
	MaxDistance int    `yaml:"max_distance"`
	KeepIgnored bool   `yaml:"keep_ignored"`
	Color       string `yaml:"color"`
	Debug       bool   `yaml:"debug"`
}

// Default is lenient with suggestions on and automatic colour
func Default() Config {
	return Config{
		Mode:        lexer.LENIENT.String(),
		MaxDistance: lexer.DefaultMaxDistance,
		Color:       string(colors.AUTO),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate names the first offending key
func (c Config) Validate() error {
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	if c.MaxDistance < 0 || c.MaxDistance > MaxDistanceLimit {
		return fmt.Errorf("max_distance: %d is outside 0..%d", c.MaxDistance, MaxDistanceLimit)
	}
	switch colors.Mode(c.Color) {
	case colors.AUTO, colors.ALWAYS, colors.NEVER:
	default:
		return fmt.Errorf("color: unknown value %q (want auto, always or never)", c.Color)
	}
	return nil
}

// ParseMode converts a mode name
func ParseMode(name string) (lexer.Mode, error) {
	switch name {
	case "strict":
		return lexer.STRICT, nil
	case "lenient":
		return lexer.LENIENT, nil
	}
	return lexer.STRICT, fmt.Errorf("mode: unknown value %q (want strict or lenient)", name)
}

// LexerOptions builds lexer options. The config must be valid.
func (c Config) LexerOptions(logger logr.Logger) lexer.Options {
	mode, _ := ParseMode(c.Mode)
	return lexer.Options{
		Mode:        mode,
		MaxDistance: c.MaxDistance,
		KeepIgnored: c.KeepIgnored,
		Logger:      logger,
	}
}
