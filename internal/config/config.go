package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all tilesense configuration.
type Config struct {
	// Tileset owning the learned patterns. Empty means "generate one".
	TilesetID string `yaml:"tileset_id"`

	// TileBound is the exclusive upper bound of tile indices, e.g. 1024. 0 accepts any tile.
	TileBound int `yaml:"tile_bound"`

	Edge EdgeConfig `yaml:"edge"`

	// RepeatMinCount logs a pattern every time its frequency reaches this count or more (0 disables).
	RepeatMinCount int `yaml:"repeat_min_count"`

	Logging LoggingConfig `yaml:"logging"`
}

// EdgeConfig decides the terrain of neighbors outside a map.
type EdgeConfig struct {
	Policy  string `yaml:"policy"` // mirror, fixed
	Terrain int    `yaml:"terrain"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

const (
	EdgeMirror = "mirror"
	EdgeFixed  = "fixed"
)

var ErrInvalidConfig = errors.New("invalid config")

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Edge: EdgeConfig{
			Policy: EdgeMirror,
		},
		RepeatMinCount: 0,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults. Fields missing from the file keep their default.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it is set, otherwise returns Default.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) Validate() error {
	if c.TileBound < 0 {
		return fmt.Errorf("%w: tile_bound must not be negative, got %d", ErrInvalidConfig, c.TileBound)
	}
	if c.RepeatMinCount < 0 {
		return fmt.Errorf("%w: repeat_min_count must not be negative, got %d", ErrInvalidConfig, c.RepeatMinCount)
	}
	switch c.Edge.Policy {
	case EdgeMirror, EdgeFixed:
	default:
		return fmt.Errorf("%w: edge.policy must be %q or %q, got %q", ErrInvalidConfig, EdgeMirror, EdgeFixed, c.Edge.Policy)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
