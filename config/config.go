package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/transitflow/depotplan/core/metrics"
	"github.com/transitflow/depotplan/core/optimizer"
	"github.com/transitflow/depotplan/core/simulation"
	"github.com/transitflow/depotplan/fleet"
	"github.com/transitflow/depotplan/infra/notify"
)

// StorageConfig selects persistence backends for run history and simulation
// results.
type StorageConfig struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
	// HistoryLimit bounds the in-memory run history.
	HistoryLimit int `json:"history_limit"`
}

// SetDefaults fills missing fields with sane defaults.
func (c *StorageConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Backend == "sqlite" && c.Path == "" {
		c.Path = "depotplan.db"
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 50
	}
}

// Validate checks the backend selection.
func (c StorageConfig) Validate() error {
	switch c.Backend {
	case "memory", "sqlite":
		return nil
	default:
		return fmt.Errorf("storage: unknown backend %q", c.Backend)
	}
}

// Config is the root configuration of the planner service.
type Config struct {
	Optimizer  optimizer.Config  `json:"optimizer"`
	Simulation simulation.Policy `json:"simulation"`
	Metrics    metrics.Config    `json:"metrics"`
	Fleet      fleet.Config      `json:"fleet"`
	Notify     notify.Config     `json:"notify"`
	Storage    StorageConfig     `json:"storage"`
}

// Load reads the configuration file at path, applies DP_-prefixed environment
// overrides and fills defaults. Nested keys are addressed with double
// underscores, e.g. DP_FLEET__SOURCE=mqtt.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("DP_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a fully defaulted configuration without reading any file.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every zero-valued section with the reference defaults.
func (c *Config) ApplyDefaults() {
	if c.Optimizer.Weights == (optimizer.Weights{}) {
		c.Optimizer.Weights = optimizer.DefaultWeights()
	}
	c.Optimizer.Thresholds.SetDefaults()
	c.Simulation.SetDefaults()
	c.Metrics.SetDefaults()
	c.Fleet.SetDefaults()
	c.Notify.SetDefaults()
	c.Storage.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Optimizer.Weights.Validate(); err != nil {
		return err
	}
	if err := c.Optimizer.Thresholds.Validate(); err != nil {
		return err
	}
	if err := c.Fleet.Validate(); err != nil {
		return err
	}
	if err := c.Notify.Validate(); err != nil {
		return err
	}
	return c.Storage.Validate()
}
