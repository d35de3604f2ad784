// Package config loads the search engine's configuration from
// a YAML file with environment-variable overrides, following the same
// Load/defaultConfig/applyEnvOverrides shape used across this codebase's
// ambient packages.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level engine configuration.
type Config struct {
	Engine      EngineConfig      `yaml:"engine"`
	Accumulator AccumulatorConfig `yaml:"accumulator"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// EngineConfig controls the scoring and ranking constants the SearchEngine
// façade uses.
type EngineConfig struct {
	StopWords    string  `yaml:"stopWords"`
	MaxResult    int     `yaml:"maxResult"`
	RelevanceEps float64 `yaml:"relevanceEpsilon"`
}

// AccumulatorConfig controls the ConcurrentAccumulator's shard count.
type AccumulatorConfig struct {
	ShardCount int `yaml:"shardCount"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls whether Prometheus collectors are registered.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if path is non-empty) and applies
// environment-variable overrides on top of defaultConfig's values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			StopWords:    "",
			MaxResult:    5,
			RelevanceEps: 1e-6,
		},
		Accumulator: AccumulatorConfig{
			ShardCount: 32,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TFIDX_STOP_WORDS"); v != "" {
		cfg.Engine.StopWords = v
	}
	if v := os.Getenv("TFIDX_MAX_RESULT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.MaxResult = n
		}
	}
	if v := os.Getenv("TFIDX_SHARD_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Accumulator.ShardCount = n
		}
	}
	if v := os.Getenv("TFIDX_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TFIDX_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("TFIDX_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}
