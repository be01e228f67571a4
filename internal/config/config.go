package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/gccscope/internal/aggregate"
	"github.com/crimson-sun/gccscope/internal/constraint"
)

// Config holds all gccscope configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
	LogLevel string         `yaml:"log_level"`
}

// AnalysisConfig holds engine settings.
type AnalysisConfig struct {
	JoinToleranceMs int64                `yaml:"join_tolerance_ms"`
	Thresholds      aggregate.Thresholds `yaml:"thresholds"`
}

// OutputConfig holds report destination settings. Empty paths mean the
// corresponding report is not written; JSONPath "-" selects stdout.
type OutputConfig struct {
	JSONPath string `yaml:"json_path"`
	TextPath string `yaml:"text_path"`
	Pretty   bool   `yaml:"pretty"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Analysis: AnalysisConfig{
			JoinToleranceMs: getenvInt("GCCSCOPE_JOIN_TOLERANCE_MS", constraint.DefaultJoinToleranceMs),
			Thresholds:      aggregate.DefaultThresholds(),
		},
		Output: OutputConfig{
			JSONPath: getenv("GCCSCOPE_JSON", "-"),
			TextPath: os.Getenv("GCCSCOPE_TEXT"),
			Pretty:   os.Getenv("GCCSCOPE_PRETTY") == "true",
		},
		LogLevel: getenv("GCCSCOPE_LOG_LEVEL", "info"),
	}
}

// ApplyFile overlays settings from a yaml file onto the config. Zero-valued
// file fields leave the existing values untouched because yaml decodes into
// the populated struct in place.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
