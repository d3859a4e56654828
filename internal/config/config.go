// Package config loads tool settings from defaults, an optional YAML file,
// the environment and a .env file.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/olehluchkiv/enumshift/internal/source"
	"gopkg.in/yaml.v3"
)

// Environment variables read by MergeEnv.
const (
	EnvTypePrefix = "ENUMSHIFT_TYPE_PREFIX"
	EnvExtensions = "ENUMSHIFT_EXTENSIONS"
	EnvLogLevel   = "ENUMSHIFT_LOG_LEVEL"
	EnvLogFile    = "ENUMSHIFT_LOG_FILE"
	EnvMode       = "ENUMSHIFT_MODE"
)

type Config struct {
	TypePrefix string   `yaml:"type_prefix"`
	Extensions []string `yaml:"extensions"`
	LogLevel   string   `yaml:"log_level"`
	LogFile    string   `yaml:"log_file"` // empty logs to stderr only
	Mode       string   `yaml:"mode"`     // all, enums or imports
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		TypePrefix: "T",
		Extensions: slices.Clone(source.DefaultExtensions),
		LogLevel:   "info",
		Mode:       "all",
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then .env and process environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := cfg.MergeYAML(data); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	cfg.MergeEnv(os.Getenv)
	return cfg, nil
}

// MergeYAML overlays the fields present in data.
func (c *Config) MergeYAML(data []byte) error {
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	c.merge(file)
	return nil
}

// MergeEnv overlays the ENUMSHIFT_* variables returned by getenv.
func (c *Config) MergeEnv(getenv func(string) string) {
	env := Config{
		TypePrefix: strings.TrimSpace(getenv(EnvTypePrefix)),
		LogLevel:   strings.TrimSpace(getenv(EnvLogLevel)),
		LogFile:    strings.TrimSpace(getenv(EnvLogFile)),
		Mode:       strings.TrimSpace(getenv(EnvMode)),
	}
	if raw := strings.TrimSpace(getenv(EnvExtensions)); raw != "" {
		env.Extensions = splitList(raw)
	}
	c.merge(env)
}

func (c *Config) merge(o Config) {
	if o.TypePrefix != "" {
		c.TypePrefix = o.TypePrefix
	}
	if len(o.Extensions) > 0 {
		c.Extensions = o.Extensions
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
	if o.Mode != "" {
		c.Mode = o.Mode
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
