// Package config holds the CLI settings. Values come from defaults, then an
// optional YAML file, then CLASSGRAPH_* environment variables; command-line
// flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mabhi256/classgraph/internal/cache"
	"github.com/mabhi256/classgraph/internal/view"
)

const (
	EnvClasses    = "CLASSGRAPH_CLASSES"
	EnvPrototypes = "CLASSGRAPH_PROTOTYPES"
	EnvCap        = "CLASSGRAPH_CAP"
	EnvLogLevel   = "CLASSGRAPH_LOG_LEVEL"
)

type Config struct {
	ClassesPath    string `yaml:"classes"`
	PrototypesPath string `yaml:"prototypes"`

	Cap       int  `yaml:"cap" validate:"gte=1"`
	CacheSize int  `yaml:"cacheSize" validate:"gte=1"`
	Color     bool `yaml:"color"`

	LogLevel  string `yaml:"logLevel" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"logFormat" validate:"oneof=text json"`
}

var configValidate = validator.New()

func Default() Config {
	return Config{
		Cap:       view.DefaultCap,
		CacheSize: cache.DefaultCapacity,
		Color:     true,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// LoadFile returns the defaults overlaid with the YAML file at path. A
// missing file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvClasses); v != "" {
		c.ClassesPath = v
	}
	if v := os.Getenv(EnvPrototypes); v != "" {
		c.PrototypesPath = v
	}
	if v := os.Getenv(EnvCap); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCap, err)
		}
		c.Cap = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
