package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration
type Config struct {
	Addr            string         `yaml:"addr"`
	Catalog         string         `yaml:"catalog"`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout"`
	Log             LogConfig      `yaml:"log"`
	Markdown        MarkdownConfig `yaml:"markdown"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MarkdownConfig struct {
	AllowRawHTML bool `yaml:"allow_raw_html"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Addr:            ":3000",
		ShutdownTimeout: 5 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path, falling back to BLOG_CONFIG when path is
// empty. Without either the defaults are used. Environment overrides (PORT,
// LOG_LEVEL) are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("BLOG_CONFIG")
	}

	config := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// applyDefaults fills in values an explicit file left blank
func (c *Config) applyDefaults() {
	d := Default()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

func (c *Config) Validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: must be text or json", c.Log.Format)
	}
	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("catalog file %s does not exist", c.Catalog)
		}
	}
	return nil
}
