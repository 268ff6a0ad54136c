// Package config loads provider settings from a yaml file, a .env file and
// GRID_ROUTING_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const envPrefix = "GRID_ROUTING_"

type Config struct {
	Planner       string `yaml:"planner"`
	LogLevel      string `yaml:"log_level"`
	LogDir        string `yaml:"log_dir"`
	ListenAddr    string `yaml:"listen_addr"`
	MaxExpansions int    `yaml:"max_expansions"`
	MaxGridBytes  int64  `yaml:"max_grid_bytes"`
	DefaultSize   int    `yaml:"default_size"`
}

func Default() Config {
	return Config{
		Planner:      "astar",
		LogLevel:     "info",
		LogDir:       "log",
		ListenAddr:   ":8080",
		MaxGridBytes: 1 << 20,
		DefaultSize:  5,
	}
}

// Load reads yamlFile (optional) and envFile (optional, missing file ignored) over the defaults.
func Load(yamlFile, envFile string) (Config, error) {
	c := Default()
	if yamlFile != "" {
		buf, err := ioutil.ReadFile(yamlFile)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(buf, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", yamlFile, err)
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return c, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(envPrefix + "PLANNER"); ok {
		c.Planner = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_DIR"); ok {
		c.LogDir = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LISTEN_ADDR"); ok {
		c.ListenAddr = v
	}
	if v, ok := os.LookupEnv(envPrefix + "MAX_EXPANSIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_EXPANSIONS: %w", envPrefix, err)
		}
		c.MaxExpansions = n
	}
	if v, ok := os.LookupEnv(envPrefix + "MAX_GRID_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sMAX_GRID_BYTES: %w", envPrefix, err)
		}
		c.MaxGridBytes = n
	}
	if v, ok := os.LookupEnv(envPrefix + "DEFAULT_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sDEFAULT_SIZE: %w", envPrefix, err)
		}
		c.DefaultSize = n
	}
	return nil
}

func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.MaxExpansions < 0 {
		return fmt.Errorf("max_expansions must not be negative")
	}
	if c.MaxGridBytes <= 0 {
		return fmt.Errorf("max_grid_bytes must be positive")
	}
	if c.DefaultSize < 1 {
		return fmt.Errorf("default_size must be at least 1")
	}
	return nil
}
