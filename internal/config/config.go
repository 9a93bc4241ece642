package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-notes/internal/storeinfra"
)

// Config is the application configuration read from a YAML (or any viper
// supported) file.
type Config struct {
	Logger LoggerConfig      `mapstructure:"logger"`
	Store  storeinfra.Config `mapstructure:"store"`
	CLI    CLIConfig         `mapstructure:"cli"`
}

// LoggerConfig selects the zap preset.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// CLIConfig holds settings for the todo command.
type CLIConfig struct {
	// Timeout bounds each command.
	Timeout time.Duration `mapstructure:"timeout"`
	// DateLayout parses and prints due dates.
	DateLayout string `mapstructure:"date_layout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Logger: LoggerConfig{Level: "info"},
		Store:  storeinfra.DefaultConfig(),
		CLI: CLIConfig{
			Timeout:    10 * time.Second,
			DateLayout: "2006-01-02 15:04",
		},
	}
}

// Load reads file, fills unset fields from Default and validates the result.
// An empty file name returns Default.
func Load(file string) (*Config, error) {
	cfg := Default()
	if file == "" {
		return &cfg, nil
	}

	loaded, err := InitConfig[Config](file)
	if err != nil {
		return nil, err
	}
	loaded.applyDefaults(cfg)

	if err := loaded.Validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}

func (c *Config) applyDefaults(def Config) {
	if c.Logger.Level == "" {
		c.Logger.Level = def.Logger.Level
	}
	if c.Store.Driver == "" {
		c.Store.Driver = def.Store.Driver
	}
	if c.Store.DSN == "" {
		c.Store.DSN = def.Store.DSN
	}
	if c.Store.MaxOpenConns == 0 && c.Store.IsSQLite() {
		c.Store.MaxOpenConns = def.Store.MaxOpenConns
	}
	if c.Store.PingTimeout == 0 {
		c.Store.PingTimeout = def.Store.PingTimeout
	}
	if c.CLI.Timeout == 0 {
		c.CLI.Timeout = def.CLI.Timeout
	}
	if c.CLI.DateLayout == "" {
		c.CLI.DateLayout = def.CLI.DateLayout
	}
}

// Validate checks the store settings and the CLI limits.
func (c Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if c.CLI.Timeout < 0 {
		return fmt.Errorf("cli: timeout must be non-negative")
	}
	return nil
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults replaces ${VAR} and ${VAR:-default} with values from
// the environment.
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		matches := envPattern.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}

		if value := os.Getenv(matches[1]); value != "" {
			return value
		}
		return defaultValue
	})
}

// InitConfig reads configFile into a new C, expanding environment
// references in every string value first.
func InitConfig[C any](configFile string) (*C, error) {
	v := viper.New()
	ext := strings.TrimLeft(filepath.Ext(configFile), ".")

	v.SetConfigFile(configFile)
	v.SetConfigType(ext)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig: %w", err)
	}

	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if value == "" {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		if expanded == "true" || expanded == "false" {
			boolValue, _ := strconv.ParseBool(expanded)
			v.Set(k, boolValue)
		} else if intValue, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, intValue)
		} else {
			v.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}
