// Package config loads tmemo settings from defaults, an optional YAML file,
// a .env file and TMEMO_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TMEMO"

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "tmemo.yaml"

// Config holds all application configuration.
type Config struct {
	DeckPath                string    `mapstructure:"deck_path" validate:"required"`
	CachePath               string    `mapstructure:"cache_path" validate:"required"`
	Log                     LogConfig `mapstructure:"log"`
	DayRolloverHours        int       `mapstructure:"day_rollover_hours" validate:"gte=0,lt=24"`
	TargetRetention         float64   `mapstructure:"target_retention" validate:"gte=0,lt=1"`
	DefaultSurroundingLines int       `mapstructure:"default_surrounding_lines" validate:"gte=0"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

var defaults = map[string]any{
	"deck_path":                 "tmemodeck.json",
	"cache_path":                ".tmemocache.db",
	"log.level":                 "warn",
	"log.format":                "text",
	"day_rollover_hours":        4,
	"target_retention":          0.0,
	"default_surrounding_lines": 2,
}

// Load reads configuration. An empty path looks for tmemo.yaml in the
// working directory and ignores it when absent; an explicit path must exist.
// Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yaml"))
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Every key has a default, so AutomaticEnv sees all of them.

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}
