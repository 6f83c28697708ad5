// Package config loads tool configuration from a yaml file, an optional
// .env file, and PSCOPE_* environment variables, in that order of
// precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings.
type Config struct {
	// Storage configuration
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Work calendar used by after-hours / during-work queries
	Work WorkConfig `yaml:"work" mapstructure:"work"`

	// Development-cost estimation settings
	Estimate EstimateConfig `yaml:"estimate" mapstructure:"estimate"`

	// Logging settings
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

type StorageConfig struct {
	// DatabasePath is the sqlite file holding recent-project bookmarks
	// and the commit cache.
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
	// SessionPath is the bbolt file holding session state.
	SessionPath string `yaml:"session_path" mapstructure:"session_path"`
	// CacheTTL bounds how long cached commit histories are trusted.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

type WorkConfig struct {
	// DayStartHour and DayEndHour bound the working day, local time.
	DayStartHour int `yaml:"day_start_hour" mapstructure:"day_start_hour"`
	DayEndHour   int `yaml:"day_end_hour" mapstructure:"day_end_hour"`
	// Holidays is a TimePeriods expression excluded from work time,
	// e.g. "2024-12-25,2024-12-31--2025-01-01".
	Holidays string `yaml:"holidays" mapstructure:"holidays"`
}

type EstimateConfig struct {
	HourlyRate   float64 `yaml:"hourly_rate" mapstructure:"hourly_rate"`
	HoursPerDay  float64 `yaml:"hours_per_day" mapstructure:"hours_per_day"`
	DaysPerMonth float64 `yaml:"days_per_month" mapstructure:"days_per_month"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

// Default returns the default configuration rooted under the user home
// directory.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Storage: StorageConfig{
			DatabasePath: filepath.Join(homeDir, ".pscope", "pscope.db"),
			SessionPath:  filepath.Join(homeDir, ".pscope", "session.db"),
			CacheTTL:     24 * time.Hour,
		},
		Work: WorkConfig{
			DayStartHour: 9,
			DayEndHour:   17,
		},
		Estimate: EstimateConfig{
			HourlyRate:   100,
			HoursPerDay:  8,
			DaysPerMonth: 21,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from the given file, or from
// ~/.pscope/config.yaml when path is empty. A missing file is not an error;
// defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	// Best effort; projects without a .env are the norm.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("storage.database_path", defaults.Storage.DatabasePath)
	v.SetDefault("storage.session_path", defaults.Storage.SessionPath)
	v.SetDefault("storage.cache_ttl", defaults.Storage.CacheTTL)
	v.SetDefault("work.day_start_hour", defaults.Work.DayStartHour)
	v.SetDefault("work.day_end_hour", defaults.Work.DayEndHour)
	v.SetDefault("work.holidays", defaults.Work.Holidays)
	v.SetDefault("estimate.hourly_rate", defaults.Estimate.HourlyRate)
	v.SetDefault("estimate.hours_per_day", defaults.Estimate.HoursPerDay)
	v.SetDefault("estimate.days_per_month", defaults.Estimate.DaysPerMonth)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.json", defaults.Log.JSON)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".pscope"))
			v.SetConfigName("config")
			if err := v.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return nil, fmt.Errorf("reading config: %w", err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Work.DayStartHour < 0 || cfg.Work.DayEndHour > 24 || cfg.Work.DayStartHour >= cfg.Work.DayEndHour {
		return nil, fmt.Errorf("work day hours [%d, %d) are not a valid range",
			cfg.Work.DayStartHour, cfg.Work.DayEndHour)
	}

	return &cfg, nil
}
