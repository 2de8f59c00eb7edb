package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host string
	Port string

	// Database settings
	DatabasePath string

	// Logging settings
	LogLevel  string
	LogFormat string

	// Cache settings
	CacheSize int
	CacheTTL  time.Duration

	// Reconcile settings
	ReconcileEnabled  bool
	ReconcileInterval time.Duration
	LockPath          string

	// Calendar settings
	Timezone string
	Location *time.Location
}

// Load reads configuration from .env, environment variables and an optional
// config.toml in the working directory, in increasing order of precedence:
// defaults, config file, environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not an error if .env doesn't exist
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("database_path", "./data/lawdesk.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("cache_size", 1000)
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("reconcile_enabled", true)
	v.SetDefault("reconcile_interval", "15m")
	v.SetDefault("lock_path", "")
	v.SetDefault("timezone", "Local")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Host:             v.GetString("host"),
		Port:             v.GetString("port"),
		DatabasePath:     v.GetString("database_path"),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
		ReconcileEnabled: v.GetBool("reconcile_enabled"),
		LockPath:         v.GetString("lock_path"),
		Timezone:         v.GetString("timezone"),
	}

	var err error
	cfg.CacheSize = v.GetInt("cache_size")
	if cfg.CacheSize <= 0 {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %d", cfg.CacheSize)
	}

	cfg.CacheTTL, err = parseDuration(v.GetString("cache_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	cfg.ReconcileInterval, err = parseDuration(v.GetString("reconcile_interval"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_INTERVAL: %w", err)
	}

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	if cfg.LockPath == "" {
		cfg.LockPath = cfg.DatabasePath + ".reconcile.lock"
	}

	return cfg, nil
}

func parseDuration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", raw)
	}
	return d, nil
}
