package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// The admin-editable register settings are not here; they are a persisted
// bundle (see model.Settings).
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production | test
	// Comma-separated; only enforced in production
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	// Storage
	StorageDriver  string `mapstructure:"STORAGE_DRIVER"` // sqlite | postgres | mysql | redis | memory
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	RedisKeyPrefix string `mapstructure:"REDIS_KEY_PREFIX"`

	// Storage circuit breaker
	StoreBreakerFailures    int `mapstructure:"STORE_BREAKER_FAILURES"`
	StoreBreakerOpenSeconds int `mapstructure:"STORE_BREAKER_OPEN_SECONDS"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	AdminUsername      string `mapstructure:"ADMIN_USERNAME"`
	AdminPasswordHash  string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// Business day
	Timezone string `mapstructure:"TIMEZONE"`
}

var storageDrivers = map[string]bool{"sqlite": true, "postgres": true, "mysql": true, "redis": true, "memory": true}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("CORS_ORIGINS", "")
	viper.SetDefault("STORAGE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "pos.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("REDIS_KEY_PREFIX", "pos:")
	viper.SetDefault("STORE_BREAKER_FAILURES", 3)
	viper.SetDefault("STORE_BREAKER_OPEN_SECONDS", 30)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 12)
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("TIMEZONE", "Local")

	// Optional .env file for local development; missing is fine
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	c.StorageDriver = strings.ToLower(c.StorageDriver)
	if !storageDrivers[c.StorageDriver] {
		return fmt.Errorf("STORAGE_DRIVER %q: want sqlite, postgres, mysql, redis or memory", c.StorageDriver)
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Location resolves TIMEZONE; business-day dates are computed in it.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// AllowedOrigins splits CORS_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// BreakerOpenTimeout is how long the storage breaker stays open.
func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.StoreBreakerOpenSeconds) * time.Second
}
