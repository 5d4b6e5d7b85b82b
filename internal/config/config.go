// Package config loads service settings from the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the service settings.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseDSN string `mapstructure:"DATABASE_DSN"`
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`
	EventsQueue string `mapstructure:"PRODUCT_EVENTS_QUEUE"`
}

// EventsEnabled reports whether a broker URL was configured.
func (c Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// Load reads config.yaml from the given paths when present, then applies
// environment overrides.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:catalog.db?cache=shared")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("PRODUCT_EVENTS_QUEUE", "product_events")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()

	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}
