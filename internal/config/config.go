// Package config defines the application configuration and loads it from a
// file and environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application settings, populated by Load.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Hosted   HostedConfig   `mapstructure:"hosted"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lte=65535"`
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DatabaseConfig holds the relational connection settings. URL may be empty;
// the server then runs on the in-memory backend.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// HostedConfig holds the hosted data service settings. Both fields must be
// set for the hosted backend to be selectable.
type HostedConfig struct {
	URL    string `mapstructure:"url"     validate:"omitempty,url"`
	APIKey string `mapstructure:"api_key"`
}

// Enabled reports whether the hosted backend is fully configured.
func (h HostedConfig) Enabled() bool { return h.URL != "" && h.APIKey != "" }

// AuthConfig holds token and session settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	SessionLifetimeHours int    `mapstructure:"session_lifetime_hours" validate:"required,gt=0"`
}

// Load reads configuration from config.yaml (optional, current directory)
// and SHOPFRONT_* environment variables, environment taking precedence, then
// validates the result.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.session_lifetime_hours", 24)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SHOPFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys bound explicitly so AutomaticEnv sees them even when no config
	// file provides them.
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.url",
		"hosted.url", "hosted.api_key",
		"auth.jwt_secret", "auth.token_lifetime_minutes", "auth.session_lifetime_hours",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}
