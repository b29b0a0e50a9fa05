package config

import (
	"fmt"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Port           int           `mapstructure:"port"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
}

// ListenAddress returns the address the HTTP server binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf(":%d", c.Port)
}
