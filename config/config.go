package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"https://7862ai.netlify.app",
}

// Environment variable backing each config key.
var envBindings = map[string]string{
	"port":            "PORT",
	"api_key":         "GOOGLE_API_KEY",
	"model":           "GEMINI_MODEL",
	"allowed_origins": "ALLOWED_ORIGINS",
	"request_timeout": "REQUEST_TIMEOUT",
	"log_level":       "LOG_LEVEL",
}

// LoadConfig builds the configuration from defaults, an optional config file, a
// .env file and the process environment, in increasing order of precedence.
// A configFile ending in .env replaces the default .env lookup.
func LoadConfig(configFile string) (*Config, error) {
	dotEnv := DotEnvFile
	if configFile != "" && filepath.Ext(configFile) == ".env" {
		dotEnv = configFile
		configFile = ""
	}
	return load(configFile, dotEnv)
}

func load(configFile, dotEnvFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 3010)
	v.SetDefault("model", "gemini-1.5-flash")
	v.SetDefault("allowed_origins", defaultAllowedOrigins)
	v.SetDefault("request_timeout", 60*time.Second)
	v.SetDefault("log_level", "info")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if filepath.Ext(configFile) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := applyDotEnv(v, dotEnvFile); err != nil {
		return nil, err
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := configuration.validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// applyDotEnv copies values from a dotenv file for every variable the real
// environment does not define.
func applyDotEnv(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	dot := viper.New()
	dot.SetConfigFile(path)
	dot.SetConfigType("env")
	if err := dot.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading env file: %w", err)
	}

	for key, env := range envBindings {
		if _, ok := os.LookupEnv(env); ok {
			continue
		}
		if dot.IsSet(env) {
			v.Set(key, dot.Get(env))
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return errors.New("api_key is required (set GOOGLE_API_KEY)")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Model == "" {
		return errors.New("model is required")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("invalid request_timeout %s", c.RequestTimeout)
	}

	origins := make([]string, 0, len(c.AllowedOrigins))
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
	return nil
}
