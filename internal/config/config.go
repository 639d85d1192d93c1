package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SourceHolidayAPI = "holidayapi"
	SourceFile       = "file"

	envPrefix = "HOLIDAY_STATS"
)

// Config represents application configuration
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Source SourceConfig `mapstructure:"source"`
	Input  InputConfig  `mapstructure:"input"`
	Log    LogConfig    `mapstructure:"log"`
}

// APIConfig represents holidays API configuration
type APIConfig struct {
	Endpoint          string  `mapstructure:"endpoint"`
	Key               string  `mapstructure:"key"`
	Year              int     `mapstructure:"year"`
	Timeout           string  `mapstructure:"timeout"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"` // 0 disables pacing
}

// SourceConfig selects where holidays come from
type SourceConfig struct {
	Type string `mapstructure:"type"` // "holidayapi" or "file"
	Dir  string `mapstructure:"dir"`  // For file type: directory with <COUNTRY>.json
}

// InputConfig represents country code input rules
type InputConfig struct {
	MaxCountries int `mapstructure:"max_countries"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.endpoint", "https://holidayapi.com/v1/holidays")
	v.SetDefault("api.key", "")
	v.SetDefault("api.year", 2019)
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.requests_per_second", 1.0)
	v.SetDefault("source.type", SourceHolidayAPI)
	v.SetDefault("source.dir", "testdata")
	v.SetDefault("input.max_countries", 3)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Option adjusts the viper instance before the config is unmarshalled
type Option func(v *viper.Viper)

// WithOverride forces key to value, taking precedence over file and environment
func WithOverride(key string, value interface{}) Option {
	return func(v *viper.Viper) {
		v.Set(key, value)
	}
}

// Load loads configuration from file, .env and HOLIDAY_STATS_* environment variables.
// A missing config file is not an error; defaults and environment are used instead.
func Load(configPath string, opts ...Option) (*Config, error) {
	// .env is optional; an existing environment always wins
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.holiday-stats")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	for _, opt := range opts {
		opt(v)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceHolidayAPI:
		if c.API.Endpoint == "" {
			return fmt.Errorf("api.endpoint is required")
		}
		if c.API.Key == "" {
			return fmt.Errorf("api.key is required (set %s_API_KEY)", envPrefix)
		}
	case SourceFile:
		if c.Source.Dir == "" {
			return fmt.Errorf("source.dir is required for file type")
		}
	default:
		return fmt.Errorf("source.type must be '%s' or '%s', got '%s'", SourceHolidayAPI, SourceFile, c.Source.Type)
	}

	if c.API.Year <= 0 {
		return fmt.Errorf("api.year must be positive")
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api.requests_per_second must not be negative")
	}
	if c.Input.MaxCountries <= 0 {
		return fmt.Errorf("input.max_countries must be positive")
	}

	return nil
}

// GetTimeout returns the HTTP timeout duration
func (c *APIConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil || duration <= 0 {
		return 10 * time.Second
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.API.Key = os.ExpandEnv(c.API.Key)
	c.API.Endpoint = os.ExpandEnv(c.API.Endpoint)
	c.Source.Dir = os.ExpandEnv(c.Source.Dir)
}
