package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from environment variables
// and an optional config file.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	ExportTimeout  time.Duration

	MaxRetries          int
	RetryBaseDelay      time.Duration
	MetadataConcurrency int

	OutputDir      string
	DefaultCountry string

	RedisURL         string
	MetadataCacheTTL time.Duration

	ExportDatabaseURL string

	LogLevel string
}

// Load reads the .env file, the optional config file at path and the environment,
// and returns a populated Config. An empty path skips the config file lookup.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	cfg := &Config{
		APIBaseURL:     strings.TrimRight(v.GetString("JOBSPY_API_URL"), "/"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		ExportTimeout:  v.GetDuration("EXPORT_TIMEOUT"),

		MaxRetries:          v.GetInt("MAX_RETRIES"),
		RetryBaseDelay:      v.GetDuration("RETRY_BASE_DELAY"),
		MetadataConcurrency: v.GetInt("METADATA_CONCURRENCY"),

		OutputDir:      v.GetString("OUTPUT_DIR"),
		DefaultCountry: v.GetString("DEFAULT_COUNTRY"),

		RedisURL:         v.GetString("REDIS_URL"),
		MetadataCacheTTL: v.GetDuration("METADATA_CACHE_TTL"),

		ExportDatabaseURL: v.GetString("EXPORT_DATABASE_URL"),

		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("JOBSPY_API_URL", "http://localhost:8000/api")
	v.SetDefault("REQUEST_TIMEOUT", 2*time.Minute)
	v.SetDefault("EXPORT_TIMEOUT", 3*time.Minute)
	v.SetDefault("MAX_RETRIES", 3)
	v.SetDefault("RETRY_BASE_DELAY", 500*time.Millisecond)
	v.SetDefault("METADATA_CONCURRENCY", 3)
	v.SetDefault("OUTPUT_DIR", ".")
	v.SetDefault("DEFAULT_COUNTRY", "usa")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("METADATA_CACHE_TTL", 24*time.Hour)
	v.SetDefault("EXPORT_DATABASE_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
}

func (c *Config) validate() error {
	var errs []error
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("JOBSPY_API_URL is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", c.RequestTimeout))
	}
	if c.ExportTimeout <= 0 {
		errs = append(errs, fmt.Errorf("EXPORT_TIMEOUT must be positive, got %v", c.ExportTimeout))
	}
	if c.MetadataConcurrency < 1 {
		errs = append(errs, fmt.Errorf("METADATA_CONCURRENCY must be at least 1, got %d", c.MetadataConcurrency))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// CacheEnabled reports whether a Redis metadata cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// DatabaseExportEnabled reports whether the Postgres export sink is configured.
func (c *Config) DatabaseExportEnabled() bool {
	return c.ExportDatabaseURL != ""
}
