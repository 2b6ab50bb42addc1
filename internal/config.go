package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAPIBaseURL = "http://localhost:8080/api"
	DefaultAPITimeout = 10 * time.Second
	DefaultSessionKey = "auth"
)

type Config struct {
	AppEnv        string              `mapstructure:"app_env"`
	API           APIConfig           `mapstructure:"api"`
	Session       SessionConfig       `mapstructure:"session"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
	Key  string `mapstructure:"key"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultSessionPath is where the session database lives when nothing is configured.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".empdir", "session.db")
	}
	return filepath.Join(home, ".empdir", "session.db")
}

// ----------------- ENV LOADING -----------------

func LoadConfigFromEnv() *Config {
	return &Config{
		AppEnv: getEnv("APP_ENV", "production"),
		API: APIConfig{
			BaseURL: getEnv("EMPDIR_API_BASE_URL", DefaultAPIBaseURL),
			Timeout: getEnvAsDuration("EMPDIR_API_TIMEOUT", DefaultAPITimeout),
		},
		Session: SessionConfig{
			Path: getEnv("EMPDIR_SESSION_PATH", DefaultSessionPath()),
			Key:  getEnv("EMPDIR_SESSION_KEY", DefaultSessionKey),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("EMPDIR_LOG_LEVEL", "info"),
				Format: getEnv("EMPDIR_LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// getEnvAsDuration accepts Go durations ("15s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs := getEnvAsInt(key, -1); secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("api config: %v", err))
	}

	if err := c.Session.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("session config: %v", err))
	}

	if err := c.Observability.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %s: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url %s must use http or https", c.BaseURL)
	}
	if c.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	return nil
}

func (c *SessionConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return errors.New("path is required")
	}
	if strings.TrimSpace(c.Key) == "" {
		return errors.New("key is required")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error, got %q", c.Level)
	}
	switch c.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("format must be json or text, got %q", c.Format)
	}
	return nil
}

// LoggerEnv maps the configured log format onto the env switch pkg/logger understands.
func (c *Config) LoggerEnv() string {
	if c.Observability.Logging.Format == "json" || (c.Observability.Logging.Format == "" && c.AppEnv == "production") {
		return "production"
	}
	return "development"
}
