package configloader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is used when CONFIG_PATH is not set.
	DefaultPath = "config/config.yml"
	// BackendURLEnv overrides backend.baseURL.
	BackendURLEnv = "TRACKER_BACKEND_URL"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// BackendConfig describes the remote portfolio API.
type BackendConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	RateLimitBurst       int     `yaml:"rateLimitBurst"`
}

// AuthConfig holds token persistence and verification settings.
type AuthConfig struct {
	TokenFile          string `yaml:"tokenFile"`
	VerifyRetries      int    `yaml:"verifyRetries"`
	VerifyRetryDelayMs int64  `yaml:"verifyRetryDelayMs"`
}

// PortfolioConfig holds configuration for the PortfolioService.
type PortfolioConfig struct {
	PollIntervalMinutes  int    `yaml:"pollIntervalMinutes"`
	MaxConcurrentFetches int    `yaml:"maxConcurrentFetches"`
	DefaultSort          string `yaml:"defaultSort"`
}

// WalletsConfig points at the optional local wallet list.
type WalletsConfig struct {
	ImportFile string `yaml:"importFile"`
}

// CORSConfig lists origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Backend   BackendConfig   `yaml:"backend"`
	Auth      AuthConfig      `yaml:"auth"`
	Portfolio PortfolioConfig `yaml:"portfolio"`
	Wallets   WalletsConfig   `yaml:"wallets"`
	CORS      CORSConfig      `yaml:"cors"`
}

// PollInterval is the fixed refresh period.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Portfolio.PollIntervalMinutes) * time.Minute
}

// RequestTimeout is the default timeout for backend calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Backend.RequestTimeoutMillis) * time.Millisecond
}

// VerifyRetryDelay is the pause between token verification attempts.
func (c *Config) VerifyRetryDelay() time.Duration {
	return time.Duration(c.Auth.VerifyRetryDelayMs) * time.Millisecond
}

// PathFromEnv returns CONFIG_PATH or the default path.
func PathFromEnv() string {
	if p := strings.TrimSpace(os.Getenv("CONFIG_PATH")); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse unmarshals YAML data, applies defaults and environment overrides, and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if url := strings.TrimSpace(os.Getenv(BackendURLEnv)); url != "" {
		logrus.Infof("%s set, overriding backend.baseURL", BackendURLEnv)
		cfg.Backend.BaseURL = url
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	cfg.Server.Port = strings.TrimPrefix(cfg.Server.Port, ":")
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Backend.RequestTimeoutMillis <= 0 {
		cfg.Backend.RequestTimeoutMillis = 10000 // 10 seconds
		logrus.Infof("backend.requestTimeoutMillis not set, defaulting to %d ms", cfg.Backend.RequestTimeoutMillis)
	}
	if cfg.Backend.RateLimitPerSecond <= 0 {
		cfg.Backend.RateLimitPerSecond = 10
	}
	if cfg.Backend.RateLimitBurst <= 0 {
		cfg.Backend.RateLimitBurst = 5
	}

	if cfg.Auth.TokenFile == "" {
		cfg.Auth.TokenFile = "data/session.yml"
	}
	if cfg.Auth.VerifyRetries <= 0 {
		cfg.Auth.VerifyRetries = 3
	}
	if cfg.Auth.VerifyRetryDelayMs <= 0 {
		cfg.Auth.VerifyRetryDelayMs = 1000
	}

	if cfg.Portfolio.PollIntervalMinutes <= 0 {
		cfg.Portfolio.PollIntervalMinutes = 5
		logrus.Infof("portfolio.pollIntervalMinutes not set, defaulting to %d minutes", cfg.Portfolio.PollIntervalMinutes)
	}
	if cfg.Portfolio.MaxConcurrentFetches <= 0 {
		cfg.Portfolio.MaxConcurrentFetches = 4
	}
	if cfg.Portfolio.DefaultSort == "" {
		cfg.Portfolio.DefaultSort = "value"
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
}

func validate(cfg *Config) error {
	if cfg.Backend.BaseURL == "" {
		return fmt.Errorf("backend.baseURL is required (or set %s)", BackendURLEnv)
	}
	if !strings.HasPrefix(cfg.Backend.BaseURL, "http://") && !strings.HasPrefix(cfg.Backend.BaseURL, "https://") {
		return fmt.Errorf("backend.baseURL must be an http(s) URL, got %q", cfg.Backend.BaseURL)
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		logrus.Warnf("Invalid log level in config: %s. Defaulting to info.", cfg.Logging.Level)
		cfg.Logging.Level = "info"
	}
	return nil
}
