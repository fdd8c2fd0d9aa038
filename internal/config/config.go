package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultSessionSecret signs session cookies when SESSION_SECRET is unset.
// It is only fit for local development.
const DefaultSessionSecret = "change-me"

// Config holds application level configuration loaded from an optional YAML file
// and environment variables.
type Config struct {
	ServerPort        string        `yaml:"server_port"`
	APIBaseURL        string        `yaml:"api_base_url"`
	RedisAddr         string        `yaml:"redis_addr"`
	RedisDB           int           `yaml:"redis_db"`
	RedisPass         string        `yaml:"redis_password"`
	SessionSecret     string        `yaml:"session_secret"`
	SessionTTL        time.Duration `yaml:"session_ttl"`
	RememberTTL       time.Duration `yaml:"remember_ttl"`
	StockCacheTTL     time.Duration `yaml:"stock_cache_ttl"`
	HTTPClientTimeout time.Duration `yaml:"http_client_timeout"`
	CookieSecure      bool          `yaml:"cookie_secure"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	SwaggerHost       string        `yaml:"swagger_host"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		ServerPort:    "8080",
		APIBaseURL:    "http://localhost:5000",
		RedisAddr:     "localhost:6379",
		SessionSecret: DefaultSessionSecret,
		SessionTTL:    12 * time.Hour,
		RememberTTL:   30 * 24 * time.Hour,
		StockCacheTTL: 2 * time.Minute,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// DefaultSecret reports whether session cookies are signed with the built-in secret.
func (c *Config) DefaultSecret() bool {
	return c.SessionSecret == DefaultSessionSecret
}

// Load builds Config from defaults, then CONFIG_FILE (if set), then environment.
func Load() (*Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.loadEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) loadEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.APIBaseURL = getEnv("API_BASE_URL", c.APIBaseURL)
	c.RedisAddr = getEnvAllowEmpty("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.RedisPass = getEnv("REDIS_PASSWORD", c.RedisPass)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.SessionTTL = getEnvDuration("SESSION_TTL", c.SessionTTL)
	c.RememberTTL = getEnvDuration("REMEMBER_TTL", c.RememberTTL)
	c.StockCacheTTL = getEnvDuration("STOCK_CACHE_TTL", c.StockCacheTTL)
	c.HTTPClientTimeout = getEnvDuration("HTTP_CLIENT_TIMEOUT", c.HTTPClientTimeout)
	c.CookieSecure = getEnvBool("COOKIE_SECURE", c.CookieSecure)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.SwaggerHost = getEnv("SWAGGER_HOST", c.SwaggerHost)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvAllowEmpty lets an explicitly empty variable override the default,
// e.g. REDIS_ADDR= to run without Redis.
func getEnvAllowEmpty(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
