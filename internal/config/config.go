package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL points at the bundled mock API so the CLI works out
// of the box. Production deployments override JOANIE_API_URL.
const DefaultBaseURL = "http://localhost:8071/api/v1.0/"

// Config holds all client configuration loaded from an optional YAML
// profile, .env and environment variables. Environment values win over
// the profile, the profile wins over defaults.
type Config struct {
	BaseURL        string
	Token          string
	Language       string
	PageSize       int
	HTTPTimeout    time.Duration
	SearchDebounce time.Duration
	CacheTTL       time.Duration
	CacheStaleFor  time.Duration
	RetryMax       int
	RateLimit      float64
	LogLevel       string

	MockAddr      string
	MockJWTSecret string
}

// profile mirrors Config for the YAML profile file. Durations are kept
// as strings so "30s" style values can be written directly.
type profile struct {
	APIURL         string  `yaml:"api_url"`
	Token          string  `yaml:"token"`
	Language       string  `yaml:"language"`
	PageSize       int     `yaml:"page_size"`
	HTTPTimeout    string  `yaml:"http_timeout"`
	SearchDebounce string  `yaml:"search_debounce"`
	CacheTTL       string  `yaml:"cache_ttl"`
	CacheStaleFor  string  `yaml:"cache_stale_for"`
	RetryMax       *int    `yaml:"retry_max"`
	RateLimit      float64 `yaml:"rate_limit"`
	LogLevel       string  `yaml:"log_level"`
	MockAddr       string  `yaml:"mock_addr"`
	MockJWTSecret  string  `yaml:"mock_jwt_secret"`
}

// Load loads configuration from .env (optional), an optional YAML
// profile pointed at by JOANIE_PROFILE, and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{
		BaseURL:        DefaultBaseURL,
		Language:       "en",
		PageSize:       20,
		HTTPTimeout:    30 * time.Second,
		SearchDebounce: 300 * time.Millisecond,
		CacheTTL:       15 * time.Second,
		CacheStaleFor:  5 * time.Minute,
		RetryMax:       3,
		LogLevel:       "info",
		MockAddr:       ":8071",
		MockJWTSecret:  "insecure-local-secret",
	}

	if path := getEnv("JOANIE_PROFILE", ""); path != "" {
		if err := applyProfile(cfg, path); err != nil {
			return nil, fmt.Errorf("profile %s: %w", path, err)
		}
	}

	cfg.BaseURL = getEnv("JOANIE_API_URL", cfg.BaseURL)
	cfg.Token = getEnv("JOANIE_API_TOKEN", cfg.Token)
	cfg.Language = getEnv("JOANIE_LANGUAGE", cfg.Language)
	cfg.LogLevel = getEnv("JOANIE_LOG_LEVEL", cfg.LogLevel)
	cfg.MockAddr = getEnv("JOANIE_MOCK_ADDR", cfg.MockAddr)
	cfg.MockJWTSecret = getEnv("JOANIE_MOCK_JWT_SECRET", cfg.MockJWTSecret)

	cfg.PageSize, err = getEnvAsInt("JOANIE_PAGE_SIZE", cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("invalid JOANIE_PAGE_SIZE: %w", err)
	}
	cfg.RetryMax, err = getEnvAsInt("JOANIE_RETRY_MAX", cfg.RetryMax)
	if err != nil {
		return nil, fmt.Errorf("invalid JOANIE_RETRY_MAX: %w", err)
	}
	cfg.RateLimit, err = getEnvAsFloat("JOANIE_RATE_LIMIT", cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid JOANIE_RATE_LIMIT: %w", err)
	}

	cfg.HTTPTimeout, err = getEnvAsDuration("JOANIE_HTTP_TIMEOUT", cfg.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid JOANIE_HTTP_TIMEOUT: %w", err)
	}
	cfg.SearchDebounce, err = getEnvAsDuration("JOANIE_SEARCH_DEBOUNCE", cfg.SearchDebounce)
	if err != nil {
		return nil, fmt.Errorf("invalid JOANIE_SEARCH_DEBOUNCE: %w", err)
	}
	cfg.CacheTTL, err = getEnvAsDuration("JOANIE_CACHE_TTL", cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JOANIE_CACHE_TTL: %w", err)
	}
	cfg.CacheStaleFor, err = getEnvAsDuration("JOANIE_CACHE_STALE_FOR", cfg.CacheStaleFor)
	if err != nil {
		return nil, fmt.Errorf("invalid JOANIE_CACHE_STALE_FOR: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid JOANIE_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid JOANIE_API_URL: unsupported scheme %q", u.Scheme)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("JOANIE_PAGE_SIZE must be at least 1")
	}
	if c.RetryMax < 0 {
		return fmt.Errorf("JOANIE_RETRY_MAX must not be negative")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("JOANIE_RATE_LIMIT must not be negative")
	}
	return nil
}

// applyProfile overlays the YAML profile values onto cfg.
func applyProfile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if p.APIURL != "" {
		cfg.BaseURL = p.APIURL
	}
	if p.Token != "" {
		cfg.Token = p.Token
	}
	if p.Language != "" {
		cfg.Language = p.Language
	}
	if p.PageSize > 0 {
		cfg.PageSize = p.PageSize
	}
	if p.RetryMax != nil {
		cfg.RetryMax = *p.RetryMax
	}
	if p.RateLimit > 0 {
		cfg.RateLimit = p.RateLimit
	}
	if p.LogLevel != "" {
		cfg.LogLevel = p.LogLevel
	}
	if p.MockAddr != "" {
		cfg.MockAddr = p.MockAddr
	}
	if p.MockJWTSecret != "" {
		cfg.MockJWTSecret = p.MockJWTSecret
	}

	for _, d := range []struct {
		raw  string
		dst  *time.Duration
		name string
	}{
		{p.HTTPTimeout, &cfg.HTTPTimeout, "http_timeout"},
		{p.SearchDebounce, &cfg.SearchDebounce, "search_debounce"},
		{p.CacheTTL, &cfg.CacheTTL, "cache_ttl"},
		{p.CacheStaleFor, &cfg.CacheStaleFor, "cache_stale_for"},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.dst = parsed
	}
	return nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		// Return 0 and a wrapped error to provide context
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsFloat retrieves an environment variable as a float64.
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid number: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration
// (e.g. "300ms", "30s").
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
