// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, scraper, cache, logging and rate limiting

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported cache backends
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
	CacheTypeSQLite = "sqlite"
	CacheTypeNone   = "none"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Scraper   ScraperConfig
	Cache     CacheConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// APIPrefix is mounted in front of every route
	APIPrefix string

	Debug bool

	// CORSOrigins lists allowed origins; "*" allows all
	CORSOrigins []string
}

// ScraperConfig holds the transport session settings for the origin site
type ScraperConfig struct {
	BaseURL    string
	HTMLParser string
	UserAgent  string
	Timeout    time.Duration

	// RateLimit is the outbound requests per second; 0 disables it
	RateLimit float64
	Burst     int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite/none)
	Type string

	// TTL applies to every cached page
	TTL time.Duration

	Redis  RedisConfig
	Memory MemoryConfig
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are swept
	CleanupInterval time.Duration
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string

	// File enables rotating file output in addition to stdout
	File string
}

// RateLimitConfig holds the per-client inbound limit
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvOrDefault("PORT", "8000"),
			APIPrefix:   getEnvOrDefault("API_PREFIX", "/api/v1"),
			Debug:       getEnvAsBoolOrDefault("DEBUG", false),
			CORSOrigins: getEnvAsListOrDefault("CORS_ORIGINS", []string{"*"}),
		},
		Scraper: ScraperConfig{
			BaseURL:    getEnvOrDefault("SCRAPER_BASE_URL", "https://film2subtitle.com/"),
			HTMLParser: getEnvOrDefault("SCRAPER_HTML_PARSER", "html"),
			UserAgent:  getEnvOrDefault("SCRAPER_USER_AGENT", ""),
			Timeout:    getEnvAsDurationOrDefault("SCRAPER_TIMEOUT", 30*time.Second),
			RateLimit:  getEnvAsFloatOrDefault("SCRAPER_RATE_LIMIT", 0),
			Burst:      getEnvAsIntOrDefault("SCRAPER_BURST", 1),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", CacheTypeMemory),
			TTL:  getEnvAsDurationOrDefault("CACHE_TTL", time.Hour),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				CleanupInterval: getEnvAsDurationOrDefault("MEMORY_CACHE_CLEANUP", 10*time.Minute),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "cache.db"),
			},
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsIntOrDefault("RATE_LIMIT", 60),
			Window:   getEnvAsDurationOrDefault("RATE_WINDOW", time.Minute),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("30s") or plain seconds ("30")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.APIPrefix != "" && !strings.HasPrefix(c.Server.APIPrefix, "/") {
		return errors.New("api prefix must start with '/'")
	}

	if c.Scraper.BaseURL == "" {
		return errors.New("scraper base URL cannot be empty")
	}

	if c.Scraper.Timeout <= 0 {
		return errors.New("scraper timeout must be positive")
	}

	if c.Scraper.RateLimit < 0 {
		return errors.New("scraper rate limit cannot be negative")
	}

	switch c.Cache.Type {
	case CacheTypeMemory, CacheTypeNone:
	case CacheTypeRedis:
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case CacheTypeSQLite:
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return fmt.Errorf("cache type must be one of memory, redis, sqlite, none; got %q", c.Cache.Type)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return errors.New("log format must be 'json' or 'text'")
	}

	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return errors.New("rate limit requires a positive request count and window")
	}

	return nil
}
