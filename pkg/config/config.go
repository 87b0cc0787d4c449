package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// Journal persistence
	StoreDriver string
	StorePath   string
	StoreKey    string
	RedisURL    string
	DatabaseURL string

	// HTTP boundary
	JWTSecret          string // auth is enabled when non-empty
	RateLimit          string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
}

// AuthEnabled reports whether API routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreFile)
	v.SetDefault("STORE_PATH", "./data")
	v.SetDefault("STORE_KEY", "financeflow_journal_entries")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.AutomaticEnv()

	cfg := &Config{
		Port:         v.GetString("PORT"),
		IsProduction: v.GetBool("IS_PRODUCTION"),
		LogLevel:     strings.ToLower(v.GetString("LOG_LEVEL")),
		StoreDriver:  strings.ToLower(v.GetString("STORE_DRIVER")),
		StorePath:    v.GetString("STORE_PATH"),
		StoreKey:     v.GetString("STORE_KEY"),
		RedisURL:     v.GetString("REDIS_URL"),
		DatabaseURL:  v.GetString("PGSQL_URL"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		RateLimit:    v.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.StoreDriver {
	case StoreMemory, StoreFile, StoreRedis:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("STORE_DRIVER=%s requires PGSQL_URL", StorePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q, expected one of memory, file, redis, postgres", cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			log.Println("Warning: JWT_SECRET not set in production. API routes are unauthenticated.")
		}
	} else if len(cfg.JWTSecret) < 32 {
		log.Println("Warning: JWT_SECRET is shorter than 32 characters.")
	}

	return cfg, nil
}
