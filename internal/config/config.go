package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/workload-planner/backend/internal/ledger"
)

var ErrInvalidConfig = errors.New("configuration validation failed")

type Config struct {
	// HTTP Server
	APIURL       string
	Port         string
	GinMode      string
	LogFormat    string
	AllowOrigins []string
	EnablePprof  bool

	// Database
	DBPath string

	// Ledger sessions
	DefaultTarget decimal.Decimal
	SessionTTL    time.Duration
	SessionLimit  int
}

// Load reads the configuration from the environment.
//
// Variables from a .env file in the working directory are loaded first
// and never override variables that are already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:       os.Getenv("API_URL"),
		Port:         getEnv("PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", "release"),
		LogFormat:    os.Getenv("LOG_FORMAT"),
		AllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:  os.Getenv("ENABLE_PPROF") == "true",

		DBPath: getEnv("DB_PATH", "data/gorm.db"),

		DefaultTarget: getEnvDecimal("DEFAULT_TARGET", decimal.RequireFromString("0.8")),
		SessionTTL:    getEnvDuration("SESSION_TTL", 2*time.Hour),
		SessionLimit:  getEnvInt("SESSION_LIMIT", 1000),
	}
}

// URL returns the parsed API URL.
func (c *Config) URL() (*url.URL, error) {
	return url.Parse(c.APIURL)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if c.APIURL == "" {
		errs = append(errs, "API_URL must be set")
	} else if u, err := c.URL(); err != nil {
		errs = append(errs, fmt.Sprintf("invalid API_URL '%s': %v", c.APIURL, err))
	} else if u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid API_URL '%s': must be an absolute URL", c.APIURL))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Sprintf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	if c.DBPath == "" {
		errs = append(errs, "DB_PATH cannot be empty")
	}

	if _, err := ledger.ParseTarget(c.DefaultTarget); err != nil {
		errs = append(errs, fmt.Sprintf("invalid DEFAULT_TARGET: %v", err))
	}

	if c.SessionTTL < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid SESSION_TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if c.SessionLimit < 1 {
		errs = append(errs, fmt.Sprintf("invalid SESSION_LIMIT %d: must be at least 1", c.SessionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrInvalidConfig, strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
