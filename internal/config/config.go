package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Upstream finance backend
	DataBackend string // memory or rest
	APIBaseURL  string
	APIToken    string
	FetchPerPage int

	// Defaults applied when a request does not choose
	BaseCurrency string
	Locale       string

	// Database
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Caching and refresh
	SummaryCacheTTL  time.Duration
	SummaryCacheSize int
	RateMaxAge       time.Duration
	RefreshInterval  time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		APIBaseURL:   getEnv("API_BASE_URL", ""),
		APIToken:     getEnv("API_TOKEN", ""),
		FetchPerPage: getEnvInt("FETCH_PER_PAGE", 1000),

		BaseCurrency: getEnv("BASE_CURRENCY", "USD"),
		Locale:       getEnv("LOCALE", "en"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/spendsight.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spendsight"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "refresh_events"),

		SummaryCacheTTL:  getEnvDuration("SUMMARY_CACHE_TTL", 30*time.Second),
		SummaryCacheSize: getEnvInt("SUMMARY_CACHE_SIZE", 128),
		RateMaxAge:       getEnvDuration("RATE_MAX_AGE", time.Hour),
		RefreshInterval:  getEnvDuration("REFRESH_INTERVAL", 6*time.Hour),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "rest"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// The rest backend needs a reachable base URL
	if c.DataBackend == "rest" {
		if c.APIBaseURL == "" {
			errors = append(errors, "API base URL is required when using rest backend")
		} else if parsed, err := url.Parse(c.APIBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
	}

	if c.BaseCurrency == "" {
		errors = append(errors, "base currency cannot be empty")
	}

	// Validate SQLite path when persistence is on
	if c.SQLiteDBPath != "" {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.FetchPerPage < 1 {
		errors = append(errors, fmt.Sprintf("invalid fetch page size %d: must be at least 1", c.FetchPerPage))
	} else if c.FetchPerPage > 10000 {
		errors = append(errors, fmt.Sprintf("invalid fetch page size %d: must be at most 10000", c.FetchPerPage))
	}

	if c.SummaryCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid summary cache size %d: must be at least 1", c.SummaryCacheSize))
	}

	if c.RefreshInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid refresh interval %v: must be at least 1 minute", c.RefreshInterval))
	} else if c.RefreshInterval > 7*24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid refresh interval %v: must be at most 7 days", c.RefreshInterval))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
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
