// Package fetcher provides clients for external quote APIs.
// Each client wraps its HTTP calls with circuit breaker and retry logic
// and validates target URLs before making requests.
package fetcher

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// CrawlConfig holds the configuration for quote API fetching.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF by blocking private IP addresses
//   - Timeout: Prevents resource starvation from slow servers
//
// Behavior settings:
//   - BatchSize: Number of quotes requested per crawl from each API
type CrawlConfig struct {
	// BatchSize is the number of quotes requested per crawl.
	// Default: 30
	BatchSize int

	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// DenyPrivateIPs controls whether to block access to private IP
	// addresses. Should always be true in production; tests against
	// local servers disable it.
	// Default: true
	DenyPrivateIPs bool

	// QuotableBaseURL is the base URL of the quotable API.
	// Default: https://api.quotable.io
	QuotableBaseURL string

	// DummyJSONBaseURL is the base URL of the dummyjson API.
	// Default: https://dummyjson.com
	DummyJSONBaseURL string
}

// DefaultConfig returns the default configuration for quote API fetching.
func DefaultConfig() CrawlConfig {
	return CrawlConfig{
		BatchSize:        30,
		Timeout:          10 * time.Second,
		DenyPrivateIPs:   true,
		QuotableBaseURL:  "https://api.quotable.io",
		DummyJSONBaseURL: "https://dummyjson.com",
	}
}

// Validate checks if the configuration values are valid and safe.
func (c *CrawlConfig) Validate() error {
	if c.BatchSize < 1 || c.BatchSize > 100 {
		return fmt.Errorf("batch size must be between 1 and 100, got %d", c.BatchSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.QuotableBaseURL == "" {
		return fmt.Errorf("quotable base URL must not be empty")
	}
	if c.DummyJSONBaseURL == "" {
		return fmt.Errorf("dummyjson base URL must not be empty")
	}
	return nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// If a variable is not set or invalid, the default value is used.
// After loading, the configuration is validated.
//
// Environment variables:
//   - CRAWL_BATCH_SIZE: integer (default: 30)
//   - CRAWL_FETCH_TIMEOUT: duration string, e.g., "10s" (default: 10s)
//   - CRAWL_DENY_PRIVATE_IPS: "true" or "false" (default: true)
//   - QUOTABLE_BASE_URL: string (default: https://api.quotable.io)
//   - DUMMYJSON_BASE_URL: string (default: https://dummyjson.com)
func LoadConfigFromEnv() (CrawlConfig, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("CRAWL_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BatchSize = n
		}
	}
	if v := os.Getenv("CRAWL_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("CRAWL_DENY_PRIVATE_IPS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DenyPrivateIPs = b
		}
	}
	if v := os.Getenv("QUOTABLE_BASE_URL"); v != "" {
		cfg.QuotableBaseURL = v
	}
	if v := os.Getenv("DUMMYJSON_BASE_URL"); v != "" {
		cfg.DummyJSONBaseURL = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
