// Package config loads application configuration that goes beyond single
// environment variables: structured YAML files for the recommendation and
// crawl subsystems.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	pkgconfig "github.com/makhmudjon-inadullaev/quote-service/pkg/config"
)

// RecommendationConfig represents recommendation and crawl configuration.
type RecommendationConfig struct {
	Recommendation struct {
		Cache struct {
			// EphemeralTTL is the lifetime of ephemeral cache entries,
			// as a Go duration string (e.g. "1h").
			EphemeralTTL string `yaml:"ephemeral_ttl"`
		} `yaml:"cache"`
	} `yaml:"recommendation"`
	Crawl struct {
		// Schedule is the cron expression for the crawl worker.
		Schedule string `yaml:"schedule"`
		// Sources lists the external sources to crawl. Valid values are
		// "quotable", "dummyjson", "toscrape", and "rss".
		Sources []string `yaml:"sources"`
	} `yaml:"crawl"`

	ephemeralTTL time.Duration
}

// DefaultRecommendationConfig returns the configuration used when no YAML
// file is present: a one hour ephemeral TTL and all external sources
// crawled every six hours.
func DefaultRecommendationConfig() *RecommendationConfig {
	c := &RecommendationConfig{}
	c.Recommendation.Cache.EphemeralTTL = "1h"
	c.Crawl.Schedule = "0 */6 * * *"
	c.Crawl.Sources = []string{
		string(entity.SourceQuotable),
		string(entity.SourceDummyJSON),
		string(entity.SourceToScrape),
		string(entity.SourceRSS),
	}
	c.ephemeralTTL = time.Hour
	return c
}

// LoadRecommendationConfig loads recommendation configuration from a YAML file.
// The path parameter is expected to come from a trusted source (command-line argument or hardcoded default).
func LoadRecommendationConfig(path string) (*RecommendationConfig, error) {
	// #nosec G304 -- path is provided by trusted source (CLI arg or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config RecommendationConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateRecommendationConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// validateRecommendationConfig validates the loaded configuration and
// resolves the parsed duration fields.
func validateRecommendationConfig(config *RecommendationConfig) error {
	if config.Recommendation.Cache.EphemeralTTL == "" {
		return fmt.Errorf("recommendation cache ephemeral_ttl is required")
	}

	ttl, err := time.ParseDuration(config.Recommendation.Cache.EphemeralTTL)
	if err != nil {
		return fmt.Errorf("invalid ephemeral_ttl: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(ttl); err != nil {
		return fmt.Errorf("invalid ephemeral_ttl: %w", err)
	}
	config.ephemeralTTL = ttl

	if config.Crawl.Schedule == "" {
		return fmt.Errorf("crawl schedule is required")
	}

	if len(config.Crawl.Sources) == 0 {
		return fmt.Errorf("at least one crawl source is required")
	}
	for _, src := range config.Crawl.Sources {
		s := entity.Source(src)
		if !s.Valid() || s == entity.SourceUser {
			return fmt.Errorf("unknown crawl source: %q", src)
		}
	}

	return nil
}

// GetEphemeralTTL returns the ephemeral cache TTL.
func (c *RecommendationConfig) GetEphemeralTTL() time.Duration {
	return c.ephemeralTTL
}

// GetCrawlSchedule returns the cron expression for the crawl worker.
func (c *RecommendationConfig) GetCrawlSchedule() string {
	return c.Crawl.Schedule
}

// GetCrawlSources returns the external sources to crawl.
func (c *RecommendationConfig) GetCrawlSources() []entity.Source {
	sources := make([]entity.Source, 0, len(c.Crawl.Sources))
	for _, src := range c.Crawl.Sources {
		sources = append(sources, entity.Source(src))
	}
	return sources
}

// HasSource reports whether the given source is enabled for crawling.
func (c *RecommendationConfig) HasSource(src entity.Source) bool {
	for _, s := range c.Crawl.Sources {
		if entity.Source(s) == src {
			return true
		}
	}
	return false
}
