package config

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateChoice checks that value is one of the allowed options.
func ValidateChoice(value string, name string, allowed ...string) error {
	if !lo.Contains(allowed, value) {
		return fmt.Errorf("%s must be one of %v, got %q", name, allowed, value)
	}
	return nil
}

// Validate checks the loaded configuration for values the services cannot
// run with.
func (c *Config) Validate() error {
	timeouts := map[string]time.Duration{
		"poll interval": c.Pipeline.PollInterval,
		"poll":          c.Pipeline.PollTimeout,
		"generate":      c.Pipeline.GenerateTimeout,
		"embed":         c.Pipeline.EmbedTimeout,
		"pipeline":      c.Pipeline.PipelineTimeout,
	}
	for name, d := range timeouts {
		if err := ValidateTimeout(d, name); err != nil {
			return err
		}
	}
	if c.Pipeline.PollInterval >= c.Pipeline.PollTimeout {
		return fmt.Errorf("poll interval (%s) must be shorter than poll timeout (%s)",
			c.Pipeline.PollInterval, c.Pipeline.PollTimeout)
	}
	if c.Models.EmbeddingDimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}
	if err := ValidateChoice(c.Models.EmbeddingProvider, "EMBEDDING_PROVIDER", "gemini", "mock"); err != nil {
		return err
	}
	if err := ValidateChoice(c.Download.Backend, "DOWNLOADER", "ytdlp", "http"); err != nil {
		return err
	}
	if err := ValidateChoice(c.Store.Backend, "STORE_BACKEND", "postgres", "sqlite"); err != nil {
		return err
	}
	if err := ValidateChoice(c.RateLimit.Backend, "RATE_LIMIT_BACKEND", "memory", "redis"); err != nil {
		return err
	}
	for route, rule := range c.RateLimit.Rules {
		if rule.Limit <= 0 {
			return fmt.Errorf("rate limit for %q must be positive", route)
		}
		if rule.Window <= 0 {
			return fmt.Errorf("rate limit window for %q must be positive", route)
		}
	}
	return nil
}
