package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Datamuse.validate(); err != nil {
		return fmt.Errorf("datamuse: %w", err)
	}

	if c.Lookup.MaxWordLength <= 0 {
		return fmt.Errorf("lookup.max_word_length must be > 0 (got %d)", c.Lookup.MaxWordLength)
	}
	if c.Lookup.CacheSize <= 0 {
		return fmt.Errorf("lookup.cache_size must be > 0 (got %d)", c.Lookup.CacheSize)
	}

	if c.Session.IdleTTL <= 0 {
		return fmt.Errorf("session.idle_ttl must be > 0 (got %v)", c.Session.IdleTTL)
	}
	if c.Session.MaxSavedWords <= 0 {
		return fmt.Errorf("session.max_saved_words must be > 0 (got %d)", c.Session.MaxSavedWords)
	}

	if c.Rate.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate.requests_per_minute must be > 0 (got %d)", c.Rate.RequestsPerMinute)
	}

	return nil
}

func (d *DatamuseConfig) validate() error {
	u, err := url.Parse(d.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not a valid absolute URL", d.BaseURL)
	}
	if d.MaxResults < 0 {
		return fmt.Errorf("max_results must be >= 0 (got %d)", d.MaxResults)
	}
	return nil
}
