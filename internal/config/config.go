package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Datamuse DatamuseConfig `yaml:"datamuse"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Rate     RateConfig     `yaml:"rate"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatamuseConfig holds word-lookup API client settings.
type DatamuseConfig struct {
	BaseURL    string `yaml:"base_url"    env:"DATAMUSE_BASE_URL"    env-default:"https://api.datamuse.com"`
	MaxResults int    `yaml:"max_results" env:"DATAMUSE_MAX_RESULTS" env-default:"100"`
}

// LookupConfig holds lookup service settings.
type LookupConfig struct {
	MaxWordLength int           `yaml:"max_word_length" env:"LOOKUP_MAX_WORD_LENGTH" env-default:"100"`
	CacheSize     int           `yaml:"cache_size"      env:"LOOKUP_CACHE_SIZE"      env-default:"512"`
	CacheTTL      time.Duration `yaml:"cache_ttl"       env:"LOOKUP_CACHE_TTL"       env-default:"5m"`
}

// SessionConfig holds page-session settings.
type SessionConfig struct {
	IdleTTL         time.Duration `yaml:"idle_ttl"         env:"SESSION_IDLE_TTL"         env-default:"30m"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"SESSION_CLEANUP_INTERVAL" env-default:"5m"`
	MaxSavedWords   int           `yaml:"max_saved_words"  env:"SESSION_MAX_SAVED_WORDS"  env-default:"500"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Session-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateConfig holds per-IP request rate limiting settings.
// This guards the server itself; the external word API is never throttled.
type RateConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_REQUESTS_PER_MINUTE" env-default:"120"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_CLEANUP_INTERVAL"    env-default:"1m"`
}
