// Package config loads process configuration from the environment.
//
// All keys use the TEAMCTX_ prefix and are read exactly once at startup; the
// resulting Config is immutable for the process lifetime. The RAG engine URL
// is the only required key — without a retrieval backend the server has
// nothing to serve, so a missing URL fails fast before the transport starts.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrMissingRAGURL indicates TEAMCTX_RAG_URL is not set.
	ErrMissingRAGURL = errors.New("missing RAG engine URL")

	// ErrInvalidRAGURL indicates the RAG engine URL is not a valid http(s) URL.
	ErrInvalidRAGURL = errors.New("invalid RAG engine URL")

	// ErrInvalidCacheTTL indicates the cache TTL is zero or negative.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL")

	// ErrInvalidTimeout indicates the RAG request timeout is zero or negative.
	ErrInvalidTimeout = errors.New("invalid RAG timeout")

	// ErrInvalidRetries indicates the retry attempt count is negative.
	ErrInvalidRetries = errors.New("invalid retry attempts")
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultServerName       = "teamctx"
	DefaultLogLevel         = "info"
	DefaultCacheTTLSeconds  = 300
	DefaultTimeoutSeconds   = 30
	DefaultRetryMaxAttempts = 3
)

// Config holds every startup setting the server needs.
type Config struct {
	// ServerName is reported to MCP clients during initialization.
	ServerName string

	// RAGBaseURL is the base URL of the retrieval engine. Required.
	RAGBaseURL string

	// APIBaseURL is the base URL of the backend document API. Optional —
	// only the RAG engine is needed for serving; the backend URL is passed
	// through for deployments that route standards reads to it.
	APIBaseURL string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// CacheTTL is how long a rendered result stays valid.
	CacheTTL time.Duration

	// RAGTimeout bounds each HTTP request to the retrieval engine.
	RAGTimeout time.Duration

	// RetryMaxAttempts is the total number of tries per RAG request,
	// including the first. Zero disables retries entirely.
	RetryMaxAttempts int
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("teamctx")
	v.AutomaticEnv()

	v.SetDefault("server_name", DefaultServerName)
	v.SetDefault("rag_url", "")
	v.SetDefault("api_url", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("cache_ttl_seconds", DefaultCacheTTLSeconds)
	v.SetDefault("rag_timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("retry_max_attempts", DefaultRetryMaxAttempts)

	cfg := &Config{
		ServerName:       v.GetString("server_name"),
		RAGBaseURL:       strings.TrimRight(v.GetString("rag_url"), "/"),
		APIBaseURL:       strings.TrimRight(v.GetString("api_url"), "/"),
		LogLevel:         v.GetString("log_level"),
		CacheTTL:         time.Duration(v.GetInt("cache_ttl_seconds")) * time.Second,
		RAGTimeout:       time.Duration(v.GetInt("rag_timeout_seconds")) * time.Second,
		RetryMaxAttempts: v.GetInt("retry_max_attempts"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if c.RAGBaseURL == "" {
		return fmt.Errorf("%w: set TEAMCTX_RAG_URL", ErrMissingRAGURL)
	}
	if err := checkHTTPURL(c.RAGBaseURL); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRAGURL, c.RAGBaseURL)
	}
	if c.APIBaseURL != "" {
		if err := checkHTTPURL(c.APIBaseURL); err != nil {
			return fmt.Errorf("invalid backend API URL: %q", c.APIBaseURL)
		}
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("%w: must be positive, got %s", ErrInvalidCacheTTL, c.CacheTTL)
	}
	if c.RAGTimeout <= 0 {
		return fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, c.RAGTimeout)
	}
	if c.RetryMaxAttempts < 0 {
		return fmt.Errorf("%w: must not be negative, got %d", ErrInvalidRetries, c.RetryMaxAttempts)
	}
	return nil
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
