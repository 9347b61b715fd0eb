package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TEAMCTX_RAG_URL", "http://localhost:8001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "teamctx", cfg.ServerName)
	assert.Equal(t, "http://localhost:8001", cfg.RAGBaseURL)
	assert.Empty(t, cfg.APIBaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.RAGTimeout)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TEAMCTX_RAG_URL", "https://rag.internal:9000/")
	t.Setenv("TEAMCTX_API_URL", "https://api.internal/")
	t.Setenv("TEAMCTX_SERVER_NAME", "teamctx-staging")
	t.Setenv("TEAMCTX_LOG_LEVEL", "debug")
	t.Setenv("TEAMCTX_CACHE_TTL_SECONDS", "60")
	t.Setenv("TEAMCTX_RAG_TIMEOUT_SECONDS", "5")
	t.Setenv("TEAMCTX_RETRY_MAX_ATTEMPTS", "1")

	cfg, err := Load()
	require.NoError(t, err)

	// Trailing slashes are stripped so URL joining stays predictable.
	assert.Equal(t, "https://rag.internal:9000", cfg.RAGBaseURL)
	assert.Equal(t, "https://api.internal", cfg.APIBaseURL)
	assert.Equal(t, "teamctx-staging", cfg.ServerName)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.RAGTimeout)
	assert.Equal(t, 1, cfg.RetryMaxAttempts)
}

func TestLoad_MissingRAGURL(t *testing.T) {
	t.Setenv("TEAMCTX_RAG_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRAGURL))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerName:       "teamctx",
			RAGBaseURL:       "http://localhost:8001",
			LogLevel:         "info",
			CacheTTL:         5 * time.Minute,
			RAGTimeout:       30 * time.Second,
			RetryMaxAttempts: 3,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"bad scheme", func(c *Config) { c.RAGBaseURL = "ftp://host" }, ErrInvalidRAGURL},
		{"no host", func(c *Config) { c.RAGBaseURL = "http://" }, ErrInvalidRAGURL},
		{"zero ttl", func(c *Config) { c.CacheTTL = 0 }, ErrInvalidCacheTTL},
		{"negative timeout", func(c *Config) { c.RAGTimeout = -time.Second }, ErrInvalidTimeout},
		{"negative retries", func(c *Config) { c.RetryMaxAttempts = -1 }, ErrInvalidRetries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
