package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/applestore_bi")
	t.Setenv("AWS_USE_SECRETS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8095", cfg.Port)
	assert.Equal(t, "applestore_bi", cfg.MongoDBName)
	assert.Equal(t, 5*time.Minute, cfg.KPICacheTTL)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("AWS_USE_SECRETS", "")
	t.Setenv("MONGO_DB_NAME", "bi")
	t.Setenv("KPI_CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.tn, https://b.tn,")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "bi", cfg.MongoDBName)
	assert.Equal(t, 30*time.Second, cfg.KPICacheTTL)
	assert.Equal(t, []string{"https://a.tn", "https://b.tn"}, cfg.AllowedOrigins)
	assert.Zero(t, cfg.RateLimit)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("AWS_USE_SECRETS", "")

	t.Setenv("MONGO_URI", "")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "MONGO_URI")

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("KPI_CACHE_TTL", "soon")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "KPI_CACHE_TTL")

	t.Setenv("KPI_CACHE_TTL", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-3")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "RATE_LIMIT_PER_MINUTE")
}
