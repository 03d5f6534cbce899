package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDB(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "careers")
	t.Setenv("DB_USER", "careers")
}

func TestLoad_Defaults(t *testing.T) {
	setDB(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.Equal(t, 24*time.Hour, cfg.Assessment.CatalogFreshness)
	assert.Equal(t, 5, cfg.Assessment.RecommendationLimit)
	assert.Equal(t, "riasec", cfg.Assessment.DefaultType)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.NotEmpty(t, cfg.LocalStore.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setDB(t)
	t.Setenv("CATALOG_FRESHNESS", "90m")
	t.Setenv("RECOMMENDATION_LIMIT", "3")
	t.Setenv("DB_POOL_MAX_CONNS", "25")
	t.Setenv("LOG_JSON", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.Assessment.CatalogFreshness)
	assert.Equal(t, 3, cfg.Assessment.RecommendationLimit)
	assert.Equal(t, int32(25), cfg.Database.PoolMaxConns)
	assert.True(t, cfg.App.LogJSON)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_USER", "")

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_USER")
}

func TestRequireJWT(t *testing.T) {
	assert.ErrorIs(t, Config{}.RequireJWT(), ErrMissingJWTSecret)
	assert.NoError(t, Config{JWT: JWTConfig{Secret: "s3cret"}}.RequireJWT())
}
