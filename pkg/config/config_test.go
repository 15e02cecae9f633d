package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "APP_ENV", "API_PREFIX", "MONGODB_URI", "MONGODB_DB",
		"JWT_SECRET", "JWT_EXPIRE_DAYS", "BCRYPT_SALT_ROUNDS",
		"RATE_LIMIT_WINDOW", "RATE_LIMIT_MAX_REQUESTS", "FRONTEND_URL",
		"CORS_EXTRA_ORIGINS", "LOG_LEVEL",
	} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "mongodb://localhost:27017/propertyhub", cfg.Mongo.URI)
	assert.Equal(t, "propertyhub", cfg.Mongo.Database)
	assert.Equal(t, 7, cfg.JWT.ExpirationDays)
	assert.Equal(t, 12, cfg.Bcrypt.Cost)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_EXPIRE_DAYS", "1")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("CORS_EXTRA_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 1, cfg.JWT.ExpirationDays)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.ExtraOrigins)
}

func TestAllowedOrigins(t *testing.T) {
	cors := CORSConfig{FrontendURL: "https://propertyhub.lk", ExtraOrigins: []string{"https://staging.propertyhub.lk"}}

	origins := cors.AllowedOrigins()
	assert.Contains(t, origins, "https://propertyhub.lk")
	assert.Contains(t, origins, "http://localhost:3001")
	assert.Contains(t, origins, "http://127.0.0.1:3000")
	assert.Contains(t, origins, "https://staging.propertyhub.lk")
}
