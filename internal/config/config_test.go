package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("APP_ENV", "development")

	cfg := LoadConfig()

	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, 72*time.Hour, cfg.TokenDuration)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, time.Hour, cfg.RateLimit.Window)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, "postgres", cfg.DB.DbTYPE)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_PASS", "hunter2")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("RATE_LIMIT_WINDOW", "30m")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("APP_URL", "https://blog.example.com/")

	cfg := LoadConfig()

	assert.Equal(t, 8081, cfg.ServerPort)
	assert.Equal(t, "hunter2", cfg.DB.DbPASSWORD)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, 30*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "https://blog.example.com", cfg.AppURL)
	assert.True(t, cfg.ImagesEnabled())
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{DB: DB{DbTYPE: "postgres"}, RateLimit: RateLimit{Requests: 1}}
	assert.Error(t, cfg.Validate())

	cfg.JWTSecretKey = "x"
	cfg.DB.DbTYPE = "mysql"
	assert.Error(t, cfg.Validate())

	cfg.DB.DbTYPE = "postgres"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_AppURLOutsideDevelopment(t *testing.T) {
	cfg := &Config{JWTSecretKey: "x", DB: DB{DbTYPE: "postgres"}, RateLimit: RateLimit{Requests: 1}}

	cfg.Env = "development"
	assert.NoError(t, cfg.Validate())

	cfg.Env = "production"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_URL")

	cfg.AppURL = "https://blog.example.com"
	assert.NoError(t, cfg.Validate())
}
