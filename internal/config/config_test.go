package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SERVER_PORT", "STORE_DRIVER", "JWT_EXPIRES_IN", "CLIENT_URL", "CLIENT_URL_PROD", "REDIS_ADDR", "RESET_DB"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.ResetDB)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "4100")
	t.Setenv("STORE_DRIVER", "MySQL")
	t.Setenv("JWT_EXPIRES_IN", "24h")
	t.Setenv("CLIENT_URL", "http://localhost:5173, http://localhost:3000")
	t.Setenv("CLIENT_URL_PROD", "https://shop.example.com")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RESET_DB", "true")

	cfg := Load()

	assert.Equal(t, "4100", cfg.ServerPort)
	assert.Equal(t, DriverMySQL, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000", "https://shop.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.ResetDB)
}

func TestGetEnvDuration_Invalid(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("JWT_EXPIRES_IN", time.Minute))
}
