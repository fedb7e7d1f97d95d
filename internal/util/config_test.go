package util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mernspace/auth-service/internal/util"
)

func TestNewRedisConfigDefaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_DB", "")

	cfg := util.NewRedisConfig()
	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Empty(t, cfg.Password)
	assert.Equal(t, 0, cfg.DB)
}

func TestNewRedisConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("REDIS_DB", "3")

	cfg := util.NewRedisConfig()
	assert.Equal(t, "redis.internal:6380", cfg.Addr)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, 3, cfg.DB)
}

func TestNewRateLimiterConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("RATE_LIMIT_LIMIT", "not-a-number")
	t.Setenv("RATE_LIMIT_INTERVAL", "soon")
	t.Setenv("RATE_LIMIT_BLOCK_TIME", "")

	cfg := util.NewRateLimiterConfig()
	assert.Equal(t, 100, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Interval)
	assert.Equal(t, 5*time.Minute, cfg.BlockTime)
}

func TestNewServerConfigCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "")
	cfg := util.NewServerConfig()
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)

	t.Setenv("CORS_ORIGINS", "https://app.example.com,https://admin.example.com")
	cfg = util.NewServerConfig()
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}
