package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func writeTestContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/applications", nil)
	c.Request.RemoteAddr = "203.0.113.7:4521"
	return c
}

func TestWriteRateLimitConfig(t *testing.T) {
	t.Run("Should key by the authenticated user", func(t *testing.T) {
		c := writeTestContext()
		c.Set("UserID", "user-1")

		cfg := WriteRateLimitConfig()

		assert.Equal(t, "user-1", cfg.KeyFunc(c))
		assert.Equal(t, "rl:write:", cfg.KeyPrefix)
	})

	t.Run("Should fall back to the client IP when unauthenticated", func(t *testing.T) {
		c := writeTestContext()

		cfg := WriteRateLimitConfig()

		assert.Equal(t, "203.0.113.7", cfg.KeyFunc(c))
	})
}

func TestCheckRateLimitInMemory(t *testing.T) {
	t.Run("Should count requests within the window", func(t *testing.T) {
		cfg := WriteRateLimitConfig()
		now := time.Now()

		var count int
		for i := 0; i <= cfg.Limit; i++ {
			count, _ = checkRateLimitInMemory("rl:write:count-test", cfg, now)
		}

		assert.Greater(t, count, cfg.Limit)
	})

	t.Run("Should reset the counter after the window", func(t *testing.T) {
		cfg := WriteRateLimitConfig()
		now := time.Now()

		checkRateLimitInMemory("rl:write:reset-test", cfg, now)
		checkRateLimitInMemory("rl:write:reset-test", cfg, now)

		count, resetAt := checkRateLimitInMemory("rl:write:reset-test", cfg, now.Add(cfg.Window+time.Second))

		assert.Equal(t, 1, count)
		assert.True(t, resetAt.After(now.Add(cfg.Window)))
	})
}
