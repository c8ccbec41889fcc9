package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vegfinder/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/", func(c *gin.Context) {
		panic("Test error")
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
}

func TestNotFound(t *testing.T) {
	r := gin.New()
	r.NoRoute(NotFound())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rr.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rr.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rr.Body.String())
	})

	t.Run("reused", func(t *testing.T) {
		want := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", want)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, want, rr.Header().Get("X-Request-ID"))
	})

	t.Run("malformed replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "not a uuid\n")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.NotEqual(t, "not a uuid\n", rr.Header().Get("X-Request-ID"))
	})
}

func limitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(rl.RateLimitMiddleware())
	r.POST("/predict", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"recipes": []string{}})
	})
	return r
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	rl := NewSearchRateLimiter(client, 2)
	r := limitedRouter(rl)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/predict", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
		if rr.Code == http.StatusTooManyRequests {
			assert.Contains(t, rr.Body.String(), "rate limit exceeded")
			assert.NotEmpty(t, rr.Header().Get("Retry-After"))
			assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))
		}
	}
	// a window boundary may fall between requests, so only the shape is fixed
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)

	// other clients keep their own budget
	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	r := limitedRouter(NewSearchRateLimiter(client, 1))
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/predict", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
	}
}

func TestIsAllowedCountsWithinWindow(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	rl := NewSearchRateLimiter(client, 2)
	fixed := time.Date(2024, 1, 1, 12, 0, 30, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	allowed, left, reset, err := rl.IsAllowed(t.Context(), "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, left)
	assert.Equal(t, fixed.Truncate(time.Minute).Add(time.Minute), reset)

	allowed, left, _, err = rl.IsAllowed(t.Context(), "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 0, left)

	allowed, left, _, err = rl.IsAllowed(t.Context(), "10.0.0.9")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, left)

	// the next window starts a fresh count
	rl.now = func() time.Time { return fixed.Add(time.Minute) }
	allowed, left, _, err = rl.IsAllowed(t.Context(), "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, left)
}
