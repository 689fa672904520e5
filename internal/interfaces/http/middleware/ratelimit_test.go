package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.GET("/dashboard", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func getFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowWithinLimit(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("owner-1"), "request %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("owner-1"))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)

	assert.True(t, limiter.Allow("owner-a"))
	assert.True(t, limiter.Allow("owner-a"))
	assert.False(t, limiter.Allow("owner-a"))

	assert.True(t, limiter.Allow("owner-b"))
	assert.True(t, limiter.Allow("owner-b"))
}

func TestRateLimiter_WindowReset(t *testing.T) {
	limiter := NewRateLimiter(2, 50*time.Millisecond)

	assert.True(t, limiter.Allow("owner-1"))
	assert.True(t, limiter.Allow("owner-1"))
	assert.False(t, limiter.Allow("owner-1"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, limiter.Allow("owner-1"))
}

func TestRateLimiter_Remaining(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)

	assert.Equal(t, 5, limiter.Remaining("fresh"))

	limiter.Allow("fresh")
	limiter.Allow("fresh")
	assert.Equal(t, 3, limiter.Remaining("fresh"))
}

func TestRateLimiter_ConcurrentAllow(t *testing.T) {
	limiter := NewRateLimiter(100, time.Minute)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 150; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}

func TestRateLimit_Returns429AndHeaders(t *testing.T) {
	router := limitedRouter(RateLimit(NewRateLimiter(2, time.Minute)))

	w := getFrom(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, getFrom(router, "10.0.0.1:1234").Code)

	blocked := getFrom(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Contains(t, blocked.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestRateLimit_KeyedByClientIP(t *testing.T) {
	router := limitedRouter(RateLimit(NewRateLimiter(1, time.Minute)))

	assert.Equal(t, http.StatusOK, getFrom(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, getFrom(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, getFrom(router, "10.0.0.2:1234").Code)
}

func TestRateLimitByKey_CustomExtractor(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	router := limitedRouter(RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.GetHeader("X-Owner-ID")
	}))

	send := func(owner string) int {
		req := httptest.NewRequest("GET", "/dashboard", nil)
		req.Header.Set("X-Owner-ID", owner)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("owner-1"))
	assert.Equal(t, http.StatusTooManyRequests, send("owner-1"))
	assert.Equal(t, http.StatusOK, send("owner-2"))
}

func TestAuthRateLimit_BlocksWithRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthRateLimit(NewRateLimiter(2, time.Minute)))
	router.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	login := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "192.168.1.100:12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := login()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, login().Code)

	blocked := login()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Contains(t, blocked.Body.String(), "AUTH_RATE_LIMIT_EXCEEDED")
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
}

func TestAuthRateLimit_IsolatedFromGlobalBuckets(t *testing.T) {
	// One shared limiter; the auth: prefix must keep login attempts from
	// draining the caller's global allowance
	limiter := NewRateLimiter(2, time.Minute)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", AuthRateLimit(limiter), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/dashboard", RateLimit(limiter), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "192.168.1.100:12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "192.168.1.100:12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	assert.Equal(t, http.StatusOK, getFrom(router, "192.168.1.100:12345").Code)
}
