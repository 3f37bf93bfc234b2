package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newLimitedEngine(t *testing.T, max int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.GET("/ping", RateLimit(rdb, max, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})
	return r, mr
}

func get(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	r, _ := newLimitedEngine(t, 2)

	require.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)

	w := get(r, "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitIsPerIP(t *testing.T) {
	r, _ := newLimitedEngine(t, 1)

	require.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.1:1234").Code)

	// a different client is unaffected
	require.Equal(t, http.StatusOK, get(r, "10.0.0.2:1234").Code)
}

func TestRateLimitResetsAfterWindow(t *testing.T) {
	r, mr := newLimitedEngine(t, 1)

	require.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.1:1234").Code)

	mr.FastForward(2 * time.Minute)
	require.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
}

func TestRateLimitNilRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	}
}
