package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func limitedEngine(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/jwt", mw, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func hit(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/jwt", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	_, rdb := newTestRedis(t)
	r := limitedEngine(RateLimit(rdb, 2, time.Minute, KeyByIP(), nil))

	assert.Equal(t, http.StatusOK, hit(r, "198.51.100.1").Code)
	w := hit(r, "198.51.100.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hit(r, "198.51.100.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate limit exceeded", decodeError(t, w).Message)

	assert.Equal(t, http.StatusOK, hit(r, "198.51.100.2").Code, "other clients keep their own window")
}

func TestRateLimit_WindowExpires(t *testing.T) {
	mr, rdb := newTestRedis(t)
	r := limitedEngine(RateLimit(rdb, 1, time.Minute, KeyByIP(), nil))

	require.Equal(t, http.StatusOK, hit(r, "198.51.100.1").Code)
	require.Equal(t, http.StatusTooManyRequests, hit(r, "198.51.100.1").Code)

	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, hit(r, "198.51.100.1").Code)
}

func TestRateLimit_AllowBypassAndFailOpen(t *testing.T) {
	mr, rdb := newTestRedis(t)
	r := limitedEngine(RateLimit(rdb, 1, time.Minute, KeyByIP(), AllowPrivateIP()))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "10.0.0.5").Code)
	}

	mr.Close()
	r = limitedEngine(RateLimit(rdb, 1, time.Minute, KeyByIP(), nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "198.51.100.9").Code)
	}
}

func TestRateLimit_DisabledWithoutClient(t *testing.T) {
	r := limitedEngine(RateLimit(nil, 1, time.Minute, KeyByIP(), nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "198.51.100.1").Code)
	}
}

func TestKeyByEmail(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) {
		anon := KeyByEmail()(c)
		c.Set(CtxUserEmailKey, "U@Test.com")
		c.String(http.StatusOK, anon+"|"+KeyByEmail()(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "rl:user:anon:ip:198.51.100.1|rl:user:u@test.com", w.Body.String())
}
