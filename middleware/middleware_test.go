package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ip", func(c *gin.Context) {
		_, hasLogger := c.Get("logger")
		c.JSON(http.StatusOK, gin.H{"ip": ClientIP(c), "logger": hasLogger})
	})
	return r
}

func get(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClientIP(t *testing.T) {
	r := newRouter()

	assert.Contains(t, get(r, map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}).Body.String(), `"ip":"203.0.113.7"`)
	assert.Contains(t, get(r, map[string]string{"X-Real-IP": " 198.51.100.4 "}).Body.String(), `"ip":"198.51.100.4"`)
	// httptest requests come from 192.0.2.1:1234.
	assert.Contains(t, get(r, nil).Body.String(), `"ip":"192.0.2.1"`)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	a := map[string]string{"X-Forwarded-For": "203.0.113.7"}
	b := map[string]string{"X-Forwarded-For": "203.0.113.8"}

	assert.Equal(t, http.StatusOK, get(r, a).Code)
	assert.Equal(t, http.StatusOK, get(r, a).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, a).Code)
	assert.Equal(t, http.StatusOK, get(r, b).Code, "limits are per client")
}

func TestRequestLogger(t *testing.T) {
	r := newRouter(RequestLogger(zap.NewNop()))

	w := get(r, map[string]string{"X-Request-ID": "req-123"})
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"logger":true`)

	w = get(r, nil)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}
