package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mohamedhosni23/apple-store-bi-project/middleware"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

type fakeHTTPMetrics struct {
	mu      sync.Mutex
	enabled bool
	counts  map[string]int
	dims    map[string]string
}

func (f *fakeHTTPMetrics) RecordCount(_ context.Context, name string, n int, dims map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = map[string]int{}
	}
	f.counts[name] += n
	f.dims = dims
	return nil
}

func (f *fakeHTTPMetrics) RecordLatency(_ context.Context, name string, _ time.Duration, _ map[string]string) error {
	return f.RecordCount(context.Background(), name, 1, nil)
}

func (f *fakeHTTPMetrics) IsEnabled() bool { return f.enabled }

func (f *fakeHTTPMetrics) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[name]
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/api/bi/kpis", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/api/bi/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r
}

func TestMetricsMiddleware_RecordsRequestsAndErrors(t *testing.T) {
	m := &fakeHTTPMetrics{enabled: true}
	r := newRouter(middleware.MetricsMiddleware(m, "bi-dashboard"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/bi/kpis", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/bi/fail", nil))

	assert.Eventually(t, func() bool {
		return m.count("HTTPRequests") == 2 && m.count("HTTPLatency") == 2 && m.count("HTTPErrors") == 1
	}, time.Second, 10*time.Millisecond)
}

func TestMetricsMiddleware_DisabledIsPassThrough(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := newRouter(middleware.MetricsMiddleware(m, "bi-dashboard"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bi/kpis", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, m.count("HTTPRequests"))
}

func TestCORSMiddleware(t *testing.T) {
	r := newRouter(middleware.CORSMiddleware([]string{"https://bi.applestoresousse.tn/"}))

	req := httptest.NewRequest(http.MethodGet, "/api/bi/kpis", nil)
	req.Header.Set("Origin", "https://bi.applestoresousse.tn")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://bi.applestoresousse.tn", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/bi/kpis", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := newRouter(middleware.SecurityHeaders())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bi/kpis", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRateLimiter_RejectsAfterBurst(t *testing.T) {
	rl := middleware.NewRateLimiter(rate.Every(time.Hour), 2, time.Minute)
	r := newRouter(rl.Handler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bi/kpis", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_PruneForgetsIdleClients(t *testing.T) {
	rl := middleware.NewRateLimiter(rate.Inf, 1, -time.Second)
	rl.GetLimiter("10.0.0.1")
	rl.GetLimiter("10.0.0.2")

	assert.Equal(t, 0, rl.Prune())
}

func TestPerMinute(t *testing.T) {
	assert.Equal(t, rate.Inf, middleware.PerMinute(0))
	assert.InDelta(t, 2.0, float64(middleware.PerMinute(120)), 1e-9)
}
