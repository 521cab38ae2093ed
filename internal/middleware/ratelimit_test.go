package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newRateLimitedHandler(t *testing.T, limit int) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := RateLimitMiddleware(client, RateLimitConfig{
		RequestsPerWindow: limit,
		Window:            time.Minute,
		KeyPrefix:         "e-shopping:ratelimit",
	}, zap.NewNop())

	return limiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})), mr
}

func hit(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// Property 12: exactly limit requests pass per window and client
func TestProperty_RateLimitingBlocksExcessiveRequests(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests beyond the limit get 429", prop.ForAll(
		func(limit, excess int) bool {
			h, _ := newRateLimitedHandler(t, limit)

			ok, blocked := 0, 0
			for i := 0; i < limit+excess; i++ {
				switch hit(h, "192.168.1.100:5000").Code {
				case http.StatusOK:
					ok++
				case http.StatusTooManyRequests:
					blocked++
				}
			}
			return ok == limit && blocked == excess
		},
		gen.IntRange(1, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimitIgnoresClientPort(t *testing.T) {
	h, mr := newRateLimitedHandler(t, 1)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:2222").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1111").Code)
	assert.True(t, mr.Exists("e-shopping:ratelimit:10.0.0.1"))
}

func TestRateLimitHeaders(t *testing.T) {
	h, _ := newRateLimitedHandler(t, 3)

	w := hit(h, "10.0.0.1:1111")
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))

	hit(h, "10.0.0.1:1111")
	hit(h, "10.0.0.1:1111")
	w = hit(h, "10.0.0.1:1111")
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitFailsOpen(t *testing.T) {
	h, mr := newRateLimitedHandler(t, 1)
	mr.Close()

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111").Code)
}
