package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig is a fixed window limit per client IP
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	KeyPrefix         string
}

// window is the counter state of one client after a request
type window struct {
	count int64
	reset time.Duration
}

// RateLimitMiddleware counts requests per client IP in redis and answers 429
// once a client exceeds its window. Redis failures let the request through.
func RateLimitMiddleware(client *redis.Client, config RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	limit := strconv.Itoa(config.RequestsPerWindow)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// RemoteAddr is rewritten by chi's RealIP when behind a proxy
			ip := clientIP(r.RemoteAddr)
			key := config.KeyPrefix + ":" + ip

			ctx, cancel := context.WithTimeout(r.Context(), time.Second)
			win, err := hitWindow(ctx, client, key, config.Window)
			cancel()
			if err != nil {
				logger.Error("Rate limit check failed, letting request through",
					zap.String("key", key),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			remaining := max(int64(config.RequestsPerWindow)-win.count, 0)
			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if win.count <= int64(config.RequestsPerWindow) {
				next.ServeHTTP(w, r)
				return
			}

			logger.Warn("Rate limit exceeded",
				zap.String("client_ip", ip),
				zap.Int64("count", win.count),
				zap.Int("limit", config.RequestsPerWindow),
			)
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(win.reset).Unix(), 10))
			w.Header().Set("Retry-After", strconv.Itoa(max(int(win.reset.Seconds()), 1)))
			RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		})
	}
}

// hitWindow increments the client counter and starts its window when the key
// has no expiry yet
func hitWindow(ctx context.Context, client *redis.Client, key string, length time.Duration) (window, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	if _, err := client.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		ttl = p.TTL(ctx, key)
		return nil
	}); err != nil {
		return window{}, err
	}

	win := window{count: incr.Val(), reset: ttl.Val()}
	if win.reset < 0 {
		if err := client.Expire(ctx, key, length).Err(); err != nil {
			return window{}, err
		}
		win.reset = length
	}
	return win, nil
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
