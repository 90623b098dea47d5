// Package ratelimit protects the public submission endpoint with a
// per-IP fixed window counter backed by Redis. When Redis is down or not
// configured the limiter fails open: losing a throttle is better than
// losing submissions.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rl:submit:"

// Limiter counts requests per client IP in fixed windows.
type Limiter struct {
	client *redis.Client
	logger *slog.Logger
	limit  int
	window time.Duration
}

// New returns a limiter; a nil redis client disables limiting entirely.
func New(client *redis.Client, logger *slog.Logger, limit int, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		logger: logger,
		limit:  limit,
		window: window,
	}
}

// Allow reports whether the request from ip fits in the current window.
func (l *Limiter) Allow(ctx context.Context, ip string) (bool, error) {
	if l.client == nil {
		return true, nil
	}

	key := fmt.Sprintf("%s%s:%d", keyPrefix, ip, time.Now().Unix()/int64(l.window.Seconds()))
	pipe := l.client.Pipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}
	return count.Val() <= int64(l.limit), nil
}

// Middleware throttles the wrapped handler per client IP.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		allowed, err := l.Allow(r.Context(), ip)
		if err != nil {
			l.logger.Warn("rate limit check failed, allowing request", "error", err.Error())
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(l.window.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limited"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
