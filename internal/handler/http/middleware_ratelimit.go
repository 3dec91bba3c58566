package http

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
)

// rateLimitWindow is the fixed window the per-IP request ceiling applies to.
const rateLimitWindow = time.Minute

// withRateLimit caps requests per client IP using a fixed window counter in
// Redis. The middleware is disabled when no Redis client is wired or the
// configured ceiling is zero. A Redis failure lets the request through: the
// limiter protects the backend from bursts, it is not an auth boundary.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.redis == nil || h.rateLimitPerMinute <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		key := fmt.Sprintf("rate_limit:%s", clientIP(r))
		allowed, err := h.checkRateLimit(r, key)
		if err != nil {
			log.Err(err).Msg("rate limit check ended with error")
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			log.Warn().Str("key", key).Msg("request rejected by rate limiter")
			http.Error(w, "too many requests, wait for one minute", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) checkRateLimit(r *http.Request, key string) (bool, error) {
	ctx := r.Context()

	current, err := h.redis.Get(ctx, key).Int64()
	if err != nil && err != redis.Nil {
		return false, err
	}

	if current >= int64(h.rateLimitPerMinute) {
		return false, nil
	}

	count, err := h.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		h.redis.Expire(ctx, key, rateLimitWindow)
	}

	return count <= int64(h.rateLimitPerMinute), nil
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
