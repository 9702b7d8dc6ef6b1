package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/fullstacklab/appsuite/internal/errors"
	"github.com/fullstacklab/appsuite/internal/httputil"
	"github.com/fullstacklab/appsuite/internal/logging"
)

// RateLimiter applies a per-client request budget keyed by authenticated
// subject, falling back to the client IP.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	logger   *logging.Logger
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond sustained
// requests with the given burst.
func NewRateLimiter(requestsPerSecond, burst int, logger *logging.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		logger:   logger,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		// bound the map so hostile clients cannot grow it without limit
		if len(rl.limiters) > 10000 {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Handler returns the rate limiting middleware handler.
func (rl *RateLimiter) Handler() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := logging.GetUserID(r.Context())
			if key == "" {
				if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
					key = host
				} else {
					key = r.RemoteAddr
				}
			}

			if !rl.getLimiter(key).Allow() {
				rl.logger.WithContext(r.Context()).WithFields(map[string]interface{}{
					"key":    key,
					"path":   r.URL.Path,
					"method": r.Method,
				}).Warn("rate limit exceeded")

				serviceErr := errors.RateLimitExceeded(int(rl.rate), "1s")
				httputil.WriteErrorResponse(w, serviceErr.HTTPStatus, string(serviceErr.Code), serviceErr.Message, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// allowN drains n tokens from the key's limiter.
func (rl *RateLimiter) allowN(key string, n int) bool {
	return rl.getLimiter(key).AllowN(time.Now(), n)
}
