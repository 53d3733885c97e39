package middleware

import (
	"net"
	"net/http"
	"strconv"

	"food-delivery/pkg/metrics"
	"food-delivery/pkg/ratelimit"
	"food-delivery/pkg/utils"

	"go.uber.org/zap"
)

// RateLimit budgets requests per client IP within scope. Limiter errors let
// the request through.
func RateLimit(limiter *ratelimit.Limiter, scope string, logger *zap.Logger) func(http.Handler) http.Handler {
	return rateLimit(limiter, scope, false, logger)
}

// RateLimitFailures is RateLimit for credential checks: a response below 400
// clears the client's counter, so only failed attempts use up the budget.
func RateLimitFailures(limiter *ratelimit.Limiter, scope string, logger *zap.Logger) func(http.Handler) http.Handler {
	return rateLimit(limiter, scope, true, logger)
}

func rateLimit(limiter *ratelimit.Limiter, scope string, resetOnSuccess bool, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !limiter.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			allowed, retryAfter, err := limiter.Allow(r.Context(), scope, ip)
			if err != nil {
				logger.Warn("Rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			}

			if !allowed {
				metrics.RecordRateLimited(scope)
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
				utils.ResponseTooManyRequests(w, "Too many attempts, please try again later")
				return
			}

			if !resetOnSuccess {
				next.ServeHTTP(w, r)
				return
			}

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			if rw.statusCode < http.StatusBadRequest {
				if err := limiter.Reset(r.Context(), scope, ip); err != nil {
					logger.Warn("Rate limit reset failed", zap.String("scope", scope), zap.Error(err))
				}
			}
		})
	}
}

// clientIP expects chi's RealIP to have rewritten RemoteAddr already.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
