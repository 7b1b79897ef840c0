package http

import (
	"net"
	"net/http"

	"go.uber.org/zap"

	"tradeline-calculator/metrics"
)

// RateLimitMiddleware rejects requests from clients over their allowance with
// 429. Clients are keyed by RemoteAddr, which only reflects forwarded headers
// when the server trusts them.
func RateLimitMiddleware(
	limiter *RateLimiter,
	next http.Handler,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiter.Allow(ip) {
			metrics.IncreaseRateLimitedTotalMetric()
			zap.S().Named("rate_limiter").Debugw("rate limit exceeded", "client", ip, "path", r.URL.Path)
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
