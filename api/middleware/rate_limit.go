package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"

	"github.com/angelmondragon/pos-analytics/api/responses"
	pkgerrors "github.com/angelmondragon/pos-analytics/pkg/errors"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
)

// RateLimit caps requests per client IP per minute. A non-positive limit
// disables it.
func RateLimit(perMinute int, logg *logger.Logger) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if logg != nil {
				logg.Warn(logg.WithFields(ctx, map[string]any{
					"ip":    clientIP(r),
					"limit": perMinute,
				}), "rate_limit.blocked")
			}
			responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded").
				WithDetails(map[string]any{"limit_per_minute": perMinute}))
		}),
	)
}

func rateLimitKey(r *http.Request) (string, error) {
	return "ip:" + clientIP(r), nil
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
