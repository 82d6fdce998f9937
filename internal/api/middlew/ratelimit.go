package middlew

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"gw-eternal-pay/pkg/response"
)

// NewIPLimiter строит лимитер в памяти процесса по строке вида "100-S", "600-M".
func NewIPLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("некорректный RATE_LIMIT %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit ограничивает число запросов с одного IP. Ожидает, что middleware.RealIP уже отработал.
func RateLimit(l *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := GetLogger(r.Context())
			ip := clientIP(r)

			lctx, err := l.Get(r.Context(), ip)
			if err != nil {
				log.Error("не удалось проверить лимит запросов", slog.String("ip", ip), slog.String("error", err.Error()))
				response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Rate limit check failed")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				log.Warn("превышен лимит запросов", slog.String("ip", ip), slog.Int64("limit", lctx.Limit))
				response.WriteJSONError(w, log, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP после RealIP в RemoteAddr может оказаться как host:port, так и голый адрес.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
