package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RequestLogging attaches a request-scoped logger carrying the request id
// and remote address, and writes one access line per request.
func RequestLogging(logger zerolog.Logger) func(http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		hlog.NewHandler(logger),
		hlog.RequestIDHandler("request_id", "X-Request-Id"),
		hlog.RemoteAddrHandler("remote_addr"),
		hlog.MethodHandler("method"),
		hlog.URLHandler("url"),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			event := hlog.FromRequest(r).Info()
			if status >= http.StatusInternalServerError {
				event = hlog.FromRequest(r).Error()
			}
			event.Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),
	}

	return func(next http.Handler) http.Handler {
		for i := len(chain) - 1; i >= 0; i-- {
			next = chain[i](next)
		}
		return next
	}
}

type errorDetailKey struct{}

// ErrorDetails marks whether 500 responses may include the underlying
// error text.
func ErrorDetails(expose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), errorDetailKey{}, expose)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ErrorDetailsEnabled(ctx context.Context) bool {
	expose, _ := ctx.Value(errorDetailKey{}).(bool)
	return expose
}
