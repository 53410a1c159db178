package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey lets a request through only when it carries key in the
// X-Admin-Key header.
func RequireAdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminKeyHeader)
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "admin key required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
