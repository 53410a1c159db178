package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Dosada05/trade-machine/models"
)

type contextKey string

const identityContextKey contextKey = "identity"

var ErrNoIdentity = errors.New("no authenticated identity in context")

// TokenParser validates a session token.
type TokenParser interface {
	Parse(token string) (models.Identity, error)
}

// Authenticate accepts a token from the Authorization header or, for
// websocket upgrades that cannot set headers, from the token query
// parameter. Requests without a valid token get 401.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				unauthorized(w, "missing authentication token")
				return
			}

			identity, err := tokens.Parse(token)
			if err != nil {
				unauthorized(w, "invalid or expired authentication token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="trade-machine"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func IdentityFromContext(ctx context.Context) (models.Identity, error) {
	identity, ok := ctx.Value(identityContextKey).(models.Identity)
	if !ok || identity.UserID == uuid.Nil {
		return models.Identity{}, ErrNoIdentity
	}
	return identity, nil
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return identity.UserID, nil
}
