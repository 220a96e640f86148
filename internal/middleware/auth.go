package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/taskpad/taskpad-go/internal/crypto"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity carries the authenticated user through the request context.
type Identity struct {
	UserID   int64
	Username string
}

// JWTAuth returns middleware that validates a Bearer token from the Authorization header.
// A missing or malformed header is rejected with 401; a token that fails
// verification is rejected with 403.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" || token[0] == ' ' {
				writeJSONError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, Identity{
				UserID:   claims.UserID,
				Username: claims.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the request context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
