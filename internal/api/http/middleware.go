package http

import (
	"context"
	"net/http"
	"strings"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/security"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware validates the Bearer token and stores the resolved actor on
// the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errorBody{
				Kind: "unauthorized", Message: "missing bearer token",
			}})
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil || claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errorBody{
				Kind: "unauthorized", Message: "invalid or expired token",
			}})
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, claims.Actor())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// actorFrom returns the authenticated actor set by AuthMiddleware.
func actorFrom(r *http.Request) domain.Actor {
	actor, _ := r.Context().Value(actorKey).(domain.Actor)
	return actor
}

// requireRole writes a 403 and returns false unless the caller holds one of
// the given roles.
func requireRole(w http.ResponseWriter, r *http.Request, roles ...domain.UserRole) (domain.Actor, bool) {
	actor := actorFrom(r)
	for _, role := range roles {
		if actor.Role == role {
			return actor, true
		}
	}
	writeJSON(w, http.StatusForbidden, errorResponse{Error: errorBody{
		Kind: "forbidden", Message: "insufficient role for this operation",
	}})
	return actor, false
}
