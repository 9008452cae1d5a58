package middleware

import (
	"context"
	"net/http"
	"strings"

	"jobpulse/internal/common"
	"jobpulse/internal/http/response"
)

// The gateway in front of this service authenticates the caller and forwards
// the identity in headers; session mechanics never reach this core.

type Role string

const (
	RoleEmployer  Role = "employer"
	RoleCandidate Role = "candidate"
	RoleAdmin     Role = "admin"
)

type contextKey string

const (
	ContextUserIDKey contextKey = "user_id"
	ContextRoleKey   contextKey = "role"
)

type AuthMiddleware struct{}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if rawID == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing user identity", nil))
			return
		}
		userID, err := common.ParseUUID(rawID)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid user id", err))
			return
		}
		role := Role(strings.ToLower(strings.TrimSpace(r.Header.Get("X-User-Role"))))
		ctx := context.WithValue(r.Context(), ContextUserIDKey, userID)
		ctx = context.WithValue(ctx, ContextRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireRole(role Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			activeRole, ok := r.Context().Value(ContextRoleKey).(Role)
			if !ok || activeRole == "" {
				response.Error(w, common.NewError(common.CodeForbidden, "role not found", nil))
				return
			}
			if activeRole != role {
				response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func UserIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextUserIDKey).(common.UUID)
	return id, ok
}
