package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hostel-management/internal/access"
	"hostel-management/internal/data/entity"
	"hostel-management/internal/usecase"
	"hostel-management/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the user that owns it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthSession validates the bearer session token and stores the caller's ID,
// effective role and token in the request context.
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if errors.Is(err, usecase.ErrUnauthorized) {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.EffectiveRole())
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Guard refuses the request with 403 unless the caller's role passes gate.
// It must run after AuthSession.
func Guard(engine *access.Engine, gate access.Gate, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role := utils.GetRoleFromContext(r.Context())
			if !gate.Allows(engine, role) {
				logger.Warn("Access denied",
					zap.String("role", role.String()),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission passes callers holding any of perms.
func RequirePermission(engine *access.Engine, logger *zap.Logger, perms ...access.Permission) func(http.Handler) http.Handler {
	return Guard(engine, access.RequireAny(perms...), logger)
}

// RequireRole passes callers whose role is one of roles.
func RequireRole(engine *access.Engine, logger *zap.Logger, roles ...access.Role) func(http.Handler) http.Handler {
	return Guard(engine, access.RequireRoles(roles...), logger)
}
