package middleware

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type of keys stored in the request context. Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	roleKey      = contextKey("role")
	kindKey      = contextKey("identityKind")
)

// GetUserIDFromContext retrieves the authenticated identity ID from the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return UserIDFromCtx(c.Request.Context())
}

// UserIDFromCtx is GetUserIDFromContext for code that only has a context.Context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetRoleFromContext returns the caller's role, or nil when the identity has none.
func GetRoleFromContext(c *gin.Context) *domain.Role {
	role, ok := c.Request.Context().Value(roleKey).(domain.Role)
	if !ok {
		return nil
	}
	return &role
}

// GetIdentityKindFromContext returns whether the caller authenticated as admin or staff.
func GetIdentityKindFromContext(c *gin.Context) (domain.IdentityKind, bool) {
	kind, ok := c.Request.Context().Value(kindKey).(domain.IdentityKind)
	return kind, ok
}

// WithIdentity stores an authenticated identity in ctx. Used by AuthMiddleware and tests.
func WithIdentity(ctx context.Context, userID string, kind domain.IdentityKind, role *domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, kindKey, kind)
	if role != nil {
		ctx = context.WithValue(ctx, roleKey, *role)
	}
	return ctx
}
