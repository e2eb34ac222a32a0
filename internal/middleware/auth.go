package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token of an admin or a staff session and
// stores the identity in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := bearerToken(c)
		if !ok {
			logger.Warn("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		role := claims.RoleOrNil()
		ctx := WithIdentity(c.Request.Context(), claims.Subject, claims.Kind, role)

		enriched := logger.With(
			slog.String("user_id", claims.Subject),
			slog.String("identity_kind", string(claims.Kind)),
		)
		c.Request = c.Request.WithContext(WithLogger(ctx, enriched))

		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header. SSE clients that cannot
// set headers may pass it as the access_token query parameter instead.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query("access_token")
		return token, token != "" && c.GetHeader("Accept") == "text/event-stream"
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireRoles rejects callers whose role is absent or not one of allowed.
// It must run after AuthMiddleware.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRoleFromContext(c)
		if !domain.HasRole(role, allowed...) {
			userID, _ := GetUserIDFromContext(c)
			GetLoggerFromCtx(c.Request.Context()).Warn("Role check failed",
				slog.String("user_id", userID),
				slog.Any("role", role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
			return
		}
		c.Next()
	}
}
