package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip are not tracked by PostHog. Change streams are long-lived and would
// report once per disconnect.
var pathsToSkip = map[string]bool{
	"/health":                    true,
	"/api/v1/realtime/orders":    true,
	"/api/v1/realtime/transfers": true,
}

// PosthogMiddleware tracks successful authenticated API calls with PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/orders/:id/status" -> "api_v1_orders_:id_status"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if kind, ok := GetIdentityKindFromContext(c); ok {
			props["identity_kind"] = string(kind)
		}
		if role := GetRoleFromContext(c); role != nil {
			props["role"] = role.String()
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a custom event from a handler on behalf of distinctID.
func PosthogEvent(posthogClient *utils.PosthogClientWrapper, distinctID, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() || distinctID == "" {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	posthogClient.Enqueue(distinctID, eventName, properties)
}
