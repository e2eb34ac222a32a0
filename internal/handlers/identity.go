package handlers

import (
	"net/http"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/gin-gonic/gin"
)

// actorFromContext returns the authenticated caller, answering 401 when there is none.
func actorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return domain.Actor{}, false
	}
	kind, _ := middleware.GetIdentityKindFromContext(c)
	return domain.Actor{ID: userID, Kind: kind, Role: middleware.GetRoleFromContext(c)}, true
}

// adminIDFromContext is actorFromContext restricted to administrator tokens.
func adminIDFromContext(c *gin.Context) (string, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		return "", false
	}
	if actor.Kind != domain.KindAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only administrators can use this endpoint"})
		return "", false
	}
	return actor.ID, true
}
