package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/gin-gonic/gin"
)

type navigationHandler struct {
	navigationService portssvc.NavigationSvc
}

func registerNavigationRoutes(rg *gin.RouterGroup, navigationService portssvc.NavigationSvc) {
	h := &navigationHandler{navigationService: navigationService}
	rg.GET("/navigation", h.getNavigation)
}

// getNavigation godoc
// @Summary Navigation menu
// @Description Returns the navigation entries visible to the caller's role. It controls
// @Description visibility only; every endpoint still checks the role itself.
// @Tags navigation
// @Produce json
// @Success 200 {object} dto.NavigationResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /navigation [get]
func (h *navigationHandler) getNavigation(c *gin.Context) {
	role := middleware.GetRoleFromContext(c)
	resp := dto.NavigationResponse{Menu: h.navigationService.MenuFor(role)}
	if role != nil {
		r := role.String()
		resp.Role = &r
	}
	c.JSON(http.StatusOK, resp)
}
