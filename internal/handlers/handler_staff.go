package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/gin-gonic/gin"
)

// staffHandler handles HTTP requests related to staff identities.
type staffHandler struct {
	staffService portssvc.StaffSvcFacade
}

func newStaffHandler(ss portssvc.StaffSvcFacade) *staffHandler {
	return &staffHandler{staffService: ss}
}

// registerStaffRoutes registers all staff-related routes. Every route is limited to staff managers.
func registerStaffRoutes(rg *gin.RouterGroup, staffService portssvc.StaffSvcFacade) {
	h := newStaffHandler(staffService)

	staff := rg.Group("/staff", middleware.RequireRoles(domain.StaffManagerRoles...))
	{
		staff.GET("", h.listStaff)
		staff.POST("", h.createStaff)
		staff.GET("/:id", h.getStaff)
		staff.PATCH("/:id", h.updateStaff)
		staff.POST("/:id/password", h.resetPassword)
	}
}

// listStaff godoc
// @Summary List staff
// @Description Lists staff identities, active only unless include_inactive is set.
// @Tags staff
// @Produce json
// @Param include_inactive query bool false "Include deactivated staff"
// @Success 200 {object} dto.ListStaffResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff [get]
func (h *staffHandler) listStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListStaffParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, err)
		return
	}

	staff, err := h.staffService.ListStaff(c.Request.Context(), params.IncludeInactive)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list staff")
		return
	}
	c.JSON(http.StatusOK, dto.ToListStaffResponse(staff))
}

// createStaff godoc
// @Summary Create a staff identity
// @Tags staff
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "Staff details"
// @Success 201 {object} dto.StaffResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff [post]
func (h *staffHandler) createStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	logger.Info("Received request to create staff", slog.String("username", req.Username), slog.String("role", req.Role))
	created, err := h.staffService.CreateStaff(c.Request.Context(), req, actor.ID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create staff")
		return
	}

	logger.Info("Staff created successfully", slog.String("staff_id", created.ID))
	c.JSON(http.StatusCreated, dto.ToStaffResponse(created))
}

// getStaff godoc
// @Summary Get a staff identity
// @Tags staff
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} dto.StaffResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff/{id} [get]
func (h *staffHandler) getStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	staff, err := h.staffService.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve staff")
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}

// updateStaff godoc
// @Summary Update a staff identity
// @Description Updates name, email, role or active flag. Omitted fields are left unchanged.
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param request body dto.UpdateStaffRequest true "Fields to change"
// @Success 200 {object} dto.StaffResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff/{id} [patch]
func (h *staffHandler) updateStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	staffID := c.Param("id")
	updated, err := h.staffService.UpdateStaff(c.Request.Context(), staffID, req, actor.ID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update staff")
		return
	}

	logger.Info("Staff updated", slog.String("staff_id", staffID))
	c.JSON(http.StatusOK, dto.ToStaffResponse(updated))
}

// resetPassword godoc
// @Summary Reset a staff password
// @Description Replaces the staff member's password. The new password is never echoed back.
// @Tags staff
// @Accept json
// @Param id path string true "Staff ID"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff/{id}/password [post]
func (h *staffHandler) resetPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	staffID := c.Param("id")
	if err := h.staffService.ResetPassword(c.Request.Context(), staffID, req.NewPassword, actor.ID); err != nil {
		respondWithError(c, logger, err, "Failed to reset password")
		return
	}

	logger.Info("Staff password reset", slog.String("staff_id", staffID))
	c.Status(http.StatusNoContent)
}
