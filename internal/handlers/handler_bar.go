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

// barHandler handles bar locations and cashier-bar assignments.
type barHandler struct {
	barService        portssvc.BarSvcFacade
	assignmentService portssvc.AssignmentSvcFacade
}

func newBarHandler(bs portssvc.BarSvcFacade, as portssvc.AssignmentSvcFacade) *barHandler {
	return &barHandler{barService: bs, assignmentService: as}
}

// registerBarRoutes registers bar and assignment routes.
func registerBarRoutes(rg *gin.RouterGroup, bs portssvc.BarSvcFacade, as portssvc.AssignmentSvcFacade) {
	h := newBarHandler(bs, as)
	managers := middleware.RequireRoles(domain.StaffManagerRoles...)

	bars := rg.Group("/bars")
	{
		bars.GET("", h.listBars)
		bars.POST("", managers, h.createBar)
	}

	assignments := rg.Group("/assignments")
	{
		assignments.GET("/me", h.myAssignment)
		assignments.GET("", managers, h.listAssignments)
		assignments.POST("", managers, h.assignBar)
	}
}

// listBars godoc
// @Summary List bars
// @Tags bars
// @Produce json
// @Param include_inactive query bool false "Include inactive bars"
// @Success 200 {object} dto.ListBarsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bars [get]
func (h *barHandler) listBars(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	includeInactive := c.Query("include_inactive") == "true"

	bars, err := h.barService.ListBars(c.Request.Context(), includeInactive)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list bars")
		return
	}
	c.JSON(http.StatusOK, dto.ListBarsResponse{Bars: bars})
}

// createBar godoc
// @Summary Create a bar
// @Tags bars
// @Accept json
// @Produce json
// @Param request body dto.CreateBarRequest true "Bar details"
// @Success 201 {object} domain.Bar
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bars [post]
func (h *barHandler) createBar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	bar, err := h.barService.CreateBar(c.Request.Context(), req, actor.ID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create bar")
		return
	}
	logger.Info("Bar created", slog.String("bar_id", bar.BarID))
	c.JSON(http.StatusCreated, bar)
}

// myAssignment godoc
// @Summary Current bar assignment
// @Description Returns the bar the caller is assigned to, or 404 when not assigned.
// @Tags bars
// @Produce json
// @Success 200 {object} domain.CashierBarAssignment
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Not assigned"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /assignments/me [get]
func (h *barHandler) myAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetActiveAssignment(c.Request.Context(), actor.ID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to load bar assignment")
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// listAssignments godoc
// @Summary List active bar assignments
// @Tags bars
// @Produce json
// @Success 200 {object} dto.ListAssignmentsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /assignments [get]
func (h *barHandler) listAssignments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assignments, err := h.assignmentService.ListActiveAssignments(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list assignments")
		return
	}
	c.JSON(http.StatusOK, dto.ListAssignmentsResponse{Assignments: assignments})
}

// assignBar godoc
// @Summary Assign an identity to a bar
// @Description Replaces the identity's active assignment. At most one assignment is active per identity.
// @Tags bars
// @Accept json
// @Produce json
// @Param request body dto.AssignBarRequest true "Assignment"
// @Success 200 {object} domain.CashierBarAssignment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Bar not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /assignments [post]
func (h *barHandler) assignBar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AssignBarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.Assign(c.Request.Context(), req.IdentityID, req.BarID, actor.ID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to assign bar")
		return
	}
	logger.Info("Bar assigned", slog.String("identity_id", req.IdentityID), slog.String("bar_id", req.BarID))
	c.JSON(http.StatusOK, assignment)
}
