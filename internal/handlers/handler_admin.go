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

// adminHandler serves the privileged administration endpoints.
type adminHandler struct {
	accounts  portssvc.AccountAdminSvc
	staff     portssvc.StaffImporterSvc
	migration portssvc.MigrationSvc
}

func newAdminHandler(accounts portssvc.AccountAdminSvc, staff portssvc.StaffImporterSvc, migration portssvc.MigrationSvc) *adminHandler {
	return &adminHandler{accounts: accounts, staff: staff, migration: migration}
}

// registerAdminRoutes registers the super-admin routes.
func registerAdminRoutes(rg *gin.RouterGroup, h *adminHandler) {
	admin := rg.Group("/admin", middleware.RequireRoles(domain.RoleSuperAdmin))
	{
		admin.POST("/accounts", h.accountAction)
		admin.POST("/staff/import", h.importStaff)
		admin.POST("/migrations/legacy", h.migrateLegacy)
	}
}

// accountAction godoc
// @Summary Manage an administrator account
// @Description Creates, updates or deletes an administrator account. A create reports later
// @Description profile or role failures as warnings without removing the account.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.AccountActionRequest true "Account action"
// @Success 200 {object} dto.AccountActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/accounts [post]
func (h *adminHandler) accountAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AccountActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	logger.Info("Received account action", slog.String("action", req.Action), slog.String("target_user_id", req.UserID))
	resp, err := h.accounts.ExecuteAccountAction(c.Request.Context(), req, actor.ID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to execute account action")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// importStaff godoc
// @Summary Bulk import staff
// @Description Creates one staff account per legacy record with a random temporary password.
// @Description Failures are reported per record and never abort the batch.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.ImportStaffRequest true "Legacy staff records"
// @Success 200 {object} dto.ImportStaffResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/staff/import [post]
func (h *adminHandler) importStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	results := h.staff.ImportLegacyStaff(c.Request.Context(), req.Records, actor.ID)
	resp := dto.ToImportStaffResponse(results)
	logger.Info("Staff import finished", slog.Int("succeeded", resp.Succeeded), slog.Int("failed", resp.Failed))
	c.JSON(http.StatusOK, resp)
}

// migrateLegacy godoc
// @Summary Migrate the legacy menu catalog
// @Description Copies categories and items from the legacy MySQL POS, skipping names that already exist.
// @Tags admin
// @Produce json
// @Success 200 {object} domain.MigrationResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Legacy database unreachable"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/migrations/legacy [post]
func (h *adminHandler) migrateLegacy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Starting legacy catalog migration")
	result, err := h.migration.MigrateLegacyCatalog(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to migrate legacy catalog")
		return
	}
	c.JSON(http.StatusOK, result)
}
