package handlers

import (
	"net/http"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports", middleware.RequireRoles(domain.ReportViewerRoles...))
	{
		reports.GET("/sales", h.salesSummary)
	}
}

// salesSummary godoc
// @Summary Sales summary
// @Description Aggregates completed orders between from and to, both inclusive.
// @Tags reports
// @Produce json
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day (YYYY-MM-DD)"
// @Param top query int false "Number of top items" default(10)
// @Success 200 {object} domain.SalesSummary
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/sales [get]
func (h *reportingHandler) salesSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SalesReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, err)
		return
	}
	from, to, err := params.Range()
	if err != nil {
		badRequest(c, logger, err)
		return
	}
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must not be after to"})
		return
	}

	summary, err := h.reportingService.SalesSummary(c.Request.Context(), from, to, params.Top)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build sales summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
