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

// catalogHandler serves the menu catalog used by the POS cart.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)
	managers := middleware.RequireRoles(domain.StaffManagerRoles...)

	catalog := rg.Group("/catalog")
	{
		catalog.GET("", h.getCatalog)
		catalog.POST("/categories", managers, h.createCategory)
		catalog.POST("/items", managers, h.createMenuItem)
	}
}

// getCatalog godoc
// @Summary Menu catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CatalogResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /catalog [get]
func (h *catalogHandler) getCatalog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categories, items, err := h.catalogService.GetCatalog(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to load catalog")
		return
	}
	c.JSON(http.StatusOK, dto.CatalogResponse{Categories: categories, Items: items})
}

// createCategory godoc
// @Summary Create a menu category
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} domain.MenuCategory
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /catalog/categories [post]
func (h *catalogHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create category")
		return
	}
	logger.Info("Menu category created", slog.String("category_id", category.CategoryID))
	c.JSON(http.StatusCreated, category)
}

// createMenuItem godoc
// @Summary Create a menu item
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateMenuItemRequest true "Menu item"
// @Success 201 {object} domain.MenuItem
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /catalog/items [post]
func (h *catalogHandler) createMenuItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	item, err := h.catalogService.CreateMenuItem(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create menu item")
		return
	}
	logger.Info("Menu item created", slog.String("menu_item_id", item.MenuItemID))
	c.JSON(http.StatusCreated, item)
}
