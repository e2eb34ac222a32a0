package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/SscSPs/cherry_dining/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// inventoryHandler handles stock lines and stock movements.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers all inventory-related routes.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)
	managers := middleware.RequireRoles(domain.InventoryManagerRoles...)

	inventory := rg.Group("/inventory")
	{
		inventory.GET("", h.listInventory)
		inventory.POST("", managers, h.createItem)
		inventory.GET("/:id/movements", h.listMovements)
		inventory.POST("/:id/movements", managers, h.applyMovement)
	}
}

// listInventory godoc
// @Summary List stock
// @Description Lists stock lines for a bar, or the central store when bar_id is omitted.
// @Tags inventory
// @Produce json
// @Param bar_id query string false "Bar ID"
// @Param low_only query bool false "Only items at or below their minimum level"
// @Success 200 {object} dto.ListInventoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory [get]
func (h *inventoryHandler) listInventory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListInventoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, err)
		return
	}

	var barID *string
	if params.BarID != "" {
		barID = &params.BarID
	}
	items, err := h.inventoryService.ListInventory(c.Request.Context(), barID, params.LowOnly)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list inventory")
		return
	}

	resp := dto.ListInventoryResponse{Items: make([]dto.InventoryItemResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = dto.ToInventoryItemResponse(item)
	}
	c.JSON(http.StatusOK, resp)
}

// createItem godoc
// @Summary Create a stock line
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body dto.CreateInventoryItemRequest true "Stock line"
// @Success 201 {object} dto.InventoryItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req, actor.ID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create inventory item")
		return
	}
	logger.Info("Inventory item created", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(*item))
}

// applyMovement godoc
// @Summary Record a stock movement
// @Description Applies an in, out or adjustment movement. Stock never goes below zero.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Inventory item ID"
// @Param request body dto.StockMovementRequest true "Movement"
// @Success 201 {object} dto.StockMovementResponse
// @Failure 400 {object} ErrorResponse "Insufficient stock or invalid quantity"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/{id}/movements [post]
func (h *inventoryHandler) applyMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	itemID := c.Param("id")
	movement, item, err := h.inventoryService.ApplyMovement(c.Request.Context(), itemID, req, actor.ID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record stock movement")
		return
	}

	logger.Info("Stock movement recorded",
		slog.String("item_id", itemID),
		slog.String("movement_type", req.MovementType),
		slog.String("new_stock", movement.NewStock.String()))
	c.JSON(http.StatusCreated, dto.StockMovementResponse{
		Movement: *movement,
		Item:     dto.ToInventoryItemResponse(*item),
	})
}

// listMovements godoc
// @Summary List stock movements
// @Description Pages through an item's movement history, newest first.
// @Tags inventory
// @Produce json
// @Param id path string true "Inventory item ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/{id}/movements [get]
func (h *inventoryHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, err)
		return
	}
	before, err := pagination.DecodeCursor(params.NextToken)
	if err != nil {
		badRequest(c, logger, err)
		return
	}

	movements, err := h.inventoryService.ListMovements(c.Request.Context(), c.Param("id"), before, params.Limit)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list stock movements")
		return
	}

	resp := dto.ListMovementsResponse{Movements: movements}
	if n := len(movements); n > 0 {
		last := movements[n-1]
		resp.NextToken = pagination.NextToken(n, params.Limit, domain.PageCursor{CreatedAt: last.CreatedAt, ID: last.MovementID})
	}
	c.JSON(http.StatusOK, resp)
}
