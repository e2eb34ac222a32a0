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

// orderHandler handles POS orders.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// registerOrderRoutes registers all order-related routes. Any floor identity may read
// orders and move them along; only order takers may submit new ones.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.GET("", h.listOrders)
		orders.POST("", middleware.RequireRoles(domain.OrderTakerRoles...), h.createOrder)
		orders.GET("/:id", h.getOrder)
		orders.PATCH("/:id/status", h.updateOrderStatus)
	}
}

// listOrders godoc
// @Summary List orders
// @Description Lists recent orders, newest first, optionally filtered by status and type.
// @Tags orders
// @Produce json
// @Param status query []string false "Statuses to include" collectionFormat(multi)
// @Param type query string false "Order type (kitchen or bar)"
// @Param limit query int false "Maximum number of orders" default(50)
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, err)
		return
	}

	filter := domain.OrderFilter{Limit: params.Limit}
	for _, s := range params.Status {
		filter.Statuses = append(filter.Statuses, domain.OrderStatus(s))
	}
	if params.OrderType != "" {
		orderType := domain.OrderType(params.OrderType)
		filter.OrderType = &orderType
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, dto.ListOrdersResponse{Orders: orders})
}

// createOrder godoc
// @Summary Submit a POS order
// @Description Creates a pending order from the cart. The total is computed server-side.
// @Tags orders
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Cart"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, actor.ID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create order")
		return
	}

	logger.Info("Order created", slog.String("order_id", order.OrderID), slog.Int64("order_number", order.OrderNumber))
	c.JSON(http.StatusCreated, order)
}

// getOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// updateOrderStatus godoc
// @Summary Change an order's status
// @Description Moves an order one step forward or cancels it. With expectedVersion set the
// @Description update is refused with 409 when the order changed since it was read.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse "Transition not allowed"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Stale version"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/status [patch]
func (h *orderHandler) updateOrderStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	orderID := c.Param("id")
	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), orderID, domain.OrderStatus(req.Status), req.ExpectedVersion, actor.ID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update order status")
		return
	}

	logger.Info("Order status changed", slog.String("order_id", orderID), slog.String("status", string(order.Status)))
	c.JSON(http.StatusOK, order)
}
