package dto

import (
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest is one POS cart line.
type CreateOrderItemRequest struct {
	MenuItemID *string         `json:"menuItemId" binding:"omitempty,uuid"`
	Name       string          `json:"name" binding:"required,max=120"`
	Quantity   int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Notes      *string         `json:"notes" binding:"omitempty,max=300"`
}

// CreateOrderRequest submits a POS cart as an order.
type CreateOrderRequest struct {
	OrderType   string                   `json:"orderType" binding:"required,oneof=kitchen bar"`
	TableNumber *string                  `json:"tableNumber" binding:"omitempty,max=20"`
	Notes       *string                  `json:"notes" binding:"omitempty,max=500"`
	Items       []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest advances or cancels an order. ExpectedVersion opts into a stale-write check.
type UpdateOrderStatusRequest struct {
	Status          string `json:"status" binding:"required,oneof=pending preparing ready completed cancelled"`
	ExpectedVersion *int   `json:"expectedVersion" binding:"omitempty,gte=1"`
}

// ListOrdersParams defines query parameters for listing orders.
type ListOrdersParams struct {
	Status    []string `form:"status"`
	OrderType string   `form:"type" binding:"omitempty,oneof=kitchen bar"`
	Limit     int      `form:"limit,default=50" binding:"gte=1,lte=200"`
}

// ListOrdersResponse wraps the list of orders.
type ListOrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}
