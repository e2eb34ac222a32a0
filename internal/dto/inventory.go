package dto

import (
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest creates a stock line. An empty BarID is the central store.
type CreateInventoryItemRequest struct {
	BarID         *string         `json:"barId" binding:"omitempty,uuid"`
	Name          string          `json:"name" binding:"required,max=120"`
	Unit          string          `json:"unit" binding:"required,max=20"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
}

// StockMovementRequest applies an in, out or adjustment movement.
type StockMovementRequest struct {
	MovementType string          `json:"movementType" binding:"required,movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Notes        *string         `json:"notes" binding:"omitempty,max=300"`
}

// ListInventoryParams defines query parameters for listing inventory.
type ListInventoryParams struct {
	BarID   string `form:"bar_id" binding:"omitempty,uuid"`
	LowOnly bool   `form:"low_only,default=false"`
}

// InventoryItemResponse adds the derived stock flags.
type InventoryItemResponse struct {
	domain.InventoryItem
	LowStock   bool `json:"lowStock"`
	OutOfStock bool `json:"outOfStock"`
}

// ListInventoryResponse wraps the list of inventory items.
type ListInventoryResponse struct {
	Items []InventoryItemResponse `json:"items"`
}

// StockMovementResponse returns the movement and the item after it was applied.
type StockMovementResponse struct {
	Movement domain.StockMovement  `json:"movement"`
	Item     InventoryItemResponse `json:"item"`
}

// ListMovementsParams pages through an item's movement history, newest first.
type ListMovementsParams struct {
	Limit     int    `form:"limit,default=50" binding:"gte=1,lte=200"`
	NextToken string `form:"nextToken"`
}

// ListMovementsResponse wraps stock movement history.
type ListMovementsResponse struct {
	Movements []domain.StockMovement `json:"movements"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToInventoryItemResponse converts a domain.InventoryItem and computes its flags.
func ToInventoryItemResponse(item domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		InventoryItem: item,
		LowStock:      item.IsLowStock(),
		OutOfStock:    item.IsOutOfStock(),
	}
}
