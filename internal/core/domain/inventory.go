package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stock line held at a bar, or at the central store when BarID is nil.
type InventoryItem struct {
	ItemID        string          `json:"itemID"`
	BarID         *string         `json:"barID,omitempty"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	AuditFields
}

// IsOutOfStock reports current_stock <= 0.
func (i InventoryItem) IsOutOfStock() bool {
	return !i.CurrentStock.IsPositive()
}

// IsLowStock reports 0 < current_stock <= min_stock_level.
func (i InventoryItem) IsLowStock() bool {
	return i.CurrentStock.IsPositive() && i.CurrentStock.LessThanOrEqual(i.MinStockLevel)
}

// MovementType is the kind of change a stock movement applies.
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

func (t MovementType) IsValid() bool {
	return t == MovementIn || t == MovementOut || t == MovementAdjustment
}

// StockMovement is an immutable record of one stock change.
type StockMovement struct {
	MovementID    string          `json:"movementID"`
	ItemID        string          `json:"itemID"`
	MovementType  MovementType    `json:"movementType"`
	PreviousStock decimal.Decimal `json:"previousStock"`
	Quantity      decimal.Decimal `json:"quantity"`
	NewStock      decimal.Decimal `json:"newStock"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ApplyMovement computes the stock level after a movement.
// "in" adds, "out" subtracts and never goes below zero, "adjustment" sets an absolute level.
func ApplyMovement(previous, quantity decimal.Decimal, movementType MovementType) (decimal.Decimal, error) {
	switch movementType {
	case MovementIn:
		if !quantity.IsPositive() {
			return decimal.Zero, fmt.Errorf("quantity must be positive for %s movements", movementType)
		}
		return previous.Add(quantity), nil
	case MovementOut:
		if !quantity.IsPositive() {
			return decimal.Zero, fmt.Errorf("quantity must be positive for %s movements", movementType)
		}
		return decimal.Max(decimal.Zero, previous.Sub(quantity)), nil
	case MovementAdjustment:
		if quantity.IsNegative() {
			return decimal.Zero, fmt.Errorf("adjusted stock level cannot be negative")
		}
		return quantity, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown movement type %q", movementType)
	}
}
