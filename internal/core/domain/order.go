package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderType routes an order to the kitchen or the bar display.
type OrderType string

const (
	OrderTypeKitchen OrderType = "kitchen"
	OrderTypeBar     OrderType = "bar"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Next returns the forward successor of s, if any.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderPending:
		return OrderPreparing, true
	case OrderPreparing:
		return OrderReady, true
	case OrderReady:
		return OrderCompleted, true
	}
	return "", false
}

// CanTransition allows one forward step or cancellation from any non-terminal state.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	next, ok := s.Next()
	return ok && next == to
}

func (t OrderType) IsValid() bool {
	return t == OrderTypeKitchen || t == OrderTypeBar
}

// Order is a POS order and its ordered line items.
type Order struct {
	OrderID     string          `json:"orderID"`
	OrderNumber int64           `json:"orderNumber"`
	OrderType   OrderType       `json:"orderType"`
	TableNumber *string         `json:"tableNumber,omitempty"`
	Status      OrderStatus     `json:"status"`
	Notes       *string         `json:"notes,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Version     int             `json:"version"`
	Items       []OrderItem     `json:"items"`
	AuditFields
}

// OrderItem is one line of an order.
type OrderItem struct {
	OrderItemID string          `json:"orderItemID"`
	OrderID     string          `json:"orderID"`
	MenuItemID  *string         `json:"menuItemID,omitempty"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Notes       *string         `json:"notes,omitempty"`
	Position    int             `json:"position"`
}

// LineTotal is quantity multiplied by unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CalculateTotal sums the line totals of the order items.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Statuses  []OrderStatus
	OrderType *OrderType
	Since     *time.Time
	Limit     int
}
