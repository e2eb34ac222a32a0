package domain_test

import (
	"testing"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from domain.OrderStatus
		to   domain.OrderStatus
		want bool
	}{
		{name: "pending to preparing", from: domain.OrderPending, to: domain.OrderPreparing, want: true},
		{name: "preparing to ready", from: domain.OrderPreparing, to: domain.OrderReady, want: true},
		{name: "ready to completed", from: domain.OrderReady, to: domain.OrderCompleted, want: true},
		{name: "pending cancelled", from: domain.OrderPending, to: domain.OrderCancelled, want: true},
		{name: "ready cancelled", from: domain.OrderReady, to: domain.OrderCancelled, want: true},
		{name: "skip a step", from: domain.OrderPending, to: domain.OrderReady, want: false},
		{name: "backwards", from: domain.OrderReady, to: domain.OrderPreparing, want: false},
		{name: "completed is terminal", from: domain.OrderCompleted, to: domain.OrderCancelled, want: false},
		{name: "cancelled is terminal", from: domain.OrderCancelled, to: domain.OrderPending, want: false},
		{name: "same status", from: domain.OrderPreparing, to: domain.OrderPreparing, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestOrder_CalculateTotal(t *testing.T) {
	order := domain.Order{
		Items: []domain.OrderItem{
			{Name: "Burger", Quantity: 2, UnitPrice: decimal.RequireFromString("8.50")},
			{Name: "Lager", Quantity: 3, UnitPrice: decimal.RequireFromString("4.25")},
		},
	}

	assert.True(t, decimal.RequireFromString("29.75").Equal(order.CalculateTotal()))
	assert.True(t, decimal.Zero.Equal((&domain.Order{}).CalculateTotal()))
}
