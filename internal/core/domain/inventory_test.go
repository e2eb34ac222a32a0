package domain_test

import (
	"testing"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyMovement(t *testing.T) {
	tests := []struct {
		name     string
		previous decimal.Decimal
		quantity decimal.Decimal
		movement domain.MovementType
		want     decimal.Decimal
		wantErr  bool
	}{
		{name: "in adds", previous: dec("10"), quantity: dec("5"), movement: domain.MovementIn, want: dec("15")},
		{name: "out subtracts", previous: dec("10"), quantity: dec("4"), movement: domain.MovementOut, want: dec("6")},
		{name: "out floors at zero", previous: dec("3"), quantity: dec("5"), movement: domain.MovementOut, want: dec("0")},
		{name: "adjustment sets level", previous: dec("10"), quantity: dec("2.5"), movement: domain.MovementAdjustment, want: dec("2.5")},
		{name: "adjustment to zero", previous: dec("10"), quantity: dec("0"), movement: domain.MovementAdjustment, want: dec("0")},
		{name: "in rejects zero", previous: dec("10"), quantity: dec("0"), movement: domain.MovementIn, wantErr: true},
		{name: "out rejects negative", previous: dec("10"), quantity: dec("-1"), movement: domain.MovementOut, wantErr: true},
		{name: "adjustment rejects negative", previous: dec("10"), quantity: dec("-1"), movement: domain.MovementAdjustment, wantErr: true},
		{name: "unknown type", previous: dec("10"), quantity: dec("1"), movement: domain.MovementType("transfer"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ApplyMovement(tt.previous, tt.quantity, tt.movement)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestInventoryItem_StockFlags(t *testing.T) {
	tests := []struct {
		name    string
		current string
		min     string
		low     bool
		out     bool
	}{
		{name: "healthy", current: "20", min: "5", low: false, out: false},
		{name: "at minimum is low", current: "5", min: "5", low: true, out: false},
		{name: "below minimum", current: "1", min: "5", low: true, out: false},
		{name: "zero is out not low", current: "0", min: "5", low: false, out: true},
		{name: "negative is out", current: "-2", min: "5", low: false, out: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := domain.InventoryItem{CurrentStock: dec(tt.current), MinStockLevel: dec(tt.min)}
			assert.Equal(t, tt.low, item.IsLowStock())
			assert.Equal(t, tt.out, item.IsOutOfStock())
		})
	}
}
