package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuCategory groups sellable menu items on the POS.
type MenuCategory struct {
	CategoryID string    `json:"categoryID" db:"category_id"`
	Name       string    `json:"name" db:"name"`
	LegacyID   *string   `json:"legacyID,omitempty" db:"legacy_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// MenuItem is a sellable item shown in the POS cart.
type MenuItem struct {
	MenuItemID  string          `json:"menuItemID" db:"menu_item_id"`
	CategoryID  *string         `json:"categoryID,omitempty" db:"category_id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	IsAvailable bool            `json:"isAvailable" db:"is_available"`
	LegacyID    *string         `json:"legacyID,omitempty" db:"legacy_id"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}
