package dto

import (
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest creates a menu category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=80"`
}

// CreateMenuItemRequest creates a sellable menu item.
type CreateMenuItemRequest struct {
	CategoryID *string         `json:"categoryId" binding:"omitempty,uuid"`
	Name       string          `json:"name" binding:"required,max=120"`
	Price      decimal.Decimal `json:"price"`
}

// CatalogResponse returns categories and items for the POS.
type CatalogResponse struct {
	Categories []domain.MenuCategory `json:"categories"`
	Items      []domain.MenuItem     `json:"items"`
}
