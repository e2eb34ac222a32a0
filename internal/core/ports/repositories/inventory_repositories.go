package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventoryReader defines read operations for inventory items.
type InventoryReader interface {
	FindInventoryItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	// FindInventoryItemForUpdate locks the row until the surrounding transaction ends.
	FindInventoryItemForUpdate(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	// FindInventoryItemByName matches case-insensitively within one location. A nil barID is the store.
	FindInventoryItemByName(ctx context.Context, barID *string, name string) (*domain.InventoryItem, error)
	// ListInventoryItems lists one location's items. A nil barID is the store.
	ListInventoryItems(ctx context.Context, barID *string) ([]domain.InventoryItem, error)
	ListStockMovements(ctx context.Context, itemID string, before *domain.PageCursor, limit int) ([]domain.StockMovement, error)
}

// InventoryWriter defines write operations for inventory items.
type InventoryWriter interface {
	SaveInventoryItem(ctx context.Context, item domain.InventoryItem) error
	UpdateStockLevel(ctx context.Context, itemID string, newStock decimal.Decimal, updatedAt time.Time, updatedBy string) error
	SaveStockMovement(ctx context.Context, movement domain.StockMovement) error
}

// InventoryRepositoryFacade combines all inventory repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
