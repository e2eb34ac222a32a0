package services

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/dto"
)

// InventoryReaderSvc defines read operations for stock
type InventoryReaderSvc interface {
	ListInventory(ctx context.Context, barID *string, lowOnly bool) ([]domain.InventoryItem, error)
	ListMovements(ctx context.Context, itemID string, before *domain.PageCursor, limit int) ([]domain.StockMovement, error)
}

// InventoryWriterSvc defines write operations for stock
type InventoryWriterSvc interface {
	CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, actorID string) (*domain.InventoryItem, error)
	// ApplyMovement updates the stock level and records the movement atomically.
	ApplyMovement(ctx context.Context, itemID string, req dto.StockMovementRequest, actorID string) (*domain.StockMovement, *domain.InventoryItem, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
}
