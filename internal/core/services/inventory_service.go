package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultMovementListLimit = 50

// inventoryService implements InventorySvcFacade.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryFacade
	tx            portsrepo.TransactionManager
}

// NewInventoryService creates the inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, tx portsrepo.TransactionManager) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo, tx: tx}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// ListInventory lists the items at barID, or at the central store when barID is nil.
func (s *inventoryService) ListInventory(ctx context.Context, barID *string, lowOnly bool) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListInventoryItems(ctx, barID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list inventory")
		return nil, err
	}
	out := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if lowOnly && !item.IsLowStock() && !item.IsOutOfStock() {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, itemID string, before *domain.PageCursor, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = defaultMovementListLimit
	}
	movements, err := s.inventoryRepo.ListStockMovements(ctx, itemID, before, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock movements", slog.String("item_id", itemID))
		return nil, err
	}
	if movements == nil {
		return []domain.StockMovement{}, nil
	}
	return movements, nil
}

func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, actorID string) (*domain.InventoryItem, error) {
	if req.CurrentStock.IsNegative() || req.MinStockLevel.IsNegative() {
		return nil, apperrors.NewValidationFailedError("stock levels cannot be negative")
	}
	item := domain.InventoryItem{
		ItemID:        uuid.NewString(),
		BarID:         req.BarID,
		Name:          strings.TrimSpace(req.Name),
		Unit:          strings.TrimSpace(req.Unit),
		CurrentStock:  req.CurrentStock,
		MinStockLevel: req.MinStockLevel,
		AuditFields:   domain.NewAuditFields(s.now(), actorID),
	}
	if err := s.inventoryRepo.SaveInventoryItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to create inventory item", slog.String("name", item.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Inventory item created", slog.String("item_id", item.ItemID))
	return &item, nil
}

// ApplyMovement locks the item row, computes the new level and records the movement.
func (s *inventoryService) ApplyMovement(ctx context.Context, itemID string, req dto.StockMovementRequest, actorID string) (*domain.StockMovement, *domain.InventoryItem, error) {
	movementType := domain.MovementType(req.MovementType)
	if !movementType.IsValid() {
		return nil, nil, apperrors.NewValidationFailedError("movement type must be in, out or adjustment")
	}

	var movement *domain.StockMovement
	var item *domain.InventoryItem
	err := runInTx(ctx, s.tx, func(ctx context.Context) error {
		var err error
		movement, item, err = s.applyLocked(ctx, itemID, movementType, req.Quantity, req.Notes, actorID)
		return err
	})
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to apply stock movement", slog.String("item_id", itemID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Stock movement applied",
		slog.String("item_id", itemID),
		slog.String("type", string(movementType)),
		slog.String("new_stock", movement.NewStock.String()))
	return movement, item, nil
}

// applyLocked must run inside a transaction.
func (s *inventoryService) applyLocked(ctx context.Context, itemID string, movementType domain.MovementType, quantity decimal.Decimal, notes *string, actorID string) (*domain.StockMovement, *domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindInventoryItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	newStock, err := domain.ApplyMovement(item.CurrentStock, quantity, movementType)
	if err != nil {
		return nil, nil, apperrors.NewValidationFailedError(err.Error())
	}

	now := s.now()
	if err := s.inventoryRepo.UpdateStockLevel(ctx, itemID, newStock, now, actorID); err != nil {
		return nil, nil, err
	}
	movement := domain.StockMovement{
		MovementID:    uuid.NewString(),
		ItemID:        itemID,
		MovementType:  movementType,
		PreviousStock: item.CurrentStock,
		Quantity:      quantity,
		NewStock:      newStock,
		Notes:         notes,
		CreatedBy:     actorID,
		CreatedAt:     now,
	}
	if err := s.inventoryRepo.SaveStockMovement(ctx, movement); err != nil {
		return nil, nil, err
	}

	item.CurrentStock = newStock
	item.LastUpdatedAt = now
	item.LastUpdatedBy = actorID
	return &movement, item, nil
}
