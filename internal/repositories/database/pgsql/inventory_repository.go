package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const inventorySelect = `
SELECT item_id, bar_id, name, unit, current_stock, min_stock_level,
	created_at, created_by, last_updated_at, last_updated_by
FROM inventory_items
`

func scanInventoryItem(row pgx.CollectableRow) (domain.InventoryItem, error) {
	var i domain.InventoryItem
	err := row.Scan(
		&i.ItemID,
		&i.BarID,
		&i.Name,
		&i.Unit,
		&i.CurrentStock,
		&i.MinStockLevel,
		&i.CreatedAt,
		&i.CreatedBy,
		&i.LastUpdatedAt,
		&i.LastUpdatedBy,
	)
	return i, err
}

func (r *PgxInventoryRepository) findOne(ctx context.Context, query string, args ...any) (*domain.InventoryItem, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query inventory item")
	}
	item, err := pgx.CollectExactlyOneRow(rows, scanInventoryItem)
	if err != nil {
		return nil, mapError(err, "find inventory item")
	}
	return &item, nil
}

func (r *PgxInventoryRepository) FindInventoryItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	return r.findOne(ctx, inventorySelect+`WHERE item_id = $1`, itemID)
}

func (r *PgxInventoryRepository) FindInventoryItemForUpdate(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	return r.findOne(ctx, inventorySelect+`WHERE item_id = $1 FOR UPDATE`, itemID)
}

func (r *PgxInventoryRepository) FindInventoryItemByName(ctx context.Context, barID *string, name string) (*domain.InventoryItem, error) {
	return r.findOne(ctx, inventorySelect+`WHERE bar_id IS NOT DISTINCT FROM $1::uuid AND lower(name) = lower($2)`, barID, name)
}

func (r *PgxInventoryRepository) ListInventoryItems(ctx context.Context, barID *string) ([]domain.InventoryItem, error) {
	rows, err := r.db(ctx).Query(ctx, inventorySelect+`WHERE bar_id IS NOT DISTINCT FROM $1::uuid ORDER BY name`, barID)
	if err != nil {
		return nil, mapError(err, "list inventory")
	}
	items, err := pgx.CollectRows(rows, scanInventoryItem)
	if err != nil {
		return nil, mapError(err, "collect inventory rows")
	}
	return items, nil
}

// ListStockMovements returns an item's movements newest first, starting after the before cursor.
func (r *PgxInventoryRepository) ListStockMovements(ctx context.Context, itemID string, before *domain.PageCursor, limit int) ([]domain.StockMovement, error) {
	query := `
		SELECT movement_id, item_id, movement_type, previous_stock, quantity, new_stock, notes, created_by, created_at
		FROM stock_movements
		WHERE item_id = $1
	`
	args := []any{itemID}
	if before != nil {
		query += ` AND (created_at, movement_id) < ($2, $3::uuid)`
		args = append(args, before.CreatedAt, before.ID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, movement_id DESC LIMIT %d`, limit)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list stock movements")
	}
	movements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StockMovement, error) {
		var m domain.StockMovement
		var movementType string
		err := row.Scan(
			&m.MovementID,
			&m.ItemID,
			&movementType,
			&m.PreviousStock,
			&m.Quantity,
			&m.NewStock,
			&m.Notes,
			&m.CreatedBy,
			&m.CreatedAt,
		)
		m.MovementType = domain.MovementType(movementType)
		return m, err
	})
	if err != nil {
		return nil, mapError(err, "collect stock movement rows")
	}
	return movements, nil
}

func (r *PgxInventoryRepository) SaveInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			item_id, bar_id, name, unit, current_stock, min_stock_level,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		item.ItemID,
		item.BarID,
		item.Name,
		item.Unit,
		item.CurrentStock,
		item.MinStockLevel,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	return mapError(err, "save inventory item "+item.Name)
}

func (r *PgxInventoryRepository) UpdateStockLevel(ctx context.Context, itemID string, newStock decimal.Decimal, updatedAt time.Time, updatedBy string) error {
	query := `
		UPDATE inventory_items
		SET current_stock = $1, last_updated_at = $2, last_updated_by = $3
		WHERE item_id = $4;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, newStock, updatedAt, updatedBy, itemID)
	if err != nil {
		return mapError(err, "update stock level")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("inventory item %s: %w", itemID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxInventoryRepository) SaveStockMovement(ctx context.Context, m domain.StockMovement) error {
	query := `
		INSERT INTO stock_movements (
			movement_id, item_id, movement_type, previous_stock, quantity, new_stock, notes, created_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.MovementID,
		m.ItemID,
		string(m.MovementType),
		m.PreviousStock,
		m.Quantity,
		m.NewStock,
		m.Notes,
		m.CreatedBy,
		m.CreatedAt,
	)
	return mapError(err, "save stock movement")
}
