package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `
order_id, order_number, order_type, table_number, status, notes, total, version,
created_at, created_by, last_updated_at, last_updated_by
`

func scanOrder(row pgx.CollectableRow) (domain.Order, error) {
	var o domain.Order
	var orderType, status string
	err := row.Scan(
		&o.OrderID,
		&o.OrderNumber,
		&orderType,
		&o.TableNumber,
		&status,
		&o.Notes,
		&o.Total,
		&o.Version,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	o.OrderType = domain.OrderType(orderType)
	o.Status = domain.OrderStatus(status)
	return o, err
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, mapError(err, "query order")
	}
	order, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		return nil, mapError(err, "find order "+orderID)
	}

	orders := []domain.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	statuses := make([]string, len(filter.Statuses))
	for i, s := range filter.Statuses {
		statuses[i] = string(s)
	}
	var orderType *string
	if filter.OrderType != nil {
		t := string(*filter.OrderType)
		orderType = &t
	}

	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE (cardinality($1::text[]) = 0 OR status = ANY($1))
			AND ($2::text IS NULL OR order_type = $2)
			AND ($3::timestamptz IS NULL OR created_at >= $3)
		ORDER BY created_at DESC
		LIMIT $4`
	rows, err := r.db(ctx).Query(ctx, query, statuses, orderType, filter.Since, filter.Limit)
	if err != nil {
		return nil, mapError(err, "list orders")
	}
	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, mapError(err, "collect order rows")
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the items of all orders in one query.
func (r *PgxOrderRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].OrderID
		index[orders[i].OrderID] = i
		orders[i].Items = []domain.OrderItem{}
	}

	query := `
		SELECT order_item_id, order_id, menu_item_id, name, quantity, unit_price, notes, position
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, position
	`
	rows, err := r.db(ctx).Query(ctx, query, ids)
	if err != nil {
		return mapError(err, "query order items")
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderItem, error) {
		var it domain.OrderItem
		err := row.Scan(&it.OrderItemID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Quantity, &it.UnitPrice, &it.Notes, &it.Position)
		return it, err
	})
	if err != nil {
		return mapError(err, "collect order item rows")
	}
	for _, it := range items {
		i := index[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return nil
}

// SaveOrder inserts the order and its items in one transaction.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order *domain.Order) error {
	return r.RunInTx(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO orders (
				order_id, order_type, table_number, status, notes, total, version,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING order_number;
		`
		err := r.db(ctx).QueryRow(ctx, query,
			order.OrderID,
			string(order.OrderType),
			order.TableNumber,
			string(order.Status),
			order.Notes,
			order.Total,
			order.Version,
			order.CreatedAt,
			order.CreatedBy,
			order.LastUpdatedAt,
			order.LastUpdatedBy,
		).Scan(&order.OrderNumber)
		if err != nil {
			return mapError(err, "save order "+order.OrderID)
		}

		batch := &pgx.Batch{}
		itemQuery := `
			INSERT INTO order_items (order_item_id, order_id, menu_item_id, name, quantity, unit_price, notes, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		for _, it := range order.Items {
			batch.Queue(itemQuery, it.OrderItemID, order.OrderID, it.MenuItemID, it.Name, it.Quantity, it.UnitPrice, it.Notes, it.Position)
		}
		if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
			return mapError(err, "save order items")
		}
		return nil
	})
}

func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, expectedVersion *int, updatedAt time.Time, updatedBy string) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE order_id = $4 AND status = $5 AND ($6::int IS NULL OR version = $6)
		RETURNING ` + orderColumns
	rows, err := r.db(ctx).Query(ctx, query, string(to), updatedAt, updatedBy, orderID, string(from), expectedVersion)
	if err != nil {
		return nil, mapError(err, "update order status")
	}
	order, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(http.StatusConflict,
				fmt.Sprintf("order %s changed while it was being updated", orderID), apperrors.ErrConflict)
		}
		return nil, mapError(err, "update order status")
	}

	orders := []domain.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}
