package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SalesTotals counts completed orders and sums their totals in [from, to).
func (r *reportingRepository) SalesTotals(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2
	`
	var count int
	var revenue decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, query, from, to).Scan(&count, &revenue); err != nil {
		return 0, decimal.Zero, mapError(err, "query sales totals")
	}
	return count, revenue, nil
}

// DailySales buckets completed orders by UTC day.
func (r *reportingRepository) DailySales(ctx context.Context, from, to time.Time) ([]domain.DailySales, error) {
	query := `
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db(ctx).Query(ctx, query, from, to)
	if err != nil {
		return nil, mapError(err, "query daily sales")
	}
	days, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DailySales, error) {
		var d domain.DailySales
		err := row.Scan(&d.Day, &d.OrderCount, &d.Revenue)
		d.Day = d.Day.UTC()
		return d, err
	})
	if err != nil {
		return nil, mapError(err, "collect daily sales rows")
	}
	return days, nil
}

func (r *reportingRepository) TopItems(ctx context.Context, from, to time.Time, limit int) ([]domain.ItemSales, error) {
	query := `
		SELECT oi.name, SUM(oi.quantity)::int, SUM(oi.quantity * oi.unit_price)
		FROM order_items oi
		JOIN orders o ON o.order_id = oi.order_id
		WHERE o.status = 'completed' AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY oi.name
		ORDER BY 3 DESC, 1
		LIMIT $3
	`
	rows, err := r.db(ctx).Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, mapError(err, "query top items")
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ItemSales, error) {
		var it domain.ItemSales
		err := row.Scan(&it.Name, &it.Quantity, &it.Revenue)
		return it, err
	})
	if err != nil {
		return nil, mapError(err, "collect top item rows")
	}
	return items, nil
}
