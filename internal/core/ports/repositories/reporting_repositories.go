package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository aggregates completed orders for sales reports. Ranges are [from, to).
type ReportingRepository interface {
	SalesTotals(ctx context.Context, from, to time.Time) (orderCount int, grossRevenue decimal.Decimal, err error)
	DailySales(ctx context.Context, from, to time.Time) ([]domain.DailySales, error)
	TopItems(ctx context.Context, from, to time.Time, limit int) ([]domain.ItemSales, error)
}
