package services

import (
	"context"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// ReportingSvc aggregates completed orders.
type ReportingSvc interface {
	// SalesSummary covers [from, to).
	SalesSummary(ctx context.Context, from, to time.Time, topN int) (*domain.SalesSummary, error)
}
