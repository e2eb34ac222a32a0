package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
)

const maxReportRange = 366 * 24 * time.Hour

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the sales reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvc {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) SalesSummary(ctx context.Context, from, to time.Time, topN int) (*domain.SalesSummary, error) {
	if !to.After(from) {
		return nil, apperrors.NewValidationFailedError("report end must be after its start")
	}
	if to.Sub(from) > maxReportRange {
		return nil, apperrors.NewValidationFailedError("report range cannot exceed one year")
	}

	count, revenue, err := s.reportingRepo.SalesTotals(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute sales totals")
		return nil, err
	}
	daily, err := s.reportingRepo.DailySales(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute daily sales")
		return nil, err
	}
	top, err := s.reportingRepo.TopItems(ctx, from, to, topN)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute top items")
		return nil, err
	}

	if daily == nil {
		daily = []domain.DailySales{}
	}
	if top == nil {
		top = []domain.ItemSales{}
	}

	s.LogDebug(ctx, "Sales summary computed",
		slog.Time("from", from),
		slog.Time("to", to),
		slog.Int("orders", count))
	return &domain.SalesSummary{
		From:         from,
		To:           to,
		OrderCount:   count,
		GrossRevenue: revenue,
		Daily:        daily,
		TopItems:     top,
	}, nil
}
