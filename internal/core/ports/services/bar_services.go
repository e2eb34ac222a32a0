package services

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/dto"
)

type BarSvcFacade interface {
	ListBars(ctx context.Context, includeInactive bool) ([]domain.Bar, error)
	CreateBar(ctx context.Context, req dto.CreateBarRequest, actorID string) (*domain.Bar, error)
}

// AssignmentSvcFacade maps cashiers and other floor identities to bars.
type AssignmentSvcFacade interface {
	// Assign replaces the identity's active assignment with barID.
	Assign(ctx context.Context, identityID, barID, assignedBy string) (*domain.CashierBarAssignment, error)
	// GetActiveAssignment returns apperrors.ErrNotFound when the identity is not assigned.
	GetActiveAssignment(ctx context.Context, identityID string) (*domain.CashierBarAssignment, error)
	ListActiveAssignments(ctx context.Context) ([]domain.CashierBarAssignment, error)
}
