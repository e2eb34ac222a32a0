package repositories

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// BarReader defines read operations for bars.
type BarReader interface {
	FindBarByID(ctx context.Context, barID string) (*domain.Bar, error)
	ListBars(ctx context.Context, includeInactive bool) ([]domain.Bar, error)
}

// BarWriter defines write operations for bars.
type BarWriter interface {
	SaveBar(ctx context.Context, bar domain.Bar) error
}

// AssignmentManager defines cashier-bar assignment persistence.
type AssignmentManager interface {
	// DeactivateAssignments marks every active assignment of identityID inactive.
	DeactivateAssignments(ctx context.Context, identityID string) error
	// UpsertActiveAssignment inserts or reactivates the (identity, bar) row.
	UpsertActiveAssignment(ctx context.Context, assignment domain.CashierBarAssignment) error
	FindActiveAssignment(ctx context.Context, identityID string) (*domain.CashierBarAssignment, error)
	ListActiveAssignments(ctx context.Context) ([]domain.CashierBarAssignment, error)
}

// BarRepositoryFacade combines bar and assignment repository interfaces.
type BarRepositoryFacade interface {
	BarReader
	BarWriter
	AssignmentManager
}
