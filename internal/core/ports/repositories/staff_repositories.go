package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// StaffReader defines read operations for staff identities.
type StaffReader interface {
	FindStaffByID(ctx context.Context, staffID string) (*domain.StaffIdentity, error)
	// FindStaffByUsername matches case-insensitively, including inactive accounts.
	FindStaffByUsername(ctx context.Context, username string) (*domain.StaffIdentity, error)
	// FindStaffByEmail matches case-insensitively, including inactive accounts.
	FindStaffByEmail(ctx context.Context, email string) (*domain.StaffIdentity, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffIdentity, error)
}

// StaffWriter defines write operations for staff identities.
type StaffWriter interface {
	SaveStaff(ctx context.Context, staff domain.StaffIdentity) error
	UpdateStaff(ctx context.Context, staff domain.StaffIdentity) error
	UpdateStaffPassword(ctx context.Context, staffID, passwordHash string, updatedAt time.Time, updatedBy string) error
}

// StaffRepositoryFacade combines all staff repository interfaces.
type StaffRepositoryFacade interface {
	StaffReader
	StaffWriter
}
