package services

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/dto"
)

// StaffReaderSvc defines read operations for staff identities
type StaffReaderSvc interface {
	GetStaff(ctx context.Context, staffID string) (*domain.StaffIdentity, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffIdentity, error)
}

// StaffWriterSvc defines write operations for staff identities
type StaffWriterSvc interface {
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest, actorID string) (*domain.StaffIdentity, error)
	UpdateStaff(ctx context.Context, staffID string, req dto.UpdateStaffRequest, actorID string) (*domain.StaffIdentity, error)
	ResetPassword(ctx context.Context, staffID, newPassword, actorID string) error
}

// StaffImporterSvc bulk-creates staff from legacy records.
type StaffImporterSvc interface {
	// ImportLegacyStaff never aborts the batch; each record gets its own result.
	ImportLegacyStaff(ctx context.Context, records []domain.LegacyStaffRecord, actorID string) []domain.StaffImportResult
}

// StaffSvcFacade combines all staff-related service interfaces
type StaffSvcFacade interface {
	StaffReaderSvc
	StaffWriterSvc
	StaffImporterSvc
}
