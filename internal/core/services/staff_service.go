package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/google/uuid"
)

const (
	minStaffPasswordLength  = 6
	temporaryPasswordLength = 12
)

// staffService implements StaffSvcFacade.
type staffService struct {
	BaseService
	staffRepo portsrepo.StaffRepositoryFacade
}

// NewStaffService creates the staff administration service.
func NewStaffService(staffRepo portsrepo.StaffRepositoryFacade) portssvc.StaffSvcFacade {
	return &staffService{staffRepo: staffRepo}
}

var _ portssvc.StaffSvcFacade = (*staffService)(nil)

func (s *staffService) GetStaff(ctx context.Context, staffID string) (*domain.StaffIdentity, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to find staff", slog.String("staff_id", staffID))
		return nil, err
	}
	return staff, nil
}

func (s *staffService) ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffIdentity, error) {
	staff, err := s.staffRepo.ListStaff(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list staff")
		return nil, err
	}
	if staff == nil {
		return []domain.StaffIdentity{}, nil
	}
	return staff, nil
}

func (s *staffService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest, actorID string) (*domain.StaffIdentity, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if len(req.Password) < minStaffPasswordLength {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("password must be at least %d characters", minStaffPasswordLength))
	}

	staff, err := s.createStaff(ctx, req.Username, req.FullName, req.Email, role, req.Password, actorID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Staff created", slog.String("staff_id", staff.ID), slog.String("role", staff.Role.String()))
	return staff, nil
}

// createStaff checks the username and email are free, hashes the password and persists the row.
func (s *staffService) createStaff(ctx context.Context, username, fullName string, email *string, role domain.Role, password, actorID string) (*domain.StaffIdentity, error) {
	username = utils.NormalizeUsername(username)
	if username == "" {
		return nil, apperrors.NewValidationFailedError("username is required")
	}

	existing, err := s.staffRepo.FindStaffByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.NewAppError(http.StatusConflict, fmt.Sprintf("username %q is already taken", username), apperrors.ErrDuplicate)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check username", slog.String("username", username))
		return nil, err
	}

	if email != nil && *email != "" {
		taken, err := s.staffRepo.FindStaffByEmail(ctx, *email)
		if err == nil && taken != nil {
			return nil, apperrors.NewAppError(http.StatusConflict, fmt.Sprintf("email %q is already in use", *email), apperrors.ErrDuplicate)
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check staff email", slog.String("username", username))
			return nil, err
		}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := domain.StaffIdentity{
		ID:           uuid.NewString(),
		Username:     username,
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		Role:         role,
		IsActive:     true,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(s.now(), actorID),
	}
	if err := s.staffRepo.SaveStaff(ctx, staff); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save staff", slog.String("username", username))
		}
		return nil, err
	}
	return &staff, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, staffID string, req dto.UpdateStaffRequest, actorID string) (*domain.StaffIdentity, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to find staff for update", slog.String("staff_id", staffID))
		return nil, err
	}

	if req.FullName != nil {
		staff.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		staff.Email = req.Email
		if *req.Email == "" {
			staff.Email = nil
		}
	}
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		staff.Role = role
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	staff.LastUpdatedAt = s.now()
	staff.LastUpdatedBy = actorID

	if err := s.staffRepo.UpdateStaff(ctx, *staff); err != nil {
		s.LogError(ctx, err, "Failed to update staff", slog.String("staff_id", staffID))
		return nil, err
	}

	s.LogInfo(ctx, "Staff updated", slog.String("staff_id", staffID))
	return staff, nil
}

// ResetPassword replaces the staff member's password hash.
func (s *staffService) ResetPassword(ctx context.Context, staffID, newPassword, actorID string) error {
	if len(newPassword) < minStaffPasswordLength {
		return apperrors.NewValidationFailedError(fmt.Sprintf("password must be at least %d characters", minStaffPasswordLength))
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.staffRepo.UpdateStaffPassword(ctx, staffID, hash, s.now(), actorID); err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to reset staff password", slog.String("staff_id", staffID))
		return err
	}
	s.LogInfo(ctx, "Staff password reset", slog.String("staff_id", staffID))
	return nil
}

// ImportLegacyStaff creates one staff account per record with a random temporary password.
// A missing or invalid email is replaced with a placeholder address.
func (s *staffService) ImportLegacyStaff(ctx context.Context, records []domain.LegacyStaffRecord, actorID string) []domain.StaffImportResult {
	results := make([]domain.StaffImportResult, 0, len(records))
	for _, record := range records {
		results = append(results, s.importOne(ctx, record, actorID))
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	s.LogInfo(ctx, "Legacy staff import finished",
		slog.Int("records", len(records)),
		slog.Int("failed", failed))
	return results
}

func (s *staffService) importOne(ctx context.Context, record domain.LegacyStaffRecord, actorID string) domain.StaffImportResult {
	result := domain.StaffImportResult{Username: utils.NormalizeUsername(record.Username)}

	role, err := domain.ParseRole(legacyRoleName(record.Role))
	if err != nil {
		result.Error = err.Error()
		return result
	}

	email := utils.PlaceholderEmail(record.Username)
	if record.Email != nil && utils.ValidEmail(strings.TrimSpace(*record.Email)) {
		email = strings.ToLower(strings.TrimSpace(*record.Email))
	}

	password, err := utils.GenerateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		result.Error = "failed to generate temporary password"
		return result
	}

	fullName := record.FullName
	if strings.TrimSpace(fullName) == "" {
		fullName = record.Username
	}

	staff, err := s.createStaff(ctx, record.Username, fullName, &email, role, password, actorID)
	if err != nil {
		result.Error = importFailureReason(err)
		return result
	}

	result.Success = true
	result.StaffID = staff.ID
	result.Email = staff.Email
	result.TemporaryPassword = password
	return result
}

// legacyRoleName maps "Bar Staff" or "BAR-STAFF" to "bar_staff".
func legacyRoleName(raw string) string {
	r := strings.ToLower(strings.TrimSpace(raw))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(r)
}

func importFailureReason(err error) string {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr.Message
	case errors.Is(err, apperrors.ErrDuplicate):
		return "username or email already in use"
	default:
		return err.Error()
	}
}
