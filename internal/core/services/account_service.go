package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/google/uuid"
)

// accountAdminService implements AccountAdminSvc.
type accountAdminService struct {
	BaseService
	adminRepo portsrepo.AdminRepositoryFacade
}

// NewAccountAdminService creates the privileged account management service.
func NewAccountAdminService(adminRepo portsrepo.AdminRepositoryFacade) portssvc.AccountAdminSvc {
	return &accountAdminService{adminRepo: adminRepo}
}

var _ portssvc.AccountAdminSvc = (*accountAdminService)(nil)

func (s *accountAdminService) ExecuteAccountAction(ctx context.Context, req dto.AccountActionRequest, actorID string) (*dto.AccountActionResponse, error) {
	var role *domain.Role
	if req.Role != nil {
		parsed, err := domain.ParseRole(*req.Role)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		role = &parsed
	}

	switch req.Action {
	case dto.AccountActionCreate:
		return s.createAccount(ctx, req, role)
	case dto.AccountActionUpdate:
		return s.updateAccount(ctx, req, role)
	case dto.AccountActionDelete:
		return s.deleteAccount(ctx, req.UserID, actorID)
	default:
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown action %q", req.Action))
	}
}

// createAccount writes the credentials, then the profile, then the role. Only the first
// write is fatal; later failures are returned as warnings and the account stays.
func (s *accountAdminService) createAccount(ctx context.Context, req dto.AccountActionRequest, role *domain.Role) (*dto.AccountActionResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.NewValidationFailedError("email and password are required to create an account")
	}

	if _, err := s.adminRepo.FindCredentialsByEmail(ctx, email); err == nil {
		return nil, apperrors.NewAppError(http.StatusConflict, "An account with this email already exists", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing admin", slog.String("email", email))
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	userID := uuid.NewString()
	if err := s.adminRepo.SaveCredentials(ctx, domain.AdminCredentials{
		UserID:        userID,
		Email:         email,
		PasswordHash:  hash,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}); err != nil {
		s.LogError(ctx, err, "Failed to create admin account", slog.String("email", email))
		return nil, err
	}

	resp := &dto.AccountActionResponse{Success: true}

	fullName := ""
	if req.FullName != nil {
		fullName = *req.FullName
	}
	if err := s.adminRepo.SaveProfile(ctx, domain.AdminProfile{UserID: userID, FullName: fullName, AvatarURL: req.AvatarURL, UpdatedAt: now}); err != nil {
		s.LogError(ctx, err, "Failed to create admin profile", slog.String("user_id", userID))
		resp.Warnings = append(resp.Warnings, "profile could not be created: "+err.Error())
	}
	if role != nil {
		if err := s.adminRepo.UpsertRole(ctx, userID, *role); err != nil {
			s.LogError(ctx, err, "Failed to assign admin role", slog.String("user_id", userID))
			resp.Warnings = append(resp.Warnings, "role could not be assigned: "+err.Error())
		}
	}

	identity, err := s.adminRepo.FindAdminByID(ctx, userID)
	if err != nil {
		identity = &domain.AdminIdentity{ID: userID, Email: email, FullName: fullName, CreatedAt: now}
	}
	user := dto.ToAdminIdentityResponse(identity)
	resp.User = &user

	s.LogInfo(ctx, "Admin account created", slog.String("user_id", userID), slog.Int("warnings", len(resp.Warnings)))
	return resp, nil
}

// updateAccount edits the profile and/or the role. The role row is created when absent.
func (s *accountAdminService) updateAccount(ctx context.Context, req dto.AccountActionRequest, role *domain.Role) (*dto.AccountActionResponse, error) {
	if req.UserID == "" {
		return nil, apperrors.NewValidationFailedError("userId is required")
	}

	identity, err := s.adminRepo.FindAdminByID(ctx, req.UserID)
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to load admin for update", slog.String("user_id", req.UserID))
		return nil, err
	}

	if req.FullName != nil || req.AvatarURL != nil {
		profile := domain.AdminProfile{
			UserID:    identity.ID,
			FullName:  identity.FullName,
			AvatarURL: identity.AvatarURL,
			UpdatedAt: s.now(),
		}
		if req.FullName != nil {
			profile.FullName = *req.FullName
		}
		if req.AvatarURL != nil {
			profile.AvatarURL = req.AvatarURL
		}
		if err := s.adminRepo.SaveProfile(ctx, profile); err != nil {
			s.LogError(ctx, err, "Failed to update admin profile", slog.String("user_id", identity.ID))
			return nil, err
		}
		identity.FullName = profile.FullName
		identity.AvatarURL = profile.AvatarURL
	}

	if role != nil {
		if err := s.adminRepo.UpsertRole(ctx, identity.ID, *role); err != nil {
			s.LogError(ctx, err, "Failed to update admin role", slog.String("user_id", identity.ID))
			return nil, err
		}
		identity.Role = role
	}

	s.LogInfo(ctx, "Admin account updated", slog.String("user_id", identity.ID))
	user := dto.ToAdminIdentityResponse(identity)
	return &dto.AccountActionResponse{Success: true, User: &user}, nil
}

func (s *accountAdminService) deleteAccount(ctx context.Context, userID, actorID string) (*dto.AccountActionResponse, error) {
	if userID == "" {
		return nil, apperrors.NewValidationFailedError("userId is required")
	}
	if userID == actorID {
		return nil, apperrors.NewForbiddenError("You cannot delete your own account")
	}
	if err := s.adminRepo.DeleteAdmin(ctx, userID); err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to delete admin", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Admin account deleted", slog.String("user_id", userID))
	return &dto.AccountActionResponse{Success: true}, nil
}
