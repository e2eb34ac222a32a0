package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// AdminReader defines read operations for administrator accounts.
type AdminReader interface {
	// FindAdminByID returns the identity (profile and role joined) for userID.
	FindAdminByID(ctx context.Context, userID string) (*domain.AdminIdentity, error)
	// FindCredentialsByEmail looks an account up case-insensitively.
	FindCredentialsByEmail(ctx context.Context, email string) (*domain.AdminCredentials, error)
	FindCredentialsByID(ctx context.Context, userID string) (*domain.AdminCredentials, error)
}

// AdminWriter defines the three dependent writes that make up an administrator account.
type AdminWriter interface {
	SaveCredentials(ctx context.Context, creds domain.AdminCredentials) error
	SaveProfile(ctx context.Context, profile domain.AdminProfile) error
	// UpsertRole creates the role row if absent, otherwise replaces the role.
	UpsertRole(ctx context.Context, userID string, role domain.Role) error
	DeleteAdmin(ctx context.Context, userID string) error
}

// AdminTokenManager defines refresh token persistence.
type AdminTokenManager interface {
	UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// AdminRepositoryFacade combines all administrator repository interfaces.
type AdminRepositoryFacade interface {
	AdminReader
	AdminWriter
	AdminTokenManager
}
