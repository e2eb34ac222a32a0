package services

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"google.golang.org/api/idtoken"
)

// AdminAuthSvcFacade authenticates administrators by email and password or Google ID token.
type AdminAuthSvcFacade interface {
	SignUp(ctx context.Context, email, password, fullName string) (*domain.AuthSession, error)
	SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error)
	// SignInWithGoogle only signs in administrators whose email already exists.
	SignInWithGoogle(ctx context.Context, idToken string) (*domain.AuthSession, error)
	// Refresh rotates the refresh token and issues a new access token.
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthSession, error)
	// SignOut revokes the stored refresh token.
	SignOut(ctx context.Context, userID string) error
	Me(ctx context.Context, userID string) (*domain.AdminIdentity, error)
}

// GoogleIDTokenValidator validates Google-issued ID tokens.
type GoogleIDTokenValidator interface {
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// StaffAuthSvc verifies staff credentials and issues a staff session.
type StaffAuthSvc interface {
	// Login fails with apperrors.ErrInvalidCredentials for unknown, inactive or mistyped
	// credentials alike.
	Login(ctx context.Context, username, password string) (*domain.StaffSession, error)
}
