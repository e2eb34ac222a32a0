package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/platform/config"
	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/google/uuid"
	"google.golang.org/api/idtoken"
)

// refreshSecretBytes is the entropy of the secret half of a refresh token.
const refreshSecretBytes = 32

// adminAuthService implements AdminAuthSvcFacade.
type adminAuthService struct {
	BaseService
	cfg       *config.Config
	adminRepo portsrepo.AdminRepositoryFacade
	tx        portsrepo.TransactionManager
	google    portssvc.GoogleIDTokenValidator
}

// NewAdminAuthService creates the administrator authentication service.
func NewAdminAuthService(
	cfg *config.Config,
	adminRepo portsrepo.AdminRepositoryFacade,
	tx portsrepo.TransactionManager,
	google portssvc.GoogleIDTokenValidator,
) portssvc.AdminAuthSvcFacade {
	return &adminAuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
		tx:        tx,
		google:    google,
	}
}

var _ portssvc.AdminAuthSvcFacade = (*adminAuthService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new administrator without a role and signs them in.
func (s *adminAuthService) SignUp(ctx context.Context, email, password, fullName string) (*domain.AuthSession, error) {
	email = normalizeEmail(email)

	_, err := s.adminRepo.FindCredentialsByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.NewAppError(http.StatusConflict, "An account with this email already exists", apperrors.ErrDuplicate)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing admin", slog.String("email", email))
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	userID := uuid.NewString()
	err = runInTx(ctx, s.tx, func(ctx context.Context) error {
		if err := s.adminRepo.SaveCredentials(ctx, domain.AdminCredentials{
			UserID:        userID,
			Email:         email,
			PasswordHash:  hash,
			CreatedAt:     now,
			LastUpdatedAt: now,
		}); err != nil {
			return err
		}
		return s.adminRepo.SaveProfile(ctx, domain.AdminProfile{UserID: userID, FullName: fullName, UpdatedAt: now})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create admin", slog.String("email", email))
		return nil, err
	}

	s.LogInfo(ctx, "Admin signed up", slog.String("user_id", userID))
	return s.issueSession(ctx, userID)
}

// SignIn verifies email and password.
func (s *adminAuthService) SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	creds, err := s.adminRepo.FindCredentialsByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to load admin credentials")
		return nil, err
	}
	if creds.PasswordHash == "" || !utils.CheckPasswordHash(password, creds.PasswordHash) {
		s.LogDebug(ctx, "Admin password mismatch", slog.String("user_id", creds.UserID))
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issueSession(ctx, creds.UserID)
}

// SignInWithGoogle signs in an existing administrator from a verified Google ID token.
func (s *adminAuthService) SignInWithGoogle(ctx context.Context, idToken string) (*domain.AuthSession, error) {
	if s.google == nil {
		return nil, apperrors.NewAppError(http.StatusServiceUnavailable, "Google sign-in is not configured", nil)
	}
	payload, err := s.google.ValidateGoogleIDToken(ctx, idToken)
	if err != nil {
		s.LogDebug(ctx, "Google ID token rejected", slog.String("error", err.Error()))
		return nil, apperrors.ErrInvalidCredentials
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return nil, apperrors.ErrInvalidCredentials
	}

	creds, err := s.adminRepo.FindCredentialsByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to load admin credentials for Google sign-in")
		return nil, err
	}
	return s.issueSession(ctx, creds.UserID)
}

// Refresh validates a "<userID>.<secret>" refresh token and rotates it.
func (s *adminAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthSession, error) {
	userID, secret, ok := utils.SplitRefreshToken(refreshToken)
	if !ok {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	creds, err := s.adminRepo.FindCredentialsByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		s.LogError(ctx, err, "Failed to load admin for refresh", slog.String("user_id", userID))
		return nil, err
	}
	if creds.RefreshTokenHash == "" || creds.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if s.now().After(*creds.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(secret, creds.RefreshTokenHash) {
		s.LogInfo(ctx, "Refresh token mismatch", slog.String("user_id", userID))
		return nil, apperrors.ErrInvalidRefreshToken
	}

	return s.issueSession(ctx, userID)
}

func (s *adminAuthService) SignOut(ctx context.Context, userID string) error {
	if err := s.adminRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

func (s *adminAuthService) Me(ctx context.Context, userID string) (*domain.AdminIdentity, error) {
	identity, err := s.adminRepo.FindAdminByID(ctx, userID)
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to load admin identity", slog.String("user_id", userID))
		return nil, err
	}
	return identity, nil
}

// issueSession signs an access token and stores the hash of a fresh refresh secret.
func (s *adminAuthService) issueSession(ctx context.Context, userID string) (*domain.AuthSession, error) {
	identity, err := s.adminRepo.FindAdminByID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load admin identity for session", slog.String("user_id", userID))
		return nil, err
	}

	now := s.now()
	accessToken, accessExpiry, err := utils.GenerateJWT(userID, domain.KindAdmin, identity.Role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	secret, err := utils.GenerateSecureRandomString(refreshSecretBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.adminRepo.UpdateRefreshToken(ctx, userID, utils.HashRefreshToken(secret), refreshExpiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", userID))
		return nil, err
	}

	return &domain.AuthSession{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     utils.ComposeRefreshToken(userID, secret),
		RefreshExpiresAt: refreshExpiry,
		Identity:         *identity,
	}, nil
}

// googleIDTokenValidator validates ID tokens against the configured OAuth client ID.
type googleIDTokenValidator struct {
	clientID string
}

// NewGoogleIDTokenValidator returns nil when clientID is empty, which disables Google sign-in.
func NewGoogleIDTokenValidator(clientID string) portssvc.GoogleIDTokenValidator {
	if clientID == "" {
		return nil
	}
	return &googleIDTokenValidator{clientID: clientID}
}

func (v *googleIDTokenValidator) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(ctx, idTokenString, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}

// staffAuthService implements StaffAuthSvc.
type staffAuthService struct {
	BaseService
	cfg       *config.Config
	staffRepo portsrepo.StaffReader
}

// NewStaffAuthService creates the staff credential verifier.
func NewStaffAuthService(cfg *config.Config, staffRepo portsrepo.StaffReader) portssvc.StaffAuthSvc {
	return &staffAuthService{cfg: cfg, staffRepo: staffRepo}
}

var _ portssvc.StaffAuthSvc = (*staffAuthService)(nil)

// dummyHash is compared against when the username is unknown so both failure paths cost a bcrypt round.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := utils.HashPassword("cherry-dining-no-such-user")
	return hash
})

func (s *staffAuthService) Login(ctx context.Context, username, password string) (*domain.StaffSession, error) {
	username = utils.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	staff, err := s.staffRepo.FindStaffByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.CheckPasswordHash(password, dummyHash())
			return nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up staff", slog.String("username", username))
		return nil, err
	}
	if !utils.CheckPasswordHash(password, staff.PasswordHash) || !staff.IsActive {
		s.LogInfo(ctx, "Staff login rejected", slog.String("staff_id", staff.ID), slog.Bool("active", staff.IsActive))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateJWT(staff.ID, domain.KindStaff, &staff.Role, s.cfg.JWTSecret, s.staffTTL(), s.cfg.JWTIssuer, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign staff token", slog.String("staff_id", staff.ID))
		return nil, fmt.Errorf("failed to sign staff token: %w", err)
	}

	s.LogInfo(ctx, "Staff logged in", slog.String("staff_id", staff.ID), slog.String("role", staff.Role.String()))
	return &domain.StaffSession{Staff: *staff, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *staffAuthService) staffTTL() time.Duration {
	if s.cfg.StaffSessionTTL > 0 {
		return s.cfg.StaffSessionTTL
	}
	return 12 * time.Hour
}
