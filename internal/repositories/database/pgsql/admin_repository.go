package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAdminRepository struct {
	BaseRepository
}

func newPgxAdminRepository(pool *pgxpool.Pool) portsrepo.AdminRepositoryFacade {
	return &PgxAdminRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AdminRepositoryFacade = (*PgxAdminRepository)(nil)

const adminCredentialsSelect = `
SELECT user_id, email, password_hash, COALESCE(refresh_token_hash, ''), refresh_token_expiry_time,
	created_at, last_updated_at
FROM admin_users
`

func (r *PgxAdminRepository) findCredentials(ctx context.Context, filter string, arg any) (*domain.AdminCredentials, error) {
	var c domain.AdminCredentials
	err := r.db(ctx).QueryRow(ctx, adminCredentialsSelect+filter, arg).Scan(
		&c.UserID,
		&c.Email,
		&c.PasswordHash,
		&c.RefreshTokenHash,
		&c.RefreshTokenExpiryTime,
		&c.CreatedAt,
		&c.LastUpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "find admin credentials")
	}
	return &c, nil
}

func (r *PgxAdminRepository) FindCredentialsByEmail(ctx context.Context, email string) (*domain.AdminCredentials, error) {
	return r.findCredentials(ctx, `WHERE lower(email) = lower($1)`, email)
}

func (r *PgxAdminRepository) FindCredentialsByID(ctx context.Context, userID string) (*domain.AdminCredentials, error) {
	return r.findCredentials(ctx, `WHERE user_id = $1`, userID)
}

func (r *PgxAdminRepository) FindAdminByID(ctx context.Context, userID string) (*domain.AdminIdentity, error) {
	query := `
		SELECT u.user_id, u.email, COALESCE(p.full_name, ''), p.avatar_url, ur.role, u.created_at
		FROM admin_users u
		LEFT JOIN admin_profiles p ON p.user_id = u.user_id
		LEFT JOIN user_roles ur ON ur.user_id = u.user_id
		WHERE u.user_id = $1;
	`
	var identity domain.AdminIdentity
	var role *string
	err := r.db(ctx).QueryRow(ctx, query, userID).Scan(
		&identity.ID,
		&identity.Email,
		&identity.FullName,
		&identity.AvatarURL,
		&role,
		&identity.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "find admin "+userID)
	}
	if role != nil {
		parsed, err := domain.ParseRole(*role)
		if err != nil {
			return nil, fmt.Errorf("admin %s has unreadable role: %w", userID, err)
		}
		identity.Role = &parsed
	}
	return &identity, nil
}

func (r *PgxAdminRepository) SaveCredentials(ctx context.Context, creds domain.AdminCredentials) error {
	query := `
		INSERT INTO admin_users (user_id, email, password_hash, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		creds.UserID,
		creds.Email,
		creds.PasswordHash,
		creds.CreatedAt,
		creds.LastUpdatedAt,
	)
	return mapError(err, "save admin "+creds.UserID)
}

// SaveProfile upserts so that an update with no existing profile row still succeeds.
func (r *PgxAdminRepository) SaveProfile(ctx context.Context, profile domain.AdminProfile) error {
	query := `
		INSERT INTO admin_profiles (user_id, full_name, avatar_url, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.db(ctx).Exec(ctx, query, profile.UserID, profile.FullName, profile.AvatarURL, profile.UpdatedAt)
	return mapError(err, "save admin profile "+profile.UserID)
}

func (r *PgxAdminRepository) UpsertRole(ctx context.Context, userID string, role domain.Role) error {
	query := `
		INSERT INTO user_roles (user_id, role, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.db(ctx).Exec(ctx, query, userID, string(role))
	return mapError(err, "save role for "+userID)
}

// DeleteAdmin removes the account. Profile and role rows cascade.
func (r *PgxAdminRepository) DeleteAdmin(ctx context.Context, userID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM admin_users WHERE user_id = $1;`, userID)
	if err != nil {
		return mapError(err, "delete admin "+userID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("admin %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAdminRepository) UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE admin_users
		SET refresh_token_hash = $1, refresh_token_expiry_time = $2, last_updated_at = now()
		WHERE user_id = $3;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, refreshTokenHash, expiresAt, userID)
	if err != nil {
		return mapError(err, "update refresh token")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("admin %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAdminRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
		UPDATE admin_users
		SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL, last_updated_at = now()
		WHERE user_id = $1;
	`
	_, err := r.db(ctx).Exec(ctx, query, userID)
	return mapError(err, "clear refresh token")
}
