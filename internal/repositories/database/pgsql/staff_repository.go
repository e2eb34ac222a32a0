package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStaffRepository struct {
	BaseRepository
}

func newPgxStaffRepository(pool *pgxpool.Pool) portsrepo.StaffRepositoryFacade {
	return &PgxStaffRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StaffRepositoryFacade = (*PgxStaffRepository)(nil)

const staffSelect = `
SELECT staff_id, username, full_name, email, role, is_active, password_hash,
	created_at, created_by, last_updated_at, last_updated_by
FROM staff
`

// mapStaffWriteError names the unique key a staff write collided with.
func mapStaffWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "staff_email_key":
			return apperrors.NewAppError(http.StatusConflict, "email already in use", err)
		case "staff_username_key":
			return apperrors.NewAppError(http.StatusConflict, "username already taken", err)
		}
	}
	return mapError(err, what)
}

func scanStaff(row pgx.CollectableRow) (domain.StaffIdentity, error) {
	var s domain.StaffIdentity
	var role string
	err := row.Scan(
		&s.ID,
		&s.Username,
		&s.FullName,
		&s.Email,
		&role,
		&s.IsActive,
		&s.PasswordHash,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		return s, err
	}
	s.Role = domain.Role(role)
	return s, nil
}

func (r *PgxStaffRepository) findOne(ctx context.Context, filter string, arg any) (*domain.StaffIdentity, error) {
	rows, err := r.db(ctx).Query(ctx, staffSelect+filter, arg)
	if err != nil {
		return nil, mapError(err, "query staff")
	}
	staff, err := pgx.CollectExactlyOneRow(rows, scanStaff)
	if err != nil {
		return nil, mapError(err, "find staff")
	}
	return &staff, nil
}

func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.StaffIdentity, error) {
	return r.findOne(ctx, `WHERE staff_id = $1`, staffID)
}

func (r *PgxStaffRepository) FindStaffByUsername(ctx context.Context, username string) (*domain.StaffIdentity, error) {
	return r.findOne(ctx, `WHERE lower(username) = lower($1)`, username)
}

func (r *PgxStaffRepository) FindStaffByEmail(ctx context.Context, email string) (*domain.StaffIdentity, error) {
	return r.findOne(ctx, `WHERE lower(email) = lower($1)`, email)
}

func (r *PgxStaffRepository) ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffIdentity, error) {
	query := staffSelect + `WHERE is_active OR $1 ORDER BY full_name, username`
	rows, err := r.db(ctx).Query(ctx, query, includeInactive)
	if err != nil {
		return nil, mapError(err, "list staff")
	}
	staff, err := pgx.CollectRows(rows, scanStaff)
	if err != nil {
		return nil, mapError(err, "collect staff rows")
	}
	return staff, nil
}

func (r *PgxStaffRepository) SaveStaff(ctx context.Context, staff domain.StaffIdentity) error {
	query := `
		INSERT INTO staff (
			staff_id, username, full_name, email, role, is_active, password_hash,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		staff.ID,
		staff.Username,
		staff.FullName,
		staff.Email,
		string(staff.Role),
		staff.IsActive,
		staff.PasswordHash,
		staff.CreatedAt,
		staff.CreatedBy,
		staff.LastUpdatedAt,
		staff.LastUpdatedBy,
	)
	return mapStaffWriteError(err, "save staff "+staff.Username)
}

func (r *PgxStaffRepository) UpdateStaff(ctx context.Context, staff domain.StaffIdentity) error {
	query := `
		UPDATE staff
		SET full_name = $1, email = $2, role = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE staff_id = $7;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		staff.FullName,
		staff.Email,
		string(staff.Role),
		staff.IsActive,
		staff.LastUpdatedAt,
		staff.LastUpdatedBy,
		staff.ID,
	)
	if err != nil {
		return mapStaffWriteError(err, "update staff "+staff.ID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("staff %s: %w", staff.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxStaffRepository) UpdateStaffPassword(ctx context.Context, staffID, passwordHash string, updatedAt time.Time, updatedBy string) error {
	query := `
		UPDATE staff
		SET password_hash = $1, last_updated_at = $2, last_updated_by = $3
		WHERE staff_id = $4;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, passwordHash, updatedAt, updatedBy, staffID)
	if err != nil {
		return mapError(err, "update staff password")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("staff %s: %w", staffID, apperrors.ErrNotFound)
	}
	return nil
}
