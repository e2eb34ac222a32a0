package pgsql

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBarRepository struct {
	BaseRepository
}

func newPgxBarRepository(pool *pgxpool.Pool) portsrepo.BarRepositoryFacade {
	return &PgxBarRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BarRepositoryFacade = (*PgxBarRepository)(nil)

const FULL_BAR_SELECT_QUERY = `
SELECT bar_id, name, location, is_active, created_at, created_by
FROM bars
`

func (r *PgxBarRepository) FindBarByID(ctx context.Context, barID string) (*domain.Bar, error) {
	rows, err := r.db(ctx).Query(ctx, FULL_BAR_SELECT_QUERY+`WHERE bar_id = $1`, barID)
	if err != nil {
		return nil, mapError(err, "query bar")
	}
	bar, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Bar])
	if err != nil {
		return nil, mapError(err, "find bar "+barID)
	}
	return &bar, nil
}

func (r *PgxBarRepository) ListBars(ctx context.Context, includeInactive bool) ([]domain.Bar, error) {
	rows, err := r.db(ctx).Query(ctx, FULL_BAR_SELECT_QUERY+`WHERE is_active OR $1 ORDER BY name`, includeInactive)
	if err != nil {
		return nil, mapError(err, "list bars")
	}
	bars, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Bar])
	if err != nil {
		return nil, mapError(err, "collect bar rows")
	}
	return bars, nil
}

func (r *PgxBarRepository) SaveBar(ctx context.Context, bar domain.Bar) error {
	query := `
		INSERT INTO bars (bar_id, name, location, is_active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db(ctx).Exec(ctx, query, bar.BarID, bar.Name, bar.Location, bar.IsActive, bar.CreatedAt, bar.CreatedBy)
	return mapError(err, "save bar "+bar.Name)
}

func (r *PgxBarRepository) DeactivateAssignments(ctx context.Context, identityID string) error {
	_, err := r.db(ctx).Exec(ctx,
		`UPDATE cashier_bar_assignments SET is_active = FALSE WHERE identity_id = $1 AND is_active;`,
		identityID)
	return mapError(err, "deactivate assignments")
}

// UpsertActiveAssignment relies on the (identity_id, bar_id) unique key. It must run after
// DeactivateAssignments in the same transaction or the one-active index rejects it.
func (r *PgxBarRepository) UpsertActiveAssignment(ctx context.Context, a domain.CashierBarAssignment) error {
	query := `
		INSERT INTO cashier_bar_assignments (assignment_id, identity_id, bar_id, is_active, assigned_by, assigned_at)
		VALUES ($1, $2, $3, TRUE, $4, $5)
		ON CONFLICT (identity_id, bar_id) DO UPDATE SET
			is_active = TRUE,
			assigned_by = EXCLUDED.assigned_by,
			assigned_at = EXCLUDED.assigned_at;
	`
	_, err := r.db(ctx).Exec(ctx, query, a.AssignmentID, a.IdentityID, a.BarID, a.AssignedBy, a.AssignedAt)
	return mapError(err, "upsert assignment")
}

const assignmentSelect = `
SELECT a.assignment_id, a.identity_id, a.bar_id, b.name, a.is_active, a.assigned_by, a.assigned_at
FROM cashier_bar_assignments a
JOIN bars b ON b.bar_id = a.bar_id
WHERE a.is_active
`

func scanAssignment(row pgx.CollectableRow) (domain.CashierBarAssignment, error) {
	var a domain.CashierBarAssignment
	err := row.Scan(&a.AssignmentID, &a.IdentityID, &a.BarID, &a.BarName, &a.IsActive, &a.AssignedBy, &a.AssignedAt)
	return a, err
}

func (r *PgxBarRepository) FindActiveAssignment(ctx context.Context, identityID string) (*domain.CashierBarAssignment, error) {
	rows, err := r.db(ctx).Query(ctx, assignmentSelect+` AND a.identity_id = $1`, identityID)
	if err != nil {
		return nil, mapError(err, "query assignment")
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAssignment)
	if err != nil {
		return nil, mapError(err, "find active assignment")
	}
	return &a, nil
}

func (r *PgxBarRepository) ListActiveAssignments(ctx context.Context) ([]domain.CashierBarAssignment, error) {
	rows, err := r.db(ctx).Query(ctx, assignmentSelect+` ORDER BY b.name, a.assigned_at`)
	if err != nil {
		return nil, mapError(err, "list assignments")
	}
	assignments, err := pgx.CollectRows(rows, scanAssignment)
	if err != nil {
		return nil, mapError(err, "collect assignment rows")
	}
	return assignments, nil
}
