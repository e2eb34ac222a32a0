package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransferRepository struct {
	BaseRepository
}

func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

const FULL_TRANSFER_SELECT_QUERY = `
SELECT
	t.transfer_id, t.source_bar_id, t.destination_bar_id, t.item_id, t.quantity, t.status, t.notes,
	t.requested_by, t.responded_by, t.created_at, t.updated_at,
	i.name, sb.name, db.name
FROM bar_transfers t
JOIN inventory_items i ON i.item_id = t.item_id
LEFT JOIN bars sb ON sb.bar_id = t.source_bar_id
JOIN bars db ON db.bar_id = t.destination_bar_id
`

func scanTransfer(row pgx.CollectableRow) (domain.BarTransfer, error) {
	var t domain.BarTransfer
	var status string
	err := row.Scan(
		&t.TransferID,
		&t.SourceBarID,
		&t.DestinationBarID,
		&t.ItemID,
		&t.Quantity,
		&status,
		&t.Notes,
		&t.RequestedBy,
		&t.RespondedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.ItemName,
		&t.SourceBarName,
		&t.DestinationBarName,
	)
	t.Status = domain.TransferStatus(status)
	return t, err
}

func (r *PgxTransferRepository) getTransfers(ctx context.Context, filterQuery string, args ...any) ([]domain.BarTransfer, error) {
	rows, err := r.db(ctx).Query(ctx, FULL_TRANSFER_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, mapError(err, "query transfers")
	}
	transfers, err := pgx.CollectRows(rows, scanTransfer)
	if err != nil {
		return nil, mapError(err, "collect transfer rows")
	}
	return transfers, nil
}

func (r *PgxTransferRepository) findOne(ctx context.Context, filterQuery, transferID string) (*domain.BarTransfer, error) {
	transfers, err := r.getTransfers(ctx, filterQuery, transferID)
	if err != nil {
		return nil, err
	}
	if len(transfers) == 0 {
		return nil, fmt.Errorf("transfer %s: %w", transferID, apperrors.ErrNotFound)
	}
	return &transfers[0], nil
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.BarTransfer, error) {
	return r.findOne(ctx, `WHERE t.transfer_id = $1`, transferID)
}

// FindTransferForUpdate locks only the transfer row, not the joined rows.
func (r *PgxTransferRepository) FindTransferForUpdate(ctx context.Context, transferID string) (*domain.BarTransfer, error) {
	return r.findOne(ctx, `WHERE t.transfer_id = $1 FOR UPDATE OF t`, transferID)
}

func (r *PgxTransferRepository) ListPendingTransfersForBar(ctx context.Context, barID string) ([]domain.BarTransfer, error) {
	return r.getTransfers(ctx, `WHERE t.destination_bar_id = $1 AND t.status = 'pending' ORDER BY t.created_at`, barID)
}

func (r *PgxTransferRepository) ListTransfers(ctx context.Context, limit int) ([]domain.BarTransfer, error) {
	return r.getTransfers(ctx, `ORDER BY t.created_at DESC LIMIT $1`, limit)
}

func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, t domain.BarTransfer) error {
	query := `
		INSERT INTO bar_transfers (
			transfer_id, source_bar_id, destination_bar_id, item_id, quantity, status, notes,
			requested_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		t.TransferID,
		t.SourceBarID,
		t.DestinationBarID,
		t.ItemID,
		t.Quantity,
		string(t.Status),
		t.Notes,
		t.RequestedBy,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return mapError(err, "save transfer")
}

func (r *PgxTransferRepository) UpdateTransferStatus(ctx context.Context, transferID string, status domain.TransferStatus, respondedBy string, updatedAt time.Time) error {
	query := `
		UPDATE bar_transfers
		SET status = $1, responded_by = $2, updated_at = $3
		WHERE transfer_id = $4;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, string(status), respondedBy, updatedAt, transferID)
	if err != nil {
		return mapError(err, "update transfer status")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transfer %s: %w", transferID, apperrors.ErrNotFound)
	}
	return nil
}
