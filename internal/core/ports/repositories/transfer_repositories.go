package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// TransferReader defines read operations for bar-to-bar transfers.
type TransferReader interface {
	FindTransferByID(ctx context.Context, transferID string) (*domain.BarTransfer, error)
	// FindTransferForUpdate locks the row until the surrounding transaction ends.
	FindTransferForUpdate(ctx context.Context, transferID string) (*domain.BarTransfer, error)
	ListPendingTransfersForBar(ctx context.Context, barID string) ([]domain.BarTransfer, error)
	ListTransfers(ctx context.Context, limit int) ([]domain.BarTransfer, error)
}

// TransferWriter defines write operations for bar-to-bar transfers.
type TransferWriter interface {
	SaveTransfer(ctx context.Context, transfer domain.BarTransfer) error
	UpdateTransferStatus(ctx context.Context, transferID string, status domain.TransferStatus, respondedBy string, updatedAt time.Time) error
}

// TransferRepositoryFacade combines all transfer repository interfaces.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}
