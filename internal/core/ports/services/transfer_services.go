package services

import (
	"context"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/dto"
)

type TransferSvcFacade interface {
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, actor domain.Actor) (*domain.BarTransfer, error)
	// AcceptTransfer moves the stock and completes the transfer. Only identities assigned
	// to the destination bar, managers and super admins may accept.
	AcceptTransfer(ctx context.Context, transferID string, actor domain.Actor) (*domain.BarTransfer, error)
	RejectTransfer(ctx context.Context, transferID string, actor domain.Actor) (*domain.BarTransfer, error)
	ListPendingForBar(ctx context.Context, barID string) ([]domain.BarTransfer, error)
	ListTransfers(ctx context.Context, limit int) ([]domain.BarTransfer, error)
}
