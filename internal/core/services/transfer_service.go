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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultTransferListLimit = 100

// transferOverrideRoles may respond to a transfer for any destination bar.
var transferOverrideRoles = []domain.Role{domain.RoleSuperAdmin, domain.RoleManager}

// transferService implements TransferSvcFacade.
type transferService struct {
	BaseService
	transferRepo portsrepo.TransferRepositoryFacade
	assignments  portsrepo.AssignmentManager
	stock        *inventoryService
	tx           portsrepo.TransactionManager
}

// NewTransferService creates the bar-to-bar transfer service.
func NewTransferService(
	transferRepo portsrepo.TransferRepositoryFacade,
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	assignments portsrepo.AssignmentManager,
	tx portsrepo.TransactionManager,
) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo: transferRepo,
		assignments:  assignments,
		stock:        &inventoryService{inventoryRepo: inventoryRepo, tx: tx},
		tx:           tx,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, actor domain.Actor) (*domain.BarTransfer, error) {
	if !req.Quantity.IsPositive() {
		return nil, apperrors.NewValidationFailedError("quantity must be positive")
	}
	if req.SourceBarID != nil && *req.SourceBarID == req.DestinationBarID {
		return nil, apperrors.NewValidationFailedError("source and destination must differ")
	}

	item, err := s.stock.inventoryRepo.FindInventoryItemByID(ctx, req.ItemID)
	if err != nil {
		s.logUnlessNotFound(ctx, err, "Failed to find item for transfer", slog.String("item_id", req.ItemID))
		return nil, err
	}
	if !sameLocation(item.BarID, req.SourceBarID) {
		return nil, apperrors.NewValidationFailedError("item is not held at the source location")
	}

	now := s.now()
	transfer := domain.BarTransfer{
		TransferID:       uuid.NewString(),
		SourceBarID:      req.SourceBarID,
		DestinationBarID: req.DestinationBarID,
		ItemID:           req.ItemID,
		Quantity:         req.Quantity,
		Status:           domain.TransferPending,
		Notes:            req.Notes,
		RequestedBy:      actor.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
		ItemName:         item.Name,
	}
	if err := s.transferRepo.SaveTransfer(ctx, transfer); err != nil {
		s.LogError(ctx, err, "Failed to create transfer")
		return nil, err
	}

	s.LogInfo(ctx, "Transfer requested",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("destination_bar_id", transfer.DestinationBarID))
	return &transfer, nil
}

// AcceptTransfer moves stock out of the source and into the destination, then completes the transfer.
func (s *transferService) AcceptTransfer(ctx context.Context, transferID string, actor domain.Actor) (*domain.BarTransfer, error) {
	err := runInTx(ctx, s.tx, func(ctx context.Context) error {
		transfer, err := s.lockPending(ctx, transferID, actor)
		if err != nil {
			return err
		}

		source, err := s.stock.inventoryRepo.FindInventoryItemForUpdate(ctx, transfer.ItemID)
		if err != nil {
			return err
		}
		if source.CurrentStock.LessThan(transfer.Quantity) {
			return apperrors.NewValidationFailedError(fmt.Sprintf("insufficient stock at source: %s %s available", source.CurrentStock, source.Unit))
		}

		dest, err := s.destinationItem(ctx, transfer.DestinationBarID, source, actor.ID)
		if err != nil {
			return err
		}

		note := "transfer " + transfer.TransferID
		if _, _, err := s.stock.applyLocked(ctx, source.ItemID, domain.MovementOut, transfer.Quantity, &note, actor.ID); err != nil {
			return err
		}
		if _, _, err := s.stock.applyLocked(ctx, dest.ItemID, domain.MovementIn, transfer.Quantity, &note, actor.ID); err != nil {
			return err
		}
		return s.transferRepo.UpdateTransferStatus(ctx, transfer.TransferID, domain.TransferCompleted, actor.ID, s.now())
	})
	if err != nil {
		s.logResponseError(ctx, err, "Failed to accept transfer", transferID)
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed", slog.String("transfer_id", transferID), slog.String("by", actor.ID))
	return s.transferRepo.FindTransferByID(ctx, transferID)
}

func (s *transferService) RejectTransfer(ctx context.Context, transferID string, actor domain.Actor) (*domain.BarTransfer, error) {
	err := runInTx(ctx, s.tx, func(ctx context.Context) error {
		transfer, err := s.lockPending(ctx, transferID, actor)
		if err != nil {
			return err
		}
		return s.transferRepo.UpdateTransferStatus(ctx, transfer.TransferID, domain.TransferRejected, actor.ID, s.now())
	})
	if err != nil {
		s.logResponseError(ctx, err, "Failed to reject transfer", transferID)
		return nil, err
	}

	s.LogInfo(ctx, "Transfer rejected", slog.String("transfer_id", transferID), slog.String("by", actor.ID))
	return s.transferRepo.FindTransferByID(ctx, transferID)
}

func (s *transferService) ListPendingForBar(ctx context.Context, barID string) ([]domain.BarTransfer, error) {
	transfers, err := s.transferRepo.ListPendingTransfersForBar(ctx, barID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending transfers", slog.String("bar_id", barID))
		return nil, err
	}
	if transfers == nil {
		return []domain.BarTransfer{}, nil
	}
	return transfers, nil
}

func (s *transferService) ListTransfers(ctx context.Context, limit int) ([]domain.BarTransfer, error) {
	if limit <= 0 {
		limit = defaultTransferListLimit
	}
	transfers, err := s.transferRepo.ListTransfers(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers")
		return nil, err
	}
	if transfers == nil {
		return []domain.BarTransfer{}, nil
	}
	return transfers, nil
}

// lockPending loads the transfer for update and checks it can still be answered by actor.
func (s *transferService) lockPending(ctx context.Context, transferID string, actor domain.Actor) (*domain.BarTransfer, error) {
	transfer, err := s.transferRepo.FindTransferForUpdate(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.Status != domain.TransferPending {
		return nil, apperrors.NewAppError(http.StatusConflict, fmt.Sprintf("transfer is already %s", transfer.Status), apperrors.ErrConflict)
	}
	if domain.HasRole(actor.Role, transferOverrideRoles...) {
		return transfer, nil
	}

	assignment, err := s.assignments.FindActiveAssignment(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewForbiddenError("You are not assigned to a bar")
		}
		return nil, err
	}
	if assignment.BarID != transfer.DestinationBarID {
		return nil, apperrors.NewForbiddenError("Only the destination bar can respond to this transfer")
	}
	return transfer, nil
}

// destinationItem finds the destination's line for the same product, creating an empty one if needed.
func (s *transferService) destinationItem(ctx context.Context, barID string, source *domain.InventoryItem, actorID string) (*domain.InventoryItem, error) {
	item, err := s.stock.inventoryRepo.FindInventoryItemByName(ctx, &barID, source.Name)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	created := domain.InventoryItem{
		ItemID:        uuid.NewString(),
		BarID:         &barID,
		Name:          source.Name,
		Unit:          source.Unit,
		CurrentStock:  decimal.Zero,
		MinStockLevel: decimal.Zero,
		AuditFields:   domain.NewAuditFields(s.now(), actorID),
	}
	if err := s.stock.inventoryRepo.SaveInventoryItem(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *transferService) logResponseError(ctx context.Context, err error, msg, transferID string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
		s.LogInfo(ctx, msg, slog.String("transfer_id", transferID), slog.String("reason", appErr.Message))
		return
	}
	s.logUnlessNotFound(ctx, err, msg, slog.String("transfer_id", transferID))
}

func sameLocation(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
