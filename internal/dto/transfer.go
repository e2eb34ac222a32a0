package dto

import (
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest requests stock from a bar or the store (nil source) for a destination bar.
type CreateTransferRequest struct {
	SourceBarID      *string         `json:"sourceBarId" binding:"omitempty,uuid"`
	DestinationBarID string          `json:"destinationBarId" binding:"required,uuid"`
	ItemID           string          `json:"itemId" binding:"required,uuid"`
	Quantity         decimal.Decimal `json:"quantity"`
	Notes            *string         `json:"notes" binding:"omitempty,max=300"`
}

// ListTransfersResponse wraps a list of transfers.
type ListTransfersResponse struct {
	Transfers []domain.BarTransfer `json:"transfers"`
}
