package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the state of a bar-to-bar transfer.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferAccepted  TransferStatus = "accepted"
	TransferCompleted TransferStatus = "completed"
	TransferRejected  TransferStatus = "rejected"
)

// IsSuccessful reports whether the destination took the stock.
func (s TransferStatus) IsSuccessful() bool {
	return s == TransferAccepted || s == TransferCompleted
}

// BarTransfer moves stock from a bar (or the store, when SourceBarID is nil) to a destination bar.
type BarTransfer struct {
	TransferID       string          `json:"transferID"`
	SourceBarID      *string         `json:"sourceBarID,omitempty"`
	DestinationBarID string          `json:"destinationBarID"`
	ItemID           string          `json:"itemID"`
	Quantity         decimal.Decimal `json:"quantity"`
	Status           TransferStatus  `json:"status"`
	Notes            *string         `json:"notes,omitempty"`
	RequestedBy      string          `json:"requestedBy"`
	RespondedBy      *string         `json:"respondedBy,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`

	// Joined fields (not always populated).
	ItemName           string  `json:"itemName,omitempty"`
	SourceBarName      *string `json:"sourceBarName,omitempty"`
	DestinationBarName string  `json:"destinationBarName,omitempty"`
}
