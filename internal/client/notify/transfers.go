package notify

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Cache keys invalidated on transfer status changes.
const (
	TransfersAllKey           = "transfers:all"
	transfersPendingKeyPrefix = "transfers:pending:"
)

// TransfersPendingKey is the cache key of a bar's pending transfer list.
func TransfersPendingKey(barID string) string {
	return transfersPendingKeyPrefix + barID
}

// transferRecord is the row shape of the transfers change stream.
type transferRecord struct {
	TransferID       string                `json:"transfer_id"`
	SourceBarID      *string               `json:"source_bar_id"`
	DestinationBarID string                `json:"destination_bar_id"`
	ItemID           string                `json:"item_id"`
	Quantity         decimal.Decimal       `json:"quantity"`
	Status           domain.TransferStatus `json:"status"`
}

type TransferNotifierConfig struct {
	// BarID returns the viewer's assigned bar. ok is false while unassigned.
	BarID        func() (barID string, ok bool)
	SoundEnabled bool
}

// TransferNotifier alerts the receiving bar about new transfers and both ends of a
// transfer about its outcome.
type TransferNotifier struct {
	*stream
	cfg   TransferNotifierConfig
	refs  ReferenceData
	cache CacheInvalidator
}

// NewTransferNotifier creates a TransferNotifier. refs and cache may be nil.
func NewTransferNotifier(cfg TransferNotifierConfig, alerter Alerter, refs ReferenceData, cache CacheInvalidator, opts ...Option) *TransferNotifier {
	if cfg.BarID == nil {
		cfg.BarID = func() (string, bool) { return "", false }
	}
	n := &TransferNotifier{stream: newStream(alerter, opts), cfg: cfg, refs: refs, cache: cache}
	n.handle = n.handleEvent
	return n
}

func (n *TransferNotifier) handleEvent(event domain.ChangeEvent) {
	var record transferRecord
	if err := json.Unmarshal(event.Record, &record); err != nil {
		n.logger.Warn("Ignoring unreadable transfer change", "error", err)
		return
	}

	switch event.Type {
	case domain.ChangeInsert:
		n.onInsert(record)
	case domain.ChangeUpdate:
		var old transferRecord
		if len(event.OldRecord) > 0 {
			if err := json.Unmarshal(event.OldRecord, &old); err != nil {
				n.logger.Warn("Ignoring unreadable previous transfer row", "error", err)
				return
			}
		}
		n.onUpdate(old, record)
	}
}

func (n *TransferNotifier) onInsert(record transferRecord) {
	if n.seen(record.TransferID) {
		return
	}
	barID, ok := n.cfg.BarID()
	if !ok || record.DestinationBarID != barID || record.Status != domain.TransferPending {
		return
	}

	n.bump()
	n.tone(n.cfg.SoundEnabled, ToneAlert)
	n.alerter.Toast(Toast{
		Kind:    ToastInfo,
		Title:   "Incoming transfer",
		Message: n.summary(record),
	})
}

func (n *TransferNotifier) onUpdate(old, record transferRecord) {
	if old.Status == record.Status {
		return
	}
	if n.cache != nil {
		n.cache.Invalidate(TransfersPendingKey(record.DestinationBarID), TransfersAllKey)
	}

	barID, ok := n.cfg.BarID()
	if !ok || !involves(record, barID) {
		return
	}

	switch {
	case record.Status.IsSuccessful():
		n.tone(n.cfg.SoundEnabled, ToneSuccess)
		n.alerter.Toast(Toast{
			Kind:    ToastSuccess,
			Title:   "Transfer completed",
			Message: n.summary(record),
		})
	case record.Status == domain.TransferRejected:
		n.alerter.Toast(Toast{
			Kind:    ToastFailure,
			Title:   "Transfer rejected",
			Message: n.summary(record),
		})
	}
}

func involves(record transferRecord, barID string) bool {
	if record.DestinationBarID == barID {
		return true
	}
	return record.SourceBarID != nil && *record.SourceBarID == barID
}

// summary describes a transfer, falling back to a generic label when the item or the
// source bar name is not resolved yet.
func (n *TransferNotifier) summary(record transferRecord) string {
	if n.refs == nil {
		return "Stock transfer"
	}
	item, ok := n.refs.ItemName(record.ItemID)
	if !ok {
		return "Stock transfer"
	}

	source := "the store"
	if record.SourceBarID != nil {
		name, ok := n.refs.BarName(*record.SourceBarID)
		if !ok {
			return fmt.Sprintf("%s x %s", record.Quantity.String(), item)
		}
		source = name
	}
	return fmt.Sprintf("%s x %s from %s", record.Quantity.String(), item, source)
}
