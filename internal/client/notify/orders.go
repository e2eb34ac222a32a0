package notify

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// Scope selects which orders a display is alerted about.
type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeKitchen Scope = "kitchen"
	ScopeBar     Scope = "bar"
)

// Includes reports whether orders of type t are in scope.
func (s Scope) Includes(t domain.OrderType) bool {
	switch s {
	case ScopeKitchen:
		return t == domain.OrderTypeKitchen
	case ScopeBar:
		return t == domain.OrderTypeBar
	}
	return true
}

// orderRecord is the row shape of the orders change stream.
type orderRecord struct {
	OrderID     string             `json:"order_id"`
	OrderNumber int64              `json:"order_number"`
	OrderType   domain.OrderType   `json:"order_type"`
	Status      domain.OrderStatus `json:"status"`
	TableNumber *string            `json:"table_number"`
}

type OrderNotifierConfig struct {
	Scope        Scope
	SoundEnabled bool
}

// OrderNotifier alerts on new orders and on orders becoming ready.
type OrderNotifier struct {
	*stream
	cfg OrderNotifierConfig
}

func NewOrderNotifier(cfg OrderNotifierConfig, alerter Alerter, opts ...Option) *OrderNotifier {
	if cfg.Scope == "" {
		cfg.Scope = ScopeAll
	}
	n := &OrderNotifier{stream: newStream(alerter, opts), cfg: cfg}
	n.handle = n.handleEvent
	return n
}

func (n *OrderNotifier) handleEvent(event domain.ChangeEvent) {
	var record orderRecord
	if err := json.Unmarshal(event.Record, &record); err != nil {
		n.logger.Warn("Ignoring unreadable order change", "error", err)
		return
	}

	switch event.Type {
	case domain.ChangeInsert:
		n.onInsert(record)
	case domain.ChangeUpdate:
		var old orderRecord
		if len(event.OldRecord) > 0 {
			if err := json.Unmarshal(event.OldRecord, &old); err != nil {
				n.logger.Warn("Ignoring unreadable previous order row", "error", err)
				return
			}
		}
		n.onUpdate(old, record)
	}
}

func (n *OrderNotifier) onInsert(record orderRecord) {
	if n.seen(record.OrderID) {
		return
	}
	if !n.cfg.Scope.Includes(record.OrderType) {
		return
	}

	n.bump()
	n.tone(n.cfg.SoundEnabled, ToneAlert)
	n.alerter.Toast(Toast{
		Kind:    ToastInfo,
		Title:   fmt.Sprintf("New order #%d", record.OrderNumber),
		Message: orderLabel(record),
	})
}

func (n *OrderNotifier) onUpdate(old, record orderRecord) {
	if old.Status == domain.OrderReady || record.Status != domain.OrderReady {
		return
	}
	if !n.cfg.Scope.Includes(record.OrderType) {
		return
	}

	n.tone(n.cfg.SoundEnabled, ToneSuccess)
	n.alerter.Toast(Toast{
		Kind:    ToastSuccess,
		Title:   fmt.Sprintf("Order #%d is ready", record.OrderNumber),
		Message: orderLabel(record),
	})
}

func orderLabel(record orderRecord) string {
	if record.TableNumber != nil && *record.TableNumber != "" {
		return "Table " + *record.TableNumber
	}
	switch record.OrderType {
	case domain.OrderTypeKitchen:
		return "Kitchen order"
	case domain.OrderTypeBar:
		return "Bar order"
	}
	return "New order"
}
