package realtime

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderInsert(id string) domain.ChangeEvent {
	return domain.ChangeEvent{
		Type:   domain.ChangeInsert,
		Table:  "orders",
		Record: json.RawMessage(`{"order_id":"` + id + `"}`),
	}
}

func TestHub_PublishReachesOnlyStreamSubscribers(t *testing.T) {
	hub := NewHub(4, nil)
	orders, cancelOrders := hub.Subscribe(domain.StreamOrders)
	defer cancelOrders()
	transfers, cancelTransfers := hub.Subscribe(domain.StreamTransfers)
	defer cancelTransfers()

	hub.Publish(domain.StreamOrders, orderInsert("o1"))

	select {
	case ev := <-orders:
		assert.Equal(t, "orders", ev.Table)
	default:
		t.Fatal("expected an event on the orders stream")
	}
	assert.Empty(t, transfers)
}

func TestHub_CancelClosesAndUnregisters(t *testing.T) {
	hub := NewHub(1, nil)
	ch, cancel := hub.Subscribe(domain.StreamOrders)
	require.Equal(t, 1, hub.SubscriberCount(domain.StreamOrders))

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount(domain.StreamOrders))

	// Publishing after cancel must not panic on the closed channel.
	hub.Publish(domain.StreamOrders, orderInsert("o2"))
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub(1, nil)
	ch, cancel := hub.Subscribe(domain.StreamOrders)
	defer cancel()

	hub.Publish(domain.StreamOrders, orderInsert("o1"))
	hub.Publish(domain.StreamOrders, orderInsert("o2"))

	ev := <-ch
	assert.JSONEq(t, `{"order_id":"o1"}`, string(ev.Record))
	assert.Empty(t, ch)
}
