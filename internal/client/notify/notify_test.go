package notify_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/cherry_dining/internal/client/notify"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type recordingAlerter struct {
	mu      sync.Mutex
	toasts  []notify.Toast
	tones   []notify.Tone
	toneErr error
}

func (a *recordingAlerter) Toast(t notify.Toast) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.toasts = append(a.toasts, t)
}

func (a *recordingAlerter) PlayTone(tone notify.Tone) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tones = append(a.tones, tone)
	return a.toneErr
}

func (a *recordingAlerter) Toasts() []notify.Toast {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]notify.Toast(nil), a.toasts...)
}

func (a *recordingAlerter) Tones() []notify.Tone {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]notify.Tone(nil), a.tones...)
}

type recordingCache struct {
	keys []string
}

func (c *recordingCache) Invalidate(keys ...string) {
	c.keys = append(c.keys, keys...)
}

type staticRefs struct {
	items map[string]string
	bars  map[string]string
}

func (r staticRefs) ItemName(id string) (string, bool) {
	name, ok := r.items[id]
	return name, ok
}

func (r staticRefs) BarName(id string) (string, bool) {
	name, ok := r.bars[id]
	return name, ok
}

// manualTimer captures scheduled resets so tests fire them explicitly.
type manualTimer struct {
	mu      sync.Mutex
	pending []func()
}

func (m *manualTimer) AfterFunc(_ time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	return func() bool { return true }
}

func (m *manualTimer) FireAll() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, f := range pending {
		f()
	}
}

type chanSubscription struct {
	events    chan domain.ChangeEvent
	closeOnce sync.Once
	closed    chan struct{}
}

func newChanSubscription() *chanSubscription {
	return &chanSubscription{events: make(chan domain.ChangeEvent), closed: make(chan struct{})}
}

func (s *chanSubscription) Events() <-chan domain.ChangeEvent { return s.events }

func (s *chanSubscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		close(s.events)
	})
	return nil
}

func insert(table, record string) domain.ChangeEvent {
	return domain.ChangeEvent{Type: domain.ChangeInsert, Table: table, Record: []byte(record)}
}

func update(table, old, record string) domain.ChangeEvent {
	return domain.ChangeEvent{Type: domain.ChangeUpdate, Table: table, Record: []byte(record), OldRecord: []byte(old)}
}

// --- Orders ---

type OrderNotifierTestSuite struct {
	suite.Suite
	alerter  *recordingAlerter
	timer    *manualTimer
	notifier *notify.OrderNotifier
}

func (suite *OrderNotifierTestSuite) SetupTest() {
	suite.alerter = &recordingAlerter{}
	suite.timer = &manualTimer{}
	suite.notifier = notify.NewOrderNotifier(
		notify.OrderNotifierConfig{Scope: notify.ScopeAll, SoundEnabled: true},
		suite.alerter,
		notify.WithAfterFunc(suite.timer.AfterFunc),
	)
}

func TestOrderNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(OrderNotifierTestSuite))
}

func (suite *OrderNotifierTestSuite) TestInsert_DuplicateDeliveryAlertsOnce() {
	event := insert("orders", `{"order_id":"o-1","order_number":12,"order_type":"kitchen","status":"pending","table_number":"4"}`)

	suite.notifier.HandleEvent(event)
	suite.notifier.HandleEvent(event)

	suite.Equal(1, suite.notifier.RecentEvents())
	toasts := suite.alerter.Toasts()
	suite.Require().Len(toasts, 1)
	suite.Equal("New order #12", toasts[0].Title)
	suite.Equal("Table 4", toasts[0].Message)
	suite.Equal([]notify.Tone{notify.ToneAlert}, suite.alerter.Tones())
}

func (suite *OrderNotifierTestSuite) TestInsert_ScopeFiltersOrderType() {
	kitchen := notify.NewOrderNotifier(notify.OrderNotifierConfig{Scope: notify.ScopeKitchen}, suite.alerter, notify.WithAfterFunc(suite.timer.AfterFunc))

	kitchen.HandleEvent(insert("orders", `{"order_id":"o-1","order_number":1,"order_type":"bar","status":"pending"}`))
	suite.Empty(suite.alerter.Toasts())
	suite.Equal(0, kitchen.RecentEvents())

	kitchen.HandleEvent(insert("orders", `{"order_id":"o-2","order_number":2,"order_type":"kitchen","status":"pending"}`))
	toasts := suite.alerter.Toasts()
	suite.Require().Len(toasts, 1)
	suite.Equal("Kitchen order", toasts[0].Message)
	suite.Empty(suite.alerter.Tones(), "sound disabled")
}

func (suite *OrderNotifierTestSuite) TestInsert_ToneFailureIsSwallowed() {
	suite.alerter.toneErr = errors.New("autoplay blocked")

	suite.notifier.HandleEvent(insert("orders", `{"order_id":"o-1","order_number":3,"order_type":"bar","status":"pending"}`))

	suite.Len(suite.alerter.Toasts(), 1)
	suite.Equal(1, suite.notifier.RecentEvents())
}

func (suite *OrderNotifierTestSuite) TestInsert_CounterResetsAfterDelay() {
	suite.notifier.HandleEvent(insert("orders", `{"order_id":"o-1","order_number":1,"order_type":"bar","status":"pending"}`))
	suite.notifier.HandleEvent(insert("orders", `{"order_id":"o-2","order_number":2,"order_type":"bar","status":"pending"}`))
	suite.Equal(2, suite.notifier.RecentEvents())

	suite.timer.FireAll()

	suite.Equal(0, suite.notifier.RecentEvents())
}

func (suite *OrderNotifierTestSuite) TestUpdate_ReadyFiresOnlyOnTransition() {
	suite.notifier.HandleEvent(update("orders",
		`{"order_id":"o-1","order_number":7,"order_type":"kitchen","status":"pending"}`,
		`{"order_id":"o-1","order_number":7,"order_type":"kitchen","status":"preparing"}`))
	suite.Empty(suite.alerter.Toasts(), "pending to preparing must not alert")

	suite.notifier.HandleEvent(update("orders",
		`{"order_id":"o-1","order_number":7,"order_type":"kitchen","status":"preparing"}`,
		`{"order_id":"o-1","order_number":7,"order_type":"kitchen","status":"ready","table_number":"9"}`))
	suite.notifier.HandleEvent(update("orders",
		`{"order_id":"o-1","order_number":7,"order_type":"kitchen","status":"ready"}`,
		`{"order_id":"o-1","order_number":7,"order_type":"kitchen","status":"ready","notes":"extra napkins"}`))

	toasts := suite.alerter.Toasts()
	suite.Require().Len(toasts, 1)
	suite.Equal("Order #7 is ready", toasts[0].Title)
	suite.Equal(notify.ToastSuccess, toasts[0].Kind)
}

func (suite *OrderNotifierTestSuite) TestClose_NoAlertAfterClose() {
	sub := newChanSubscription()
	suite.notifier.Attach(sub)

	sub.events <- insert("orders", `{"order_id":"o-1","order_number":1,"order_type":"bar","status":"pending"}`)
	suite.Require().Eventually(func() bool { return len(suite.alerter.Toasts()) == 1 }, time.Second, 5*time.Millisecond)

	suite.Require().NoError(suite.notifier.Close())
	select {
	case <-sub.closed:
	default:
		suite.Fail("subscription was not disposed")
	}

	suite.notifier.HandleEvent(insert("orders", `{"order_id":"o-2","order_number":2,"order_type":"bar","status":"pending"}`))
	suite.Len(suite.alerter.Toasts(), 1)
}

func (suite *OrderNotifierTestSuite) TestDone_ClosedWhenStreamEnds() {
	suite.Nil(suite.notifier.Done(), "nothing attached yet")

	sub := newChanSubscription()
	suite.notifier.Attach(sub)
	done := suite.notifier.Done()
	suite.Require().NotNil(done)

	select {
	case <-done:
		suite.Fail("done before the stream ended")
	default:
	}

	// the server side hangs up
	close(sub.events)

	select {
	case <-done:
	case <-time.After(time.Second):
		suite.Fail("done was not closed after the stream ended")
	}
	suite.NoError(suite.notifier.Close())
}

// --- Transfers ---

type TransferNotifierTestSuite struct {
	suite.Suite
	alerter  *recordingAlerter
	cache    *recordingCache
	notifier *notify.TransferNotifier
}

func (suite *TransferNotifierTestSuite) SetupTest() {
	suite.alerter = &recordingAlerter{}
	suite.cache = &recordingCache{}
	refs := staticRefs{
		items: map[string]string{"item-1": "Vodka"},
		bars:  map[string]string{"bar-a": "Rooftop Bar"},
	}
	timer := &manualTimer{}
	suite.notifier = notify.NewTransferNotifier(
		notify.TransferNotifierConfig{
			BarID:        func() (string, bool) { return "bar-b", true },
			SoundEnabled: true,
		},
		suite.alerter, refs, suite.cache,
		notify.WithAfterFunc(timer.AfterFunc),
	)
}

func TestTransferNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(TransferNotifierTestSuite))
}

func (suite *TransferNotifierTestSuite) TestInsert_OtherBarIgnored() {
	suite.notifier.HandleEvent(insert("bar_transfers",
		`{"transfer_id":"t-1","source_bar_id":"bar-b","destination_bar_id":"bar-c","item_id":"item-1","quantity":2,"status":"pending"}`))

	suite.Empty(suite.alerter.Toasts())
	suite.Equal(0, suite.notifier.RecentEvents())
}

func (suite *TransferNotifierTestSuite) TestInsert_DestinationAlerted() {
	event := insert("bar_transfers",
		`{"transfer_id":"t-1","source_bar_id":"bar-a","destination_bar_id":"bar-b","item_id":"item-1","quantity":5,"status":"pending"}`)

	suite.notifier.HandleEvent(event)
	suite.notifier.HandleEvent(event)

	toasts := suite.alerter.Toasts()
	suite.Require().Len(toasts, 1)
	suite.Equal("5 x Vodka from Rooftop Bar", toasts[0].Message)
	suite.Equal(1, suite.notifier.RecentEvents())
}

func (suite *TransferNotifierTestSuite) TestInsert_UnresolvedReferenceFallsBack() {
	suite.notifier.HandleEvent(insert("bar_transfers",
		`{"transfer_id":"t-2","destination_bar_id":"bar-b","item_id":"item-unknown","quantity":1,"status":"pending"}`))

	toasts := suite.alerter.Toasts()
	suite.Require().Len(toasts, 1)
	suite.Equal("Stock transfer", toasts[0].Message)
}

func (suite *TransferNotifierTestSuite) TestUpdate_Outcomes() {
	suite.notifier.HandleEvent(update("bar_transfers",
		`{"transfer_id":"t-1","destination_bar_id":"bar-b","item_id":"item-1","quantity":5,"status":"pending"}`,
		`{"transfer_id":"t-1","destination_bar_id":"bar-b","item_id":"item-1","quantity":5,"status":"completed"}`))
	suite.notifier.HandleEvent(update("bar_transfers",
		`{"transfer_id":"t-2","source_bar_id":"bar-b","destination_bar_id":"bar-a","item_id":"item-1","quantity":1,"status":"pending"}`,
		`{"transfer_id":"t-2","source_bar_id":"bar-b","destination_bar_id":"bar-a","item_id":"item-1","quantity":1,"status":"rejected"}`))

	toasts := suite.alerter.Toasts()
	suite.Require().Len(toasts, 2)
	suite.Equal(notify.ToastSuccess, toasts[0].Kind)
	suite.Equal(notify.ToastFailure, toasts[1].Kind)
	suite.Equal([]notify.Tone{notify.ToneSuccess}, suite.alerter.Tones(), "rejection plays no tone")
	suite.Equal([]string{
		notify.TransfersPendingKey("bar-b"), notify.TransfersAllKey,
		notify.TransfersPendingKey("bar-a"), notify.TransfersAllKey,
	}, suite.cache.keys)
}

func (suite *TransferNotifierTestSuite) TestUpdate_SameStatusIgnored() {
	suite.notifier.HandleEvent(update("bar_transfers",
		`{"transfer_id":"t-1","destination_bar_id":"bar-b","item_id":"item-1","quantity":5,"status":"pending"}`,
		`{"transfer_id":"t-1","destination_bar_id":"bar-b","item_id":"item-1","quantity":6,"status":"pending"}`))

	suite.Empty(suite.alerter.Toasts())
	suite.Empty(suite.cache.keys)
}

func (suite *TransferNotifierTestSuite) TestUpdate_UninvolvedBarOnlyInvalidates() {
	suite.notifier.HandleEvent(update("bar_transfers",
		`{"transfer_id":"t-3","source_bar_id":"bar-a","destination_bar_id":"bar-c","item_id":"item-1","quantity":5,"status":"pending"}`,
		`{"transfer_id":"t-3","source_bar_id":"bar-a","destination_bar_id":"bar-c","item_id":"item-1","quantity":5,"status":"completed"}`))

	suite.Empty(suite.alerter.Toasts())
	suite.Equal([]string{notify.TransfersPendingKey("bar-c"), notify.TransfersAllKey}, suite.cache.keys)
}

func TestTransferNotifier_UnassignedViewerNeverAlerted(t *testing.T) {
	alerter := &recordingAlerter{}
	n := notify.NewTransferNotifier(notify.TransferNotifierConfig{}, alerter, nil, nil)

	n.HandleEvent(insert("bar_transfers", `{"transfer_id":"t-1","destination_bar_id":"bar-b","item_id":"i","quantity":1,"status":"pending"}`))

	require.Empty(t, alerter.Toasts())
	assert.NoError(t, n.Close())
}
