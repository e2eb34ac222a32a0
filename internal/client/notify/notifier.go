// Package notify turns change stream events into operator alerts.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/cherry_dining/internal/client/realtime"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// DefaultResetDelay is how long the recent events badge stays up after the last alert.
const DefaultResetDelay = 3 * time.Second

type Tone string

const (
	ToneAlert   Tone = "alert"
	ToneSuccess Tone = "success"
)

type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastFailure ToastKind = "failure"
)

// Toast is a transient on-screen notification.
type Toast struct {
	Kind    ToastKind
	Title   string
	Message string
}

// Alerter presents alerts. Implementations must not call back into the notifier.
type Alerter interface {
	Toast(t Toast)
	// PlayTone may fail, for example when the output device is unavailable.
	PlayTone(tone Tone) error
}

// CacheInvalidator drops cached views so dependent screens refetch.
type CacheInvalidator interface {
	Invalidate(keys ...string)
}

// ReferenceData resolves display names for ids carried in change records.
type ReferenceData interface {
	ItemName(itemID string) (string, bool)
	BarName(barID string) (string, bool)
}

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

type Option func(*stream)

// WithResetDelay sets how long the recent events counter survives the last alert.
func WithResetDelay(d time.Duration) Option {
	return func(s *stream) {
		s.resetDelay = d
	}
}

// WithAfterFunc replaces the timer used for the counter reset.
func WithAfterFunc(f AfterFunc) Option {
	return func(s *stream) {
		s.afterFunc = f
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *stream) {
		s.logger = logger
	}
}

// stream is the per-subscription state shared by the notifiers. Handlers run with mu
// held, so no alert is raised once Close has returned.
type stream struct {
	alerter    Alerter
	logger     *slog.Logger
	resetDelay time.Duration
	afterFunc  AfterFunc
	handle     func(domain.ChangeEvent)

	mu         sync.Mutex
	lastSeenID string
	recent     int
	resetGen   int
	stopReset  func() bool
	closed     bool
	sub        realtime.Subscription
	done       chan struct{}
}

func newStream(alerter Alerter, opts []Option) *stream {
	s := &stream{
		alerter:    alerter,
		logger:     slog.Default(),
		resetDelay: DefaultResetDelay,
		afterFunc:  timeAfterFunc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach starts consuming sub. A notifier consumes at most one subscription; attaching
// again closes the previous one first.
func (s *stream) Attach(sub realtime.Subscription) {
	s.mu.Lock()
	prev, prevDone := s.sub, s.done
	s.sub = sub
	s.done = make(chan struct{})
	done := s.done
	s.closed = false
	s.mu.Unlock()

	if prev != nil {
		prev.Close()
		<-prevDone
	}

	go func() {
		defer close(done)
		for event := range sub.Events() {
			s.HandleEvent(event)
		}
	}()
}

// Done is closed when the attached subscription stops delivering events, either because
// the stream ended or because Close was called. It is nil before Attach.
func (s *stream) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Close disposes the subscription. No alert fires after Close returns.
func (s *stream) Close() error {
	s.mu.Lock()
	s.closed = true
	if s.stopReset != nil {
		s.stopReset()
		s.stopReset = nil
	}
	s.recent = 0
	sub, done := s.sub, s.done
	s.sub, s.done = nil, nil
	s.mu.Unlock()

	if sub == nil {
		return nil
	}
	err := sub.Close()
	<-done
	return err
}

// HandleEvent processes one change event.
func (s *stream) HandleEvent(event domain.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.handle(event)
}

// RecentEvents is the number of alerts raised since the counter last reset.
func (s *stream) RecentEvents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recent
}

// seen records id as the last alerted row and reports whether it was already the last one.
// Callers hold mu.
func (s *stream) seen(id string) bool {
	if id != "" && id == s.lastSeenID {
		return true
	}
	s.lastSeenID = id
	return false
}

// bump increments the counter and restarts its reset timer. Callers hold mu.
func (s *stream) bump() {
	s.recent++
	if s.stopReset != nil {
		s.stopReset()
	}
	s.resetGen++
	gen := s.resetGen
	s.stopReset = s.afterFunc(s.resetDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// a later bump owns the counter now
		if gen != s.resetGen {
			return
		}
		s.recent = 0
		s.stopReset = nil
	})
}

// tone plays t when enabled. Playback failures are logged and otherwise ignored.
func (s *stream) tone(enabled bool, t Tone) {
	if !enabled {
		return
	}
	if err := s.alerter.PlayTone(t); err != nil {
		s.logger.Debug("Alert tone not played", "tone", t, "error", err)
	}
}
