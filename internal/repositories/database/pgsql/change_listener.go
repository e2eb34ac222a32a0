package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Notification channels written by the notify_row_change trigger.
const (
	OrdersChangesChannel    = "orders_changes"
	TransfersChangesChannel = "bar_transfers_changes"
)

const maxListenBackoff = 30 * time.Second

// ChangePublisher receives decoded change events.
type ChangePublisher interface {
	Publish(stream domain.Stream, event domain.ChangeEvent)
}

// ChangeListener holds a dedicated connection on LISTEN and forwards notifications to a publisher.
type ChangeListener struct {
	pool      *pgxpool.Pool
	publisher ChangePublisher
	logger    *slog.Logger
}

func NewChangeListener(pool *pgxpool.Pool, publisher ChangePublisher, logger *slog.Logger) *ChangeListener {
	return &ChangeListener{pool: pool, publisher: publisher, logger: logger}
}

// Run listens until ctx is done, reconnecting with exponential backoff.
func (l *ChangeListener) Run(ctx context.Context) {
	backoff := time.Second
	for {
		started := time.Now()
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if time.Since(started) > maxListenBackoff {
			backoff = time.Second
		}
		l.logger.Error("Change listener disconnected",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", backoff))

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxListenBackoff)
	}
}

func (l *ChangeListener) listen(ctx context.Context) error {
	pooled, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	// The connection keeps its LISTEN registrations, so it never goes back to the pool.
	conn := pooled.Hijack()
	defer conn.Close(context.Background())

	for _, channel := range []string{OrdersChangesChannel, TransfersChangesChannel} {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
			return fmt.Errorf("listen on %s: %w", channel, err)
		}
	}
	l.logger.Info("Change listener connected")

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		stream, event, err := DecodeNotification(n.Channel, n.Payload)
		if err != nil {
			l.logger.Warn("Ignoring malformed change notification",
				slog.String("channel", n.Channel),
				slog.String("error", err.Error()))
			continue
		}
		l.publisher.Publish(stream, event)
	}
}

// DecodeNotification parses a trigger payload and resolves the stream it belongs to.
func DecodeNotification(channel, payload string) (domain.Stream, domain.ChangeEvent, error) {
	var event domain.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return "", event, fmt.Errorf("decode payload: %w", err)
	}
	if event.Type != domain.ChangeInsert && event.Type != domain.ChangeUpdate {
		return "", event, fmt.Errorf("unsupported change type %q", event.Type)
	}
	stream, ok := domain.StreamForTable(event.Table)
	if !ok {
		return "", event, fmt.Errorf("table %q has no stream", event.Table)
	}
	if expected := streamChannel(stream); expected != channel {
		return "", event, fmt.Errorf("table %q arrived on channel %q", event.Table, channel)
	}
	return stream, event, nil
}

func streamChannel(stream domain.Stream) string {
	if stream == domain.StreamTransfers {
		return TransfersChangesChannel
	}
	return OrdersChangesChannel
}
