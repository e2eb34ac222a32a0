// Package realtime subscribes to the backend's change streams.
package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// ChangeEventName is the SSE event name the backend sends change events under.
const ChangeEventName = "change"

// Subscription is a cancellable sequence of change events. Events is closed once the
// subscription ends, either by Close or because the stream dropped.
type Subscription interface {
	Events() <-chan domain.ChangeEvent
	Close() error
}

type sseSubscription struct {
	events chan domain.ChangeEvent
	cancel context.CancelFunc
	body   io.Closer
	done   chan struct{}

	closeOnce sync.Once
	err       error
}

var _ Subscription = (*sseSubscription)(nil)

// Dial opens the change stream at url, authenticating with token.
func Dial(ctx context.Context, httpclient *http.Client, url, token string, logger *slog.Logger) (Subscription, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// streams stay open indefinitely, so the client's timeout must not apply
	streaming := *httpclient
	streaming.Timeout = 0

	resp, err := streaming.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("change stream refused (status code = %d)", resp.StatusCode)
	}

	sub := &sseSubscription{
		events: make(chan domain.ChangeEvent),
		cancel: cancel,
		body:   resp.Body,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(sub.done)
		defer close(sub.events)
		err := ReadEvents(ctx, resp.Body, func(name string, data []byte) {
			if name != ChangeEventName {
				return
			}
			var event domain.ChangeEvent
			if err := json.Unmarshal(data, &event); err != nil {
				logger.Warn("Dropping malformed change event", "error", err)
				return
			}
			select {
			case sub.events <- event:
			case <-ctx.Done():
			}
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("Change stream ended", "url", url, "error", err)
		}
	}()
	return sub, nil
}

func (s *sseSubscription) Events() <-chan domain.ChangeEvent {
	return s.events
}

// Close stops the stream and waits until no more events can be delivered.
func (s *sseSubscription) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.err = s.body.Close()
		<-s.done
	})
	return s.err
}

// ReadEvents parses an event stream from r and calls dispatch for each complete event.
// Events without an explicit name are dispatched as "message". It returns nil at EOF.
func ReadEvents(ctx context.Context, r io.Reader, dispatch func(name string, data []byte)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var name string
	var data []string
	flush := func() {
		if len(data) > 0 {
			if name == "" {
				name = "message"
			}
			dispatch(name, []byte(strings.Join(data, "\n")))
		}
		name = ""
		data = data[:0]
	}

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, ":") {
			// comment, used for heartbeats
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			name = value
		case "data":
			data = append(data, value)
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
