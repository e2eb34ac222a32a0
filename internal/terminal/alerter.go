package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/SscSPs/cherry_dining/internal/client/notify"
)

// consoleAlerter prints toasts as lines and plays tones with the terminal bell.
type consoleAlerter struct {
	mu  sync.Mutex
	out io.Writer
}

var _ notify.Alerter = (*consoleAlerter)(nil)

func (a *consoleAlerter) Toast(t notify.Toast) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, "[%s] %s: %s\n", t.Kind, t.Title, t.Message)
}

func (a *consoleAlerter) PlayTone(tone notify.Tone) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := io.WriteString(a.out, "\a")
	return err
}

// logInvalidator records invalidated views. The terminal keeps no cached lists.
type logInvalidator struct {
	logger *slog.Logger
}

var _ notify.CacheInvalidator = logInvalidator{}

func (l logInvalidator) Invalidate(keys ...string) {
	l.logger.Debug("Cached views invalidated", slog.Any("keys", keys))
}

// referenceNames maps ids to display names loaded when a watch starts.
type referenceNames struct {
	items map[string]string
	bars  map[string]string
}

var _ notify.ReferenceData = referenceNames{}

func (r referenceNames) ItemName(itemID string) (string, bool) {
	name, ok := r.items[itemID]
	return name, ok
}

func (r referenceNames) BarName(barID string) (string, bool) {
	name, ok := r.bars[barID]
	return name, ok
}
