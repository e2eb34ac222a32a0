package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/cherry_dining/internal/client/api"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/dto"
)

const (
	StaffSessionKey = "staff_session"
	StaffSessionTTL = 12 * time.Hour
)

const (
	msgInvalidStaffCredentials = "Invalid username or password"
	msgStaffLoginFailed        = "Login failed, please try again"
)

// StaffAPI is the staff credential verification procedure.
type StaffAPI interface {
	StaffLogin(ctx context.Context, username, password string) (*dto.StaffLoginResponse, error)
}

var _ StaffAPI = (*api.Client)(nil)

// StaffProvider holds a locally persisted staff session. The backend only verifies
// credentials; expiry is decided here from the login time.
type StaffProvider struct {
	api     StaffAPI
	storage Storage
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	session *domain.StaffSession
}

type StaffOption func(*StaffProvider)

// WithClock overrides the time source used for session expiry.
func WithClock(now func() time.Time) StaffOption {
	return func(p *StaffProvider) {
		p.now = now
	}
}

func NewStaffProvider(apiClient StaffAPI, storage Storage, logger *slog.Logger, opts ...StaffOption) *StaffProvider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &StaffProvider{
		api:     apiClient,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Login verifies the credentials with the backend and stores a session expiring
// StaffSessionTTL from now. Unknown usernames and wrong passwords fail the same way.
func (p *StaffProvider) Login(ctx context.Context, username, password string) AuthResult {
	resp, err := p.api.StaffLogin(ctx, strings.TrimSpace(username), password)
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) {
			return AuthResult{Error: msgInvalidStaffCredentials}
		}
		p.logger.Warn("Staff login failed", "error", err)
		return AuthResult{Error: msgStaffLoginFailed}
	}
	if resp.StaffID == "" {
		return AuthResult{Error: msgInvalidStaffCredentials}
	}

	role, err := domain.ParseRole(resp.StaffRole)
	if err != nil {
		p.logger.Warn("Staff login returned an unknown role", "role", resp.StaffRole)
		return AuthResult{Error: msgStaffLoginFailed}
	}

	session := &domain.StaffSession{
		Staff: domain.StaffIdentity{
			ID:       resp.StaffID,
			Username: resp.Username,
			FullName: resp.StaffName,
			Email:    resp.StaffEmail,
			Role:     role,
			IsActive: true,
		},
		Token:     resp.Token,
		ExpiresAt: p.now().Add(StaffSessionTTL),
	}
	buf, err := json.Marshal(session)
	if err != nil {
		return AuthResult{Error: msgStaffLoginFailed}
	}
	if err := p.storage.Set(StaffSessionKey, buf); err != nil {
		p.logger.Error("Failed to persist staff session", "error", err)
		return AuthResult{Error: msgStaffLoginFailed}
	}

	p.mu.Lock()
	p.session = session
	p.mu.Unlock()
	return AuthResult{Success: true}
}

// Logout deletes the stored session unconditionally.
func (p *StaffProvider) Logout() {
	p.mu.Lock()
	p.session = nil
	p.mu.Unlock()
	if err := p.storage.Delete(StaffSessionKey); err != nil {
		p.logger.Warn("Failed to delete staff session", "error", err)
	}
}

// Init loads the stored session. Unreadable, expired and expiry-less records count as no
// session and are deleted.
func (p *StaffProvider) Init() {
	p.mu.Lock()
	p.session = nil
	p.mu.Unlock()

	buf, ok, err := p.storage.Get(StaffSessionKey)
	if err != nil {
		p.logger.Warn("Failed to read staff session", "error", err)
		return
	}
	if !ok {
		return
	}

	var session domain.StaffSession
	if err := json.Unmarshal(buf, &session); err != nil || !session.Valid(p.now()) {
		p.Logout()
		return
	}

	p.mu.Lock()
	p.session = &session
	p.mu.Unlock()
}

// Current returns the active session, or nil when there is none or it expired.
func (p *StaffProvider) Current() *domain.StaffSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.session.Valid(p.now()) {
		return nil
	}
	s := *p.session
	return &s
}
