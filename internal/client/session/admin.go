package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SscSPs/cherry_dining/internal/client/api"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/dto"
)

const AdminSessionKey = "admin_session"

const (
	msgInvalidAdminCredentials = "Invalid email or password"
	msgAccountExists           = "An account with this email already exists"
	msgCheckDetails            = "Please check the details you entered"
	msgSignInUnavailable       = "Unable to sign in right now, please try again"
)

var ErrNotSignedIn = errors.New("not signed in")

// State is the resolution state of a session provider.
type State int

const (
	// StateLoading means a stored token exists but has not been verified yet.
	StateLoading State = iota
	StateAbsent
	StatePresent
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAbsent:
		return "absent"
	case StatePresent:
		return "present"
	}
	return "unknown"
}

// AuthResult is the caller-facing outcome of a sign-in style operation.
// Error holds a short message fit for display.
type AuthResult struct {
	Success bool
	Error   string
}

// AdminAPI is the part of the backend the administrator session talks to.
type AdminAPI interface {
	SignIn(ctx context.Context, email, password string) (*dto.AuthSessionResponse, error)
	SignUp(ctx context.Context, email, password, fullName string) (*dto.AuthSessionResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthSessionResponse, error)
	SignOut(ctx context.Context, accessToken string) error
	Me(ctx context.Context, accessToken string) (*dto.AdminIdentityResponse, error)
}

var _ AdminAPI = (*api.Client)(nil)

// adminTokens is the persisted form of an administrator session.
type adminTokens struct {
	AccessToken      string    `json:"accessToken"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

// AdminSnapshot is a point-in-time view of the administrator session.
type AdminSnapshot struct {
	State    State
	Identity *domain.Identity
	// AccessToken is empty unless State is StatePresent.
	AccessToken string
}

// AdminProvider holds the administrator identity behind a bearer/refresh token pair.
type AdminProvider struct {
	api     AdminAPI
	storage Storage
	logger  *slog.Logger

	mu       sync.Mutex
	state    State
	identity *domain.Identity
	tokens   *adminTokens
}

func NewAdminProvider(apiClient AdminAPI, storage Storage, logger *slog.Logger) *AdminProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminProvider{
		api:     apiClient,
		storage: storage,
		logger:  logger,
		state:   StateLoading,
	}
}

// Init resolves the stored session. Without a stored token the provider is Absent before
// Init returns; otherwise it stays Loading until the returned channel is closed.
func (p *AdminProvider) Init(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	tokens, err := p.loadTokens()
	if err != nil {
		p.logger.Warn("Discarding unreadable admin session", "error", err)
		p.purge()
	}
	if tokens == nil {
		p.setAbsent()
		close(done)
		return done
	}

	p.mu.Lock()
	p.state = StateLoading
	p.tokens = tokens
	p.mu.Unlock()

	go func() {
		defer close(done)
		if err := p.RefreshUser(ctx); err != nil {
			p.logger.Warn("Failed to resolve admin session", "error", err)
		}
	}()
	return done
}

// Current returns a snapshot of the administrator session.
func (p *AdminProvider) Current() AdminSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := AdminSnapshot{State: p.state}
	if p.state == StatePresent {
		id := *p.identity
		snap.Identity = &id
		snap.AccessToken = p.tokens.AccessToken
	}
	return snap
}

func (p *AdminProvider) SignIn(ctx context.Context, email, password string) AuthResult {
	resp, err := p.api.SignIn(ctx, email, password)
	if err != nil {
		p.logger.Info("Admin sign in failed", "error", err)
		return AuthResult{Error: authErrorMessage(err)}
	}
	return p.accept(resp)
}

func (p *AdminProvider) SignUp(ctx context.Context, email, password, fullName string) AuthResult {
	resp, err := p.api.SignUp(ctx, email, password, fullName)
	if err != nil {
		p.logger.Info("Admin sign up failed", "error", err)
		return AuthResult{Error: authErrorMessage(err)}
	}
	return p.accept(resp)
}

// SignOut revokes the session with the backend on a best-effort basis. Local state is
// cleared whether or not the revoke succeeds.
func (p *AdminProvider) SignOut(ctx context.Context) {
	p.mu.Lock()
	tokens := p.tokens
	p.mu.Unlock()

	if tokens != nil {
		if err := p.api.SignOut(ctx, tokens.AccessToken); err != nil {
			p.logger.Warn("Failed to revoke admin session", "error", err)
		}
	}
	p.purge()
}

// RefreshUser re-fetches the identity behind the stored token. When the backend rejects
// both the access and the refresh token the stored pair is purged and the identity becomes
// absent. Transport failures leave the stored pair in place. A result that arrives after
// the session was signed out or replaced is discarded.
func (p *AdminProvider) RefreshUser(ctx context.Context) error {
	p.mu.Lock()
	tokens := p.tokens
	p.mu.Unlock()
	if tokens == nil {
		p.setAbsent()
		return ErrNotSignedIn
	}

	me, err := p.api.Me(ctx, tokens.AccessToken)
	if err == nil {
		if !p.replace(tokens, tokens, toIdentity(*me), false) {
			return ErrNotSignedIn
		}
		return nil
	}
	if !isRejection(err) {
		p.degrade()
		return err
	}

	resp, err := p.api.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		if isRejection(err) {
			p.purgeIfCurrent(tokens)
			return ErrNotSignedIn
		}
		p.degrade()
		return err
	}
	if !p.replace(tokens, tokensOf(resp), toIdentity(resp.User), true) {
		return ErrNotSignedIn
	}
	return nil
}

// replace presents next only while current is still the held token pair, persisting next
// first when persist is set. It reports whether the swap happened.
func (p *AdminProvider) replace(current, next *adminTokens, identity domain.Identity, persist bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tokens != current {
		return false
	}
	if persist {
		if err := p.saveTokens(next); err != nil {
			p.logger.Warn("Failed to persist refreshed admin session", "error", err)
		}
	}
	p.tokens = next
	p.identity = &identity
	p.state = StatePresent
	return true
}

// purgeIfCurrent purges the session unless it was signed out or replaced meanwhile.
func (p *AdminProvider) purgeIfCurrent(tokens *adminTokens) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tokens != tokens {
		return
	}
	if err := p.storage.Delete(AdminSessionKey); err != nil {
		p.logger.Warn("Failed to delete admin session", "error", err)
	}
	p.state = StateAbsent
	p.identity = nil
	p.tokens = nil
}

func (p *AdminProvider) accept(resp *dto.AuthSessionResponse) AuthResult {
	tokens := tokensOf(resp)
	if err := p.saveTokens(tokens); err != nil {
		p.logger.Error("Failed to persist admin session", "error", err)
		return AuthResult{Error: msgSignInUnavailable}
	}
	p.present(tokens, toIdentity(resp.User))
	return AuthResult{Success: true}
}

func (p *AdminProvider) present(tokens *adminTokens, identity domain.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens = tokens
	p.identity = &identity
	p.state = StatePresent
}

// degrade leaves a verified session as it is and resolves an unverified one to absent.
func (p *AdminProvider) degrade() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePresent {
		p.state = StateAbsent
		p.identity = nil
	}
}

func (p *AdminProvider) setAbsent() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateAbsent
	p.identity = nil
	p.tokens = nil
}

func (p *AdminProvider) purge() {
	if err := p.storage.Delete(AdminSessionKey); err != nil {
		p.logger.Warn("Failed to delete admin session", "error", err)
	}
	p.setAbsent()
}

func (p *AdminProvider) loadTokens() (*adminTokens, error) {
	buf, ok, err := p.storage.Get(AdminSessionKey)
	if err != nil || !ok {
		return nil, err
	}
	var tokens adminTokens
	if err := json.Unmarshal(buf, &tokens); err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" {
		return nil, errors.New("stored admin session has no access token")
	}
	return &tokens, nil
}

func (p *AdminProvider) saveTokens(tokens *adminTokens) error {
	buf, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return p.storage.Set(AdminSessionKey, buf)
}

func tokensOf(resp *dto.AuthSessionResponse) *adminTokens {
	return &adminTokens{
		AccessToken:      resp.AccessToken,
		ExpiresAt:        resp.ExpiresAt,
		RefreshToken:     resp.RefreshToken,
		RefreshExpiresAt: resp.RefreshExpiresAt,
	}
}

func toIdentity(user dto.AdminIdentityResponse) domain.Identity {
	identity := domain.Identity{
		Kind:  domain.KindAdmin,
		ID:    user.ID,
		Name:  user.FullName,
		Email: user.Email,
	}
	if user.Role != nil {
		if role, err := domain.ParseRole(*user.Role); err == nil {
			identity.Role = &role
		}
	}
	return identity
}

// isRejection reports whether the backend refused the credentials, as opposed to being
// unreachable or failing.
func isRejection(err error) bool {
	return api.IsStatus(err, http.StatusUnauthorized) ||
		api.IsStatus(err, http.StatusForbidden) ||
		api.IsStatus(err, http.StatusNotFound)
}

func authErrorMessage(err error) string {
	switch {
	case api.IsStatus(err, http.StatusUnauthorized):
		return msgInvalidAdminCredentials
	case api.IsStatus(err, http.StatusConflict):
		return msgAccountExists
	case api.IsStatus(err, http.StatusBadRequest):
		return msgCheckDetails
	}
	return msgSignInUnavailable
}
