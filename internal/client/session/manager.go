// Package session owns the client's authentication state machine. The
// Manager is constructed once at startup, injected into the features that
// need it, and is the only component allowed to persist or clear the
// credential pair.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/models"
	"github.com/vidtube/vidtube/internal/client/repositories/tokens"
	"github.com/vidtube/vidtube/internal/client/services"
	"github.com/vidtube/vidtube/internal/logging"
)

// State is the session lifecycle phase.
type State string

const (
	// StateUninitialized means Bootstrap has not run yet.
	StateUninitialized State = "uninitialized"
	// StateBootstrapping means the startup session restore is in flight.
	StateBootstrapping State = "bootstrapping"
	// StateAuthenticated means a user profile is loaded.
	StateAuthenticated State = "authenticated"
	// StateAnonymous means the client holds no valid session.
	StateAnonymous State = "anonymous"
)

// Snapshot is an immutable view of the session, delivered to subscribers
// after every committed transition.
type Snapshot struct {
	State   State
	User    *models.User
	Loading bool
	// Err is the failure of the most recent login/register attempt,
	// cleared when a new attempt starts.
	Err error
}

// TokenRefresher exchanges the stored refresh token for a new pair.
// *api.Client satisfies it.
type TokenRefresher interface {
	Refresh(ctx context.Context) error
}

// Notifier receives user-facing failure messages. *notify.Center satisfies it.
type Notifier interface {
	Error(message string) int64
}

// UserPatch is a shallow profile update: nil fields are left untouched.
type UserPatch struct {
	FullName   *string
	Email      *string
	Avatar     *string
	CoverImage *string
	Bio        *string
	Location   *string
	Website    *string
}

// Manager drives the session state machine. All methods are safe for
// concurrent use; subscribers are invoked synchronously, without the
// internal lock held.
type Manager struct {
	auth      services.AuthService
	refresher TokenRefresher
	tokens    tokens.Repository
	notifier  Notifier
	logger    logging.Logger

	mu      sync.Mutex
	state   State
	user    *models.User
	loading bool
	err     error

	nextSub int64
	subs    map[int64]func(Snapshot)
}

// NewManager wires the session manager. All dependencies are required.
func NewManager(auth services.AuthService, refresher TokenRefresher,
	repo tokens.Repository, notifier Notifier, logger logging.Logger) *Manager {
	return &Manager{
		auth:      auth,
		refresher: refresher,
		tokens:    repo,
		notifier:  notifier,
		logger:    logger,
		state:     StateUninitialized,
		subs:      make(map[int64]func(Snapshot)),
	}
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	var user *models.User
	if m.user != nil {
		cp := *m.user
		user = &cp
	}
	return Snapshot{State: m.state, User: user, Loading: m.loading, Err: m.err}
}

// Subscribe registers fn for future transitions and returns a function that
// removes the registration. fn is not called with the current snapshot.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSub++
	id := m.nextSub
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// commit applies mutate under the lock, then notifies subscribers with the
// resulting snapshot.
func (m *Manager) commit(mutate func()) {
	m.mu.Lock()
	mutate()
	snap := m.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Bootstrap restores the session at startup. With no stored credentials it
// commits Anonymous without touching the network. Otherwise it fetches the
// current user; a 401 gets one explicit token refresh plus one re-fetch,
// any other failure gets one plain re-fetch. If the session still cannot
// be restored the credentials are cleared and the client runs Anonymous.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.commit(func() {
		m.state = StateBootstrapping
		m.loading = true
		m.err = nil
	})

	pair, err := m.tokens.Get(ctx)
	if err != nil {
		m.logger.Error(ctx, "reading stored credentials failed", "error", err)
		m.commit(m.toAnonymous)
		return err
	}
	if pair == nil {
		m.commit(m.toAnonymous)
		return nil
	}

	user, err := m.restoreUser(ctx)
	if err != nil {
		m.logger.Info(ctx, "session restore failed, starting anonymous", "error", err)
		if cerr := m.tokens.Clear(ctx); cerr != nil {
			m.logger.Error(ctx, "clearing credentials failed", "error", cerr)
		}
		m.commit(m.toAnonymous)
		return nil
	}

	m.commit(func() {
		m.state = StateAuthenticated
		m.user = user
		m.loading = false
	})
	return nil
}

// restoreUser fetches the profile with the bootstrap retry policy.
func (m *Manager) restoreUser(ctx context.Context) (*models.User, error) {
	user, err := m.auth.CurrentUser(ctx)
	if err == nil {
		return user, nil
	}

	if errors.Is(err, api.ErrUnauthorized) {
		if rerr := m.refresher.Refresh(ctx); rerr != nil {
			return nil, rerr
		}
	}
	// one retry: after a successful refresh, or for transient failures
	return m.auth.CurrentUser(ctx)
}

// Login authenticates and commits the session. The identifier may be a
// username or an email; disambiguation happens in the auth service. On
// failure any stored credentials are cleared and the user sees an error
// notification.
func (m *Manager) Login(ctx context.Context, usernameOrEmail, password string) (*models.User, error) {
	m.commit(func() {
		m.loading = true
		m.err = nil
	})

	result, err := m.auth.Login(ctx, usernameOrEmail, password)
	if err != nil {
		return nil, m.failAttempt(ctx, err, "Login failed")
	}
	return m.commitAuthenticated(ctx, result, "Login failed")
}

// Register creates an account and commits the session with the same
// contract as Login.
func (m *Manager) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	m.commit(func() {
		m.loading = true
		m.err = nil
	})

	result, err := m.auth.Register(ctx, input)
	if err != nil {
		return nil, m.failAttempt(ctx, err, "Registration failed")
	}
	return m.commitAuthenticated(ctx, result, "Registration failed")
}

// commitAuthenticated persists the issued pair, then commits Authenticated.
// The order matters: credentials on disk before the state flips. The
// fallback names the attempt (login or registration) for the failure
// notification.
func (m *Manager) commitAuthenticated(ctx context.Context, result *services.AuthResult, fallback string) (*models.User, error) {
	if err := m.tokens.Set(ctx, result.TokenPair); err != nil {
		m.logger.Error(ctx, "persisting credentials failed", "error", err)
		return nil, m.failAttempt(ctx, err, fallback)
	}

	user := result.User
	m.commit(func() {
		m.state = StateAuthenticated
		m.user = &user
		m.loading = false
	})
	return &user, nil
}

// failAttempt is the shared login/register failure path: clear credentials,
// surface a notification, commit Anonymous with the error recorded.
func (m *Manager) failAttempt(ctx context.Context, err error, fallback string) error {
	if cerr := m.tokens.Clear(ctx); cerr != nil {
		m.logger.Error(ctx, "clearing credentials failed", "error", cerr)
	}
	m.notifier.Error(failureMessage(err, fallback))
	m.commit(func() {
		m.state = StateAnonymous
		m.user = nil
		m.loading = false
		m.err = err
	})
	return err
}

// failureMessage prefers the server's own message over the generic fallback.
func failureMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Logout ends the session. The server call is best-effort: its failure is
// logged and ignored, local credentials are always cleared and the state
// always ends Anonymous.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.auth.Logout(ctx); err != nil {
		m.logger.Warn(ctx, "logout request failed", "error", err)
	}
	if err := m.tokens.Clear(ctx); err != nil {
		m.logger.Error(ctx, "clearing credentials failed", "error", err)
	}
	m.commit(m.toAnonymous)
}

// Expire drops the session locally without calling the server. The API
// client invokes it (via the app wiring) when a token refresh fails
// mid-request; the credentials are already cleared at that point.
func (m *Manager) Expire() {
	m.commit(m.toAnonymous)
}

// UpdateUser shallow-merges the patch into the in-memory profile. It is a
// no-op when the session is not Authenticated; nothing is sent upstream.
func (m *Manager) UpdateUser(patch UserPatch) {
	m.mu.Lock()
	if m.state != StateAuthenticated || m.user == nil {
		m.mu.Unlock()
		return
	}
	applyPatch(m.user, patch)
	snap := m.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func applyPatch(user *models.User, patch UserPatch) {
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.CoverImage != nil {
		user.CoverImage = *patch.CoverImage
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Location != nil {
		user.Location = *patch.Location
	}
	if patch.Website != nil {
		user.Website = *patch.Website
	}
}

// toAnonymous is the shared terminal mutation for logout/expiry/failures.
func (m *Manager) toAnonymous() {
	m.state = StateAnonymous
	m.user = nil
	m.loading = false
}
