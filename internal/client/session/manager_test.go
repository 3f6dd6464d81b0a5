package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/models"
	"github.com/vidtube/vidtube/internal/client/services"
	"github.com/vidtube/vidtube/internal/logging"
)

// ---- helpers ----

var errBoom = errors.New("boom")

func unauthorized() error {
	return &api.Error{StatusCode: http.StatusUnauthorized, Message: "jwt expired"}
}

// fakeAuth scripts per-call results for CurrentUser and records everything.
type fakeAuth struct {
	currentUserResults []error // nil entry means success
	currentUserCalls   int

	loginResult *services.AuthResult
	loginErr    error
	lastLoginID string

	registerResult *services.AuthResult
	registerErr    error

	logoutErr   error
	logoutCalls int
}

func (f *fakeAuth) Login(ctx context.Context, usernameOrEmail, password string) (*services.AuthResult, error) {
	f.lastLoginID = usernameOrEmail
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuth) Register(ctx context.Context, input services.RegisterInput) (*services.AuthResult, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResult, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuth) CurrentUser(ctx context.Context) (*models.User, error) {
	var err error
	if f.currentUserCalls < len(f.currentUserResults) {
		err = f.currentUserResults[f.currentUserCalls]
	}
	f.currentUserCalls++
	if err != nil {
		return nil, err
	}
	return &models.User{ID: "u1", Username: "alice"}, nil
}

type fakeRefresher struct {
	err   error
	calls int
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.calls++
	return f.err
}

type memTokens struct {
	mu         sync.Mutex
	pair       *models.TokenPair
	setErr     error
	clearCalls int
}

func (m *memTokens) Get(ctx context.Context) (*models.TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pair == nil {
		return nil, nil
	}
	cp := *m.pair
	return &cp, nil
}

func (m *memTokens) Set(ctx context.Context, pair models.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.pair = &pair
	return nil
}

func (m *memTokens) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	m.pair = nil
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Error(message string) int64 {
	f.messages = append(f.messages, message)
	return int64(len(f.messages))
}

type fixture struct {
	auth      *fakeAuth
	refresher *fakeRefresher
	tokens    *memTokens
	notifier  *fakeNotifier
	manager   *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		auth:      &fakeAuth{},
		refresher: &fakeRefresher{},
		tokens:    &memTokens{},
		notifier:  &fakeNotifier{},
	}
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	f.manager = NewManager(f.auth, f.refresher, f.tokens, f.notifier, logger)
	return f
}

func storedPair(f *fixture) {
	f.tokens.pair = &models.TokenPair{AccessToken: "a", RefreshToken: "r"}
}

// ---- TESTS ----

func TestBootstrap_NoTokens_AnonymousWithoutNetwork(t *testing.T) {
	f := newFixture(t)

	var states []State
	f.manager.Subscribe(func(s Snapshot) { states = append(states, s.State) })

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.False(t, snap.Loading)
	assert.Zero(t, f.auth.currentUserCalls, "no network call without credentials")
	assert.Equal(t, []State{StateBootstrapping, StateAnonymous}, states)
}

func TestBootstrap_ValidTokens_Authenticated(t *testing.T) {
	f := newFixture(t)
	storedPair(f)

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "alice", snap.User.Username)
	assert.Equal(t, 1, f.auth.currentUserCalls)
	assert.Zero(t, f.refresher.calls)
}

func TestBootstrap_UnauthorizedThenRefreshRecovers(t *testing.T) {
	f := newFixture(t)
	storedPair(f)
	f.auth.currentUserResults = []error{unauthorized(), nil}

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, 1, f.refresher.calls)
	assert.Equal(t, 2, f.auth.currentUserCalls)
	assert.NotNil(t, f.tokens.pair, "credentials survive a recovered bootstrap")
}

func TestBootstrap_RefreshFails_ClearsAndGoesAnonymous(t *testing.T) {
	f := newFixture(t)
	storedPair(f)
	f.auth.currentUserResults = []error{unauthorized()}
	f.refresher.err = errBoom

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, f.tokens.pair)
	assert.Equal(t, 1, f.auth.currentUserCalls, "no re-fetch after a failed refresh")
}

func TestBootstrap_TransientFailure_OneRetry(t *testing.T) {
	f := newFixture(t)
	storedPair(f)
	f.auth.currentUserResults = []error{api.ErrUnavailable, nil}

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, 2, f.auth.currentUserCalls)
	assert.Zero(t, f.refresher.calls, "non-401 failures do not refresh")
}

func TestBootstrap_RetryAlsoFails_ClearsAndGoesAnonymous(t *testing.T) {
	f := newFixture(t)
	storedPair(f)
	f.auth.currentUserResults = []error{api.ErrUnavailable, api.ErrUnavailable}

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, f.tokens.pair)
	assert.Equal(t, 2, f.auth.currentUserCalls)
}

func TestLogin_Success_PersistsPairBeforeCommit(t *testing.T) {
	f := newFixture(t)
	f.auth.loginResult = &services.AuthResult{
		User:      models.User{ID: "u1", Username: "alice"},
		TokenPair: models.TokenPair{AccessToken: "a1", RefreshToken: "r1"},
	}

	var pairAtCommit *models.TokenPair
	f.manager.Subscribe(func(s Snapshot) {
		if s.State == StateAuthenticated {
			pairAtCommit, _ = f.tokens.Get(context.Background())
		}
	})

	user, err := f.manager.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	require.NotNil(t, pairAtCommit, "tokens stored before the state flips")
	assert.Equal(t, "a1", pairAtCommit.AccessToken)
	assert.Equal(t, StateAuthenticated, f.manager.Snapshot().State)
}

func TestLogin_Failure_ClearsTokensAndNotifies(t *testing.T) {
	f := newFixture(t)
	storedPair(f)
	f.auth.loginErr = &api.Error{StatusCode: http.StatusUnauthorized, Message: "Invalid user credentials"}

	user, err := f.manager.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Nil(t, user)

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.ErrorIs(t, snap.Err, err)
	assert.Nil(t, f.tokens.pair)
	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, "Invalid user credentials", f.notifier.messages[0])
}

func TestLogin_Failure_GenericFallbackMessage(t *testing.T) {
	f := newFixture(t)
	f.auth.loginErr = errBoom

	_, err := f.manager.Login(context.Background(), "alice", "pw")
	require.Error(t, err)

	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, "Login failed", f.notifier.messages[0])
}

func TestRegister_FailureUsesRegistrationFallback(t *testing.T) {
	f := newFixture(t)
	f.auth.registerErr = errBoom

	_, err := f.manager.Register(context.Background(), services.RegisterInput{Username: "alice"})
	require.Error(t, err)

	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, "Registration failed", f.notifier.messages[0])
}

// A persistence failure after a successful register is still a registration
// failure from the user's point of view.
func TestRegister_PersistFailureUsesRegistrationFallback(t *testing.T) {
	f := newFixture(t)
	f.auth.registerResult = &services.AuthResult{
		User:      models.User{ID: "u1", Username: "alice"},
		TokenPair: models.TokenPair{AccessToken: "a", RefreshToken: "r"},
	}
	f.tokens.setErr = errBoom

	_, err := f.manager.Register(context.Background(), services.RegisterInput{Username: "alice"})
	require.Error(t, err)

	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, "Registration failed", f.notifier.messages[0])
	assert.Equal(t, StateAnonymous, f.manager.Snapshot().State)
}

// Logout always ends Anonymous with cleared credentials, even when the
// server call fails.
func TestLogout_ServerFailureStillClearsLocally(t *testing.T) {
	f := newFixture(t)
	storedPair(f)
	f.auth.logoutErr = errBoom
	f.manager.commit(func() {
		f.manager.state = StateAuthenticated
		f.manager.user = &models.User{ID: "u1"}
	})

	f.manager.Logout(context.Background())

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Nil(t, f.tokens.pair)
	assert.Equal(t, 1, f.auth.logoutCalls)
}

func TestUpdateUser_ShallowMerge(t *testing.T) {
	f := newFixture(t)
	f.manager.commit(func() {
		f.manager.state = StateAuthenticated
		f.manager.user = &models.User{ID: "u1", Username: "alice", FullName: "Alice", Email: "alice@x.com"}
	})

	var notified *Snapshot
	f.manager.Subscribe(func(s Snapshot) { notified = &s })

	name := "Alice Smith"
	bio := "hi"
	f.manager.UpdateUser(UserPatch{FullName: &name, Bio: &bio})

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "Alice Smith", snap.User.FullName)
	assert.Equal(t, "hi", snap.User.Bio)
	assert.Equal(t, "alice@x.com", snap.User.Email, "untouched fields survive")
	require.NotNil(t, notified)
	assert.Equal(t, "Alice Smith", notified.User.FullName)
}

func TestUpdateUser_NoOpWhenAnonymous(t *testing.T) {
	f := newFixture(t)
	f.manager.commit(f.manager.toAnonymous)

	called := false
	f.manager.Subscribe(func(Snapshot) { called = true })

	name := "x"
	f.manager.UpdateUser(UserPatch{FullName: &name})

	assert.False(t, called)
	assert.Nil(t, f.manager.Snapshot().User)
}

func TestSubscribe_UnsubscribeStopsNotifications(t *testing.T) {
	f := newFixture(t)

	count := 0
	unsubscribe := f.manager.Subscribe(func(Snapshot) { count++ })

	f.manager.Expire()
	assert.Equal(t, 1, count)

	unsubscribe()
	f.manager.Expire()
	assert.Equal(t, 1, count)
}

func TestSnapshot_ReturnsCopyOfUser(t *testing.T) {
	f := newFixture(t)
	f.manager.commit(func() {
		f.manager.state = StateAuthenticated
		f.manager.user = &models.User{ID: "u1", Username: "alice"}
	})

	snap := f.manager.Snapshot()
	snap.User.Username = "mallory"

	assert.Equal(t, "alice", f.manager.Snapshot().User.Username)
}
