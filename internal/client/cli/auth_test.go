package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/vidtube/vidtube/internal/client/models"
	"github.com/vidtube/vidtube/internal/client/notify"
	"github.com/vidtube/vidtube/internal/client/services"
	"github.com/vidtube/vidtube/internal/client/session"
	"github.com/vidtube/vidtube/internal/logging"
)

func stubInputs(t *testing.T, answers []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		i++
		return answer, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

type fakeAuth struct {
	loginID   string
	loginPass string
	loginErr  error

	regInput services.RegisterInput
	regErr   error

	logoutCalled bool
}

func (f *fakeAuth) Login(_ context.Context, usernameOrEmail, password string) (*services.AuthResult, error) {
	f.loginID, f.loginPass = usernameOrEmail, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.AuthResult{
		User:      models.User{ID: "u1", Username: "alice"},
		TokenPair: models.TokenPair{AccessToken: "a", RefreshToken: "r"},
	}, nil
}

func (f *fakeAuth) Register(_ context.Context, input services.RegisterInput) (*services.AuthResult, error) {
	f.regInput = input
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &services.AuthResult{
		User:      models.User{ID: "u1", Username: input.Username},
		TokenPair: models.TokenPair{AccessToken: "a", RefreshToken: "r"},
	}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return nil
}

func (f *fakeAuth) CurrentUser(context.Context) (*models.User, error) {
	return &models.User{ID: "u1", Username: "alice"}, nil
}

type memTokens struct {
	mu   sync.Mutex
	pair *models.TokenPair
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
	m.pair = &pair
	return nil
}

func (m *memTokens) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = nil
	return nil
}

type noRefresh struct{}

func (noRefresh) Refresh(context.Context) error { return nil }

func newTestApp(t *testing.T, auth *fakeAuth) (*App, *memTokens) {
	t.Helper()
	repo := &memTokens{}
	notifications := notify.NewCenter()
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	manager := session.NewManager(auth, noRefresh{}, repo, notifications, logger)
	return &App{
		session:       manager,
		notifications: notifications,
		logger:        logger,
	}, repo
}

func TestLogin_Success(t *testing.T) {
	silencePrintln(t)
	f := &fakeAuth{}
	a, repo := newTestApp(t, f)

	restore := stubInputs(t, []string{"alice"}, []byte("secret"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginID != "alice" || f.loginPass != "secret" {
		t.Fatalf("credentials mismatch: %q / %q", f.loginID, f.loginPass)
	}
	if !a.isLoggedIn() {
		t.Fatal("session not authenticated")
	}
	if repo.pair == nil || repo.pair.AccessToken != "a" {
		t.Fatalf("tokens not persisted: %+v", repo.pair)
	}
}

func TestRegister_CollectsInput(t *testing.T) {
	silencePrintln(t)
	f := &fakeAuth{}
	a, _ := newTestApp(t, f)

	// prompts: full name, username, email, avatar path, cover path
	restore := stubInputs(t, []string{"Alice Smith", "alice", "alice@x.com", "", ""}, []byte("secret"))
	defer restore()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if f.regInput.FullName != "Alice Smith" || f.regInput.Username != "alice" {
		t.Fatalf("input mismatch: %+v", f.regInput)
	}
	if f.regInput.Avatar.Name != "" {
		t.Fatalf("unexpected avatar: %+v", f.regInput.Avatar)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	silencePrintln(t)
	f := &fakeAuth{}
	a, repo := newTestApp(t, f)

	restore := stubInputs(t, []string{"alice"}, []byte("secret"))
	defer restore()
	if err := a.Login(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !f.logoutCalled {
		t.Fatal("server logout not called")
	}
	if a.isLoggedIn() {
		t.Fatal("still authenticated")
	}
	if repo.pair != nil {
		t.Fatal("tokens not cleared")
	}
}
