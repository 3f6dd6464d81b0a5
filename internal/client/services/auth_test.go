package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/models"
)

// ---- helpers ----

// memTokens is a minimal in-memory tokens.Repository; endpoint tests do not
// exercise the refresh path, they only need the pipeline to construct.
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

func newClient(t *testing.T, baseURL string) *api.Client {
	t.Helper()
	c, err := api.New(api.Options{BaseURL: baseURL, Tokens: &memTokens{}})
	require.NoError(t, err)
	return c
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusCode": status,
		"data":       data,
		"message":    "ok",
		"success":    true,
	})
}

// ---- TESTS ----

// Identifier disambiguation: an '@' means email, anything else username.
func TestLogin_SendsEmailOrUsernameField(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantField  string
		absent     string
	}{
		{name: "email identifier", identifier: "user@x.com", wantField: "email", absent: "username"},
		{name: "username identifier", identifier: "alice", wantField: "username", absent: "email"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got map[string]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/users/login", r.URL.Path)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				writeData(w, http.StatusOK, AuthResult{
					User:      models.User{ID: "u1", Username: "alice"},
					TokenPair: models.TokenPair{AccessToken: "a", RefreshToken: "r"},
				})
			}))
			defer srv.Close()

			svc := NewAuthService(newClient(t, srv.URL))

			result, err := svc.Login(context.Background(), tc.identifier, "pw")
			require.NoError(t, err)

			assert.Equal(t, tc.identifier, got[tc.wantField])
			assert.Equal(t, "pw", got["password"])
			_, present := got[tc.absent]
			assert.False(t, present, "field %q must not be sent", tc.absent)

			assert.Equal(t, "alice", result.User.Username)
			assert.Equal(t, "a", result.AccessToken)
			assert.Equal(t, "r", result.RefreshToken)
		})
	}
}

func TestRegister_MultipartFieldsAndFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/register", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		// the server expects "fullname", not "fullName"
		assert.Equal(t, "Alice Smith", r.FormValue("fullname"))
		assert.Equal(t, "alice", r.FormValue("username"))
		assert.Equal(t, "alice@x.com", r.FormValue("email"))
		assert.Equal(t, "pw", r.FormValue("password"))

		_, _, err := r.FormFile("avatar")
		assert.NoError(t, err)
		_, _, err = r.FormFile("coverImage")
		assert.Error(t, err, "absent optional file must not be sent")

		writeData(w, http.StatusCreated, AuthResult{
			User:      models.User{ID: "u1", Username: "alice"},
			TokenPair: models.TokenPair{AccessToken: "a", RefreshToken: "r"},
		})
	}))
	defer srv.Close()

	svc := NewAuthService(newClient(t, srv.URL))

	result, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Alice Smith",
		Username: "alice",
		Email:    "alice@x.com",
		Password: "pw",
		Avatar:   FileUpload{Name: "me.png", Content: []byte{1, 2, 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", result.User.ID)
}

func TestLogout_PostsToLogoutEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeData(w, http.StatusOK, map[string]any{})
	}))
	defer srv.Close()

	svc := NewAuthService(newClient(t, srv.URL))

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, "/users/logout", gotPath)
}

func TestCurrentUser_DecodesProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/current-user", r.URL.Path)
		writeData(w, http.StatusOK, models.User{ID: "u1", Username: "alice", Email: "alice@x.com"})
	}))
	defer srv.Close()

	svc := NewAuthService(newClient(t, srv.URL))

	user, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email)
}
