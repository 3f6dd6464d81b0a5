// Package services contains the typed endpoint wrappers of the VidTube API.
// Each service is a thin layer over the api.Client pipeline: it shapes the
// request, names the endpoint and decodes the response into models types.
// This file defines the authentication service used by the session manager.
package services

import (
	"context"
	"strings"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/models"
)

// FileUpload is an optional file part of a multipart request. A zero value
// (empty Name) means "absent" and the field is omitted.
type FileUpload struct {
	Name    string
	Content []byte
}

func (f FileUpload) isSet() bool { return f.Name != "" }

// RegisterInput is the registration payload. Avatar and CoverImage are
// optional; everything else is required by the server.
type RegisterInput struct {
	FullName   string
	Username   string
	Email      string
	Password   string
	Avatar     FileUpload
	CoverImage FileUpload
}

// AuthResult is the payload of successful login/register responses:
// the user plus both freshly issued tokens.
type AuthResult struct {
	User models.User `json:"user"`
	models.TokenPair
}

// AuthService defines the authentication operations of the API.
//
// Contract:
//   - Login: authenticate with a username or email plus password.
//   - Register: create an account (multipart, optional images).
//   - Logout: invalidate the server-side session; requires auth.
//   - CurrentUser: fetch the authenticated profile.
//
// All methods honor context cancellation/timeouts. None of them touch the
// token store; persisting or clearing credentials is the session manager's
// job.
type AuthService interface {
	Login(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

type authService struct {
	client *api.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client *api.Client) AuthService {
	return &authService{client: client}
}

// Login posts credentials to the login endpoint. An identifier containing
// '@' is sent as the email field, anything else as the username field.
func (s *authService) Login(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error) {
	payload := map[string]string{"password": password}
	if strings.Contains(usernameOrEmail, "@") {
		payload["email"] = usernameOrEmail
	} else {
		payload["username"] = usernameOrEmail
	}

	result, err := api.Post[AuthResult](ctx, s.client, "/users/login", payload)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account. The payload is multipart: the server expects
// the field name "fullname" (not fullName) plus optional avatar/coverImage
// file parts.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	form := &api.Form{}
	form.AddField("fullname", input.FullName)
	form.AddField("username", input.Username)
	form.AddField("email", input.Email)
	form.AddField("password", input.Password)
	if input.Avatar.isSet() {
		form.AddFileBytes("avatar", input.Avatar.Name, input.Avatar.Content)
	}
	if input.CoverImage.isSet() {
		form.AddFileBytes("coverImage", input.CoverImage.Name, input.CoverImage.Content)
	}

	result, err := api.PostForm[AuthResult](ctx, s.client, "/users/register", form)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *authService) Logout(ctx context.Context) error {
	_, err := api.Post[struct{}](ctx, s.client, "/users/logout", nil)
	return err
}

func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := api.Get[models.User](ctx, s.client, "/users/current-user", nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
