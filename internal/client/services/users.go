package services

import (
	"context"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/models"
)

// UpdateAccountInput carries the editable profile fields. Empty strings are
// left out of the request so the server keeps the current values.
type UpdateAccountInput struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
}

// UserService covers account maintenance and channel/profile reads.
type UserService interface {
	UpdateAccount(ctx context.Context, input UpdateAccountInput) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	UpdateAvatar(ctx context.Context, avatar FileUpload) (*models.User, error)
	UpdateCoverImage(ctx context.Context, cover FileUpload) (*models.User, error)
	ChannelProfile(ctx context.Context, username string) (*models.ChannelProfile, error)
	WatchHistory(ctx context.Context) ([]models.Video, error)
}

type userService struct {
	client *api.Client
}

func NewUserService(client *api.Client) UserService {
	return &userService{client: client}
}

func (s *userService) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*models.User, error) {
	user, err := api.Patch[models.User](ctx, s.client, "/users/update-account", input)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	payload := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	_, err := api.Post[struct{}](ctx, s.client, "/users/change-password", payload)
	return err
}

func (s *userService) UpdateAvatar(ctx context.Context, avatar FileUpload) (*models.User, error) {
	form := &api.Form{}
	form.AddFileBytes("avatar", avatar.Name, avatar.Content)

	user, err := api.PatchForm[models.User](ctx, s.client, "/users/avatar", form)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateCoverImage(ctx context.Context, cover FileUpload) (*models.User, error) {
	form := &api.Form{}
	form.AddFileBytes("coverImage", cover.Name, cover.Content)

	user, err := api.PatchForm[models.User](ctx, s.client, "/users/cover-image", form)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) ChannelProfile(ctx context.Context, username string) (*models.ChannelProfile, error) {
	profile, err := api.Get[models.ChannelProfile](ctx, s.client, "/users/c/"+username, nil)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *userService) WatchHistory(ctx context.Context) ([]models.Video, error) {
	return api.Get[[]models.Video](ctx, s.client, "/users/history", nil)
}
