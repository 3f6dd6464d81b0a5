package services

import (
	"context"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/models"
)

type PlaylistService interface {
	Create(ctx context.Context, name, description string) (*models.Playlist, error)
	Get(ctx context.Context, id string) (*models.Playlist, error)
	ByUser(ctx context.Context, userID string) ([]models.Playlist, error)
	Update(ctx context.Context, id, name, description string) (*models.Playlist, error)
	Delete(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) (*models.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, videoID string) (*models.Playlist, error)
}

type playlistService struct {
	client *api.Client
}

func NewPlaylistService(client *api.Client) PlaylistService {
	return &playlistService{client: client}
}

func (s *playlistService) Create(ctx context.Context, name, description string) (*models.Playlist, error) {
	payload := map[string]string{"name": name, "description": description}
	playlist, err := api.Post[models.Playlist](ctx, s.client, "/playlists", payload)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *playlistService) Get(ctx context.Context, id string) (*models.Playlist, error) {
	playlist, err := api.Get[models.Playlist](ctx, s.client, "/playlists/"+id, nil)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *playlistService) ByUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	return api.Get[[]models.Playlist](ctx, s.client, "/playlists/user/"+userID, nil)
}

func (s *playlistService) Update(ctx context.Context, id, name, description string) (*models.Playlist, error) {
	payload := map[string]string{"name": name, "description": description}
	playlist, err := api.Patch[models.Playlist](ctx, s.client, "/playlists/"+id, payload)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, id string) error {
	_, err := api.Delete[struct{}](ctx, s.client, "/playlists/"+id)
	return err
}

// AddVideo / RemoveVideo use the server's positional route layout:
// /playlists/{add|remove}/{videoId}/{playlistId}.

func (s *playlistService) AddVideo(ctx context.Context, playlistID, videoID string) (*models.Playlist, error) {
	playlist, err := api.Patch[models.Playlist](ctx, s.client, "/playlists/add/"+videoID+"/"+playlistID, nil)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, videoID string) (*models.Playlist, error) {
	playlist, err := api.Patch[models.Playlist](ctx, s.client, "/playlists/remove/"+videoID+"/"+playlistID, nil)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}
