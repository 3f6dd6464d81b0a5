package services

import (
	"context"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/models"
)

// LikeService covers video likes. Liking is not a toggle: like and unlike
// are separate calls carrying the video id in the body.
type LikeService interface {
	VideoLikes(ctx context.Context, videoID string) (*models.LikeStatus, error)
	LikeVideo(ctx context.Context, videoID string) error
	UnlikeVideo(ctx context.Context, videoID string) error
}

type likeService struct {
	client *api.Client
}

func NewLikeService(client *api.Client) LikeService {
	return &likeService{client: client}
}

func (s *likeService) VideoLikes(ctx context.Context, videoID string) (*models.LikeStatus, error) {
	status, err := api.Get[models.LikeStatus](ctx, s.client, "/likes/video/"+videoID, nil)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *likeService) LikeVideo(ctx context.Context, videoID string) error {
	payload := map[string]string{"videoId": videoID}
	_, err := api.Post[struct{}](ctx, s.client, "/likes/like", payload)
	return err
}

func (s *likeService) UnlikeVideo(ctx context.Context, videoID string) error {
	payload := map[string]string{"videoId": videoID}
	_, err := api.Post[struct{}](ctx, s.client, "/likes/unlike", payload)
	return err
}
