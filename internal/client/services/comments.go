package services

import (
	"context"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/models"
)

// CommentService covers video comment threads. Creation posts to the
// collection root with the video id in the body; deletion addresses the
// comment id directly.
type CommentService interface {
	ByVideo(ctx context.Context, videoID string) ([]models.Comment, error)
	Create(ctx context.Context, videoID, content string) (*models.Comment, error)
	Delete(ctx context.Context, commentID string) error
}

type commentService struct {
	client *api.Client
}

func NewCommentService(client *api.Client) CommentService {
	return &commentService{client: client}
}

func (s *commentService) ByVideo(ctx context.Context, videoID string) ([]models.Comment, error) {
	return api.Get[[]models.Comment](ctx, s.client, "/comments/video/"+videoID, nil)
}

func (s *commentService) Create(ctx context.Context, videoID, content string) (*models.Comment, error) {
	payload := map[string]string{"videoId": videoID, "content": content}
	comment, err := api.Post[models.Comment](ctx, s.client, "/comments", payload)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *commentService) Delete(ctx context.Context, commentID string) error {
	_, err := api.Delete[struct{}](ctx, s.client, "/comments/"+commentID)
	return err
}
