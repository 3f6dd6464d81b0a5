package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/models"
)

// ListVideosOptions are the optional query parameters of the video listing.
type ListVideosOptions struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

func (o ListVideosOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Query != "" {
		q.Set("query", o.Query)
	}
	if o.SortBy != "" {
		q.Set("sortBy", o.SortBy)
	}
	if o.SortType != "" {
		q.Set("sortType", o.SortType)
	}
	if o.UserID != "" {
		q.Set("userId", o.UserID)
	}
	return q
}

// PublishVideoInput is the multipart payload for uploading a new video.
type PublishVideoInput struct {
	Title       string
	Description string
	VideoFile   FileUpload
	Thumbnail   FileUpload
}

// UpdateVideoInput carries the editable video details (JSON patch).
type UpdateVideoInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type VideoService interface {
	List(ctx context.Context, opts ListVideosOptions) (*models.VideoPage, error)
	Get(ctx context.Context, id string) (*models.Video, error)
	Publish(ctx context.Context, input PublishVideoInput) (*models.Video, error)
	Update(ctx context.Context, id string, input UpdateVideoInput) (*models.Video, error)
	Delete(ctx context.Context, id string) error
}

type videoService struct {
	client *api.Client
}

func NewVideoService(client *api.Client) VideoService {
	return &videoService{client: client}
}

func (s *videoService) List(ctx context.Context, opts ListVideosOptions) (*models.VideoPage, error) {
	page, err := api.Get[models.VideoPage](ctx, s.client, "/videos", opts.values())
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *videoService) Get(ctx context.Context, id string) (*models.Video, error) {
	video, err := api.Get[models.Video](ctx, s.client, "/videos/"+id, nil)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *videoService) Publish(ctx context.Context, input PublishVideoInput) (*models.Video, error) {
	form := &api.Form{}
	form.AddField("title", input.Title)
	form.AddField("description", input.Description)
	form.AddFileBytes("videoFile", input.VideoFile.Name, input.VideoFile.Content)
	if input.Thumbnail.isSet() {
		form.AddFileBytes("thumbnail", input.Thumbnail.Name, input.Thumbnail.Content)
	}

	video, err := api.PostForm[models.Video](ctx, s.client, "/videos", form)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *videoService) Update(ctx context.Context, id string, input UpdateVideoInput) (*models.Video, error) {
	video, err := api.Patch[models.Video](ctx, s.client, "/videos/"+id, input)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *videoService) Delete(ctx context.Context, id string) error {
	_, err := api.Delete[struct{}](ctx, s.client, "/videos/"+id)
	return err
}
