package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/models"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, channelID string) error
	Unsubscribe(ctx context.Context, channelID string) error
	Subscriptions(ctx context.Context, subscriberID string) ([]models.Subscription, error)
	Subscribers(ctx context.Context, channelID string) ([]models.Subscription, error)
	Status(ctx context.Context, channelID string) (*models.SubscriptionStatus, error)
	Feed(ctx context.Context, page, limit int) (*models.VideoPage, error)
	Stats(ctx context.Context) (*models.SubscriptionStats, error)
}

type subscriptionService struct {
	client *api.Client
}

func NewSubscriptionService(client *api.Client) SubscriptionService {
	return &subscriptionService{client: client}
}

func (s *subscriptionService) Subscribe(ctx context.Context, channelID string) error {
	_, err := api.Post[struct{}](ctx, s.client, "/subscriptions/c/"+channelID, nil)
	return err
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, channelID string) error {
	_, err := api.Delete[struct{}](ctx, s.client, "/subscriptions/c/"+channelID)
	return err
}

// Subscriptions lists the channels subscriberID follows. An empty id asks
// for the current user's subscriptions ("me").
func (s *subscriptionService) Subscriptions(ctx context.Context, subscriberID string) ([]models.Subscription, error) {
	if subscriberID == "" {
		subscriberID = "me"
	}
	return api.Get[[]models.Subscription](ctx, s.client, "/subscriptions/u/"+subscriberID, nil)
}

func (s *subscriptionService) Subscribers(ctx context.Context, channelID string) ([]models.Subscription, error) {
	return api.Get[[]models.Subscription](ctx, s.client, "/subscriptions/c/"+channelID, nil)
}

func (s *subscriptionService) Status(ctx context.Context, channelID string) (*models.SubscriptionStatus, error) {
	status, err := api.Get[models.SubscriptionStatus](ctx, s.client, "/subscriptions/check/"+channelID, nil)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *subscriptionService) Feed(ctx context.Context, page, limit int) (*models.VideoPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	feed, err := api.Get[models.VideoPage](ctx, s.client, "/subscriptions/feed", q)
	if err != nil {
		return nil, err
	}
	return &feed, nil
}

func (s *subscriptionService) Stats(ctx context.Context) (*models.SubscriptionStats, error) {
	stats, err := api.Get[models.SubscriptionStats](ctx, s.client, "/subscriptions/stats", nil)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
