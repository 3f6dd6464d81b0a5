package cli

import (
	"context"
	"fmt"
)

// ListSubscriptions prints the channels the current user follows.
func (a *App) ListSubscriptions(ctx context.Context) error {
	subs, err := a.subscriptions.Subscriptions(ctx, "")
	if err != nil {
		return a.fail(ctx, err)
	}

	for _, s := range subs {
		if s.Channel == nil {
			continue
		}
		printlnFn(fmt.Sprintf("%s  %s", s.Channel.ID, s.Channel.Username))
	}
	return nil
}

// Subscribers prints who follows a channel.
func (a *App) Subscribers(ctx context.Context, channelID string) error {
	subs, err := a.subscriptions.Subscribers(ctx, channelID)
	if err != nil {
		return a.fail(ctx, err)
	}

	for _, s := range subs {
		if s.Subscriber == nil {
			continue
		}
		printlnFn(fmt.Sprintf("%s  %s", s.Subscriber.ID, s.Subscriber.Username))
	}
	return nil
}

// Subscribe follows a channel.
func (a *App) Subscribe(ctx context.Context, channelID string) error {
	if err := a.subscriptions.Subscribe(ctx, channelID); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Subscribed")
	return nil
}

// Unsubscribe stops following a channel.
func (a *App) Unsubscribe(ctx context.Context, channelID string) error {
	if err := a.subscriptions.Unsubscribe(ctx, channelID); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Unsubscribed")
	return nil
}

// SubscriptionStatus reports whether the current user follows a channel.
func (a *App) SubscriptionStatus(ctx context.Context, channelID string) error {
	status, err := a.subscriptions.Status(ctx, channelID)
	if err != nil {
		return a.fail(ctx, err)
	}

	if status.IsSubscribed {
		printlnFn("Subscribed")
	} else {
		printlnFn("Not subscribed")
	}
	return nil
}

// SubscriptionStats prints the follower counts of the current user's channel.
func (a *App) SubscriptionStats(ctx context.Context) error {
	stats, err := a.subscriptions.Stats(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("%d subscribers, following %d", stats.SubscriberCount, stats.SubscriptionCount))
	return nil
}

// Feed prints the latest videos from subscribed channels.
func (a *App) Feed(ctx context.Context) error {
	page, err := a.subscriptions.Feed(ctx, 0, 0)
	if err != nil {
		return a.fail(ctx, err)
	}

	for _, v := range page.Videos {
		printlnFn(formatVideo(v))
	}
	return nil
}
