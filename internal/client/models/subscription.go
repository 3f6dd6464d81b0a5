package models

// Subscription links a subscriber to a channel.
type Subscription struct {
	ID         string `json:"_id"`
	Subscriber *User  `json:"subscriber,omitempty"`
	Channel    *User  `json:"channel,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// SubscriptionStatus reports whether the current user follows a channel.
type SubscriptionStatus struct {
	IsSubscribed bool `json:"isSubscribed"`
}

// SubscriptionStats summarizes the current user's subscription activity.
type SubscriptionStats struct {
	SubscriptionCount int `json:"subscriptionsCount"`
	SubscriberCount   int `json:"subscribersCount"`
}
