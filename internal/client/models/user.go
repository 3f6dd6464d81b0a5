// Package models defines the data types exchanged with the VidTube API.
// Fields mirror the server's JSON representation; the client passes profile
// data through without interpreting it.
package models

// User is the authenticated profile returned by the server.
type User struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Location   string `json:"location,omitempty"`
	Website    string `json:"website,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// ChannelProfile is a public channel page: the channel owner's profile plus
// aggregate counters and the viewer's subscription status.
type ChannelProfile struct {
	User
	SubscriberCount   int  `json:"subscribersCount"`
	SubscribedToCount int  `json:"channelsSubscribedToCount"`
	IsSubscribed      bool `json:"isSubscribed"`
}
