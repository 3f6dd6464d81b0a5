package models

// Comment is a user comment attached to a video.
type Comment struct {
	ID        string `json:"_id"`
	Content   string `json:"content"`
	Video     string `json:"video,omitempty"`
	Owner     *User  `json:"owner,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// LikeStatus is the like summary of a video: the total count plus whether
// the requesting user is among the likers.
type LikeStatus struct {
	IsLiked   bool `json:"isLiked"`
	LikeCount int  `json:"likesCount"`
}
