package models

// Video is a published (or draft) video as returned by the server.
type Video struct {
	ID          string  `json:"_id"`
	VideoFile   string  `json:"videoFile"`
	Thumbnail   string  `json:"thumbnail"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Views       int     `json:"views"`
	IsPublished bool    `json:"isPublished"`
	Owner       *User   `json:"owner,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// VideoPage is one page of a video listing.
type VideoPage struct {
	Videos     []Video `json:"videos"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int     `json:"totalVideos"`
	TotalPages int     `json:"totalPages"`
}
