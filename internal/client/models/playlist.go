package models

// Playlist groups videos under a name; Videos may be id references or
// populated documents depending on the endpoint.
type Playlist struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Owner       *User   `json:"owner,omitempty"`
	Videos      []Video `json:"videos,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}
