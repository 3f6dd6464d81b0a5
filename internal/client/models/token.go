package models

// TokenPair holds the two opaque credentials issued by the server.
// Both are present together or both absent; a partially populated pair is
// never stored (see the tokens repository).
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
