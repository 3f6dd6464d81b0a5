// Package tokens persists the access/refresh credential pair in the client's
// local database. Tokens are opaque strings here; only the session layer
// interprets their semantics (via server responses).
package tokens

import (
	"context"

	"github.com/vidtube/vidtube/internal/client/models"
)

// Repository stores exactly one credential pair.
//
// Contract:
//   - Get returns (nil, nil) when the client holds no credentials. A pair
//     with only one of the two tokens present is treated as corrupt: both
//     are cleared and (nil, nil) is returned.
//   - Set writes both tokens in a single transaction.
//   - Clear removes both tokens; it is a no-op on an empty store.
type Repository interface {
	Get(ctx context.Context) (*models.TokenPair, error)
	Set(ctx context.Context, pair models.TokenPair) error
	Clear(ctx context.Context) error
}
