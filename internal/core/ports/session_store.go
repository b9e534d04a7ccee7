package ports

import (
	"context"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// SessionStore holds login markers keyed by the session id carried in the
// client's cookie. Get returns (nil, nil) when no marker exists. Put writes
// exactly one marker for the session; remember selects the long-lived span.
// Delete is idempotent.
type SessionStore interface {
	Get(ctx context.Context, sid string) (*domain.SessionMarker, error)
	Put(ctx context.Context, sid string, marker domain.SessionMarker, remember bool) error
	Delete(ctx context.Context, sid string) error
}
