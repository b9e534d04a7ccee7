package ports

import (
	"context"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// Credentials is a Basic-auth username/password pair. A nil *Credentials
// means the request carried no credentials at all.
type Credentials struct {
	Username string
	Password string
}

// AuthResult is a successful authentication outcome. SessionID is non-empty
// only when fresh credentials were promoted into a new session marker; the
// transport layer then sets the session cookie.
type AuthResult struct {
	Principal domain.Principal
	SessionID string
	Remember  bool
}

// AuthService is the single authentication gate for every protected route.
type AuthService interface {
	// Authenticate resolves a principal from an existing session marker or,
	// failing that, from Basic credentials. Returns domain.ErrUnauthorized
	// when neither yields a principal.
	Authenticate(ctx context.Context, sid string, creds *Credentials, remember bool) (*AuthResult, error)
	// Deauthenticate drops the session marker. Idempotent.
	Deauthenticate(ctx context.Context, sid string) error
}
