package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
	"github.com/fluxt/fluxt-api/internal/pkg/password"
)

// AuthService is the authentication gate. Resolution order is fixed: an
// existing session marker always wins over fresh credentials, and among
// credentials the configured super admin is matched before any stored user,
// so a user registered under the admin identifier can never shadow it.
type AuthService struct {
	users         ports.UserRepository
	sessions      ports.SessionStore
	hasher        *password.Hasher
	adminPassword string
	logger        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	hasher *password.Hasher,
	adminPassword string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:         users,
		sessions:      sessions,
		hasher:        hasher,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

// Authenticate resolves the request's principal. A marker hit never re-checks
// credentials; a fresh credential success establishes a new session marker
// and reports its id for the cookie. Everything else is ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, sid string, creds *ports.Credentials, remember bool) (*ports.AuthResult, error) {
	if sid != "" {
		marker, err := s.sessions.Get(ctx, sid)
		if err != nil {
			return nil, err
		}
		if marker != nil {
			if principal := s.resolveMarker(ctx, marker); principal != nil {
				return &ports.AuthResult{Principal: principal}, nil
			}
			// Stale marker (deleted or disabled user): drop it and fall
			// through to credentials.
			_ = s.sessions.Delete(ctx, sid)
		}
	}

	if creds == nil {
		return nil, domain.ErrUnauthorized
	}

	principal := s.resolveSuperAdmin(creds.Username, creds.Password)
	if principal == nil {
		principal = s.resolveUser(ctx, creds.Username, creds.Password)
	}
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}

	return s.establish(ctx, principal, remember)
}

// Deauthenticate removes the session marker. Unknown sessions are fine.
func (s *AuthService) Deauthenticate(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}

// resolveMarker re-resolves the full principal from a stored marker without
// any credential check. Returns nil when the marker no longer maps to an
// authenticatable principal.
func (s *AuthService) resolveMarker(ctx context.Context, marker *domain.SessionMarker) domain.Principal {
	if marker.Admin {
		return domain.SuperAdmin{}
	}
	if marker.UserID == "" {
		return nil
	}

	user, err := s.users.FindByID(ctx, marker.UserID)
	if err != nil || !user.Enabled {
		return nil
	}
	return domain.UserPrincipal{User: user}
}

func (s *AuthService) resolveSuperAdmin(username, pass string) domain.Principal {
	nameOK := subtle.ConstantTimeCompare([]byte(username), []byte(domain.SuperAdminName))
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.adminPassword))
	if nameOK&passOK != 1 {
		return nil
	}
	return domain.SuperAdmin{}
}

func (s *AuthService) resolveUser(ctx context.Context, email, pass string) domain.Principal {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil
	}
	if !user.Enabled || !s.hasher.Verify(pass, user.PasswordHash) {
		return nil
	}
	return domain.UserPrincipal{User: user}
}

func (s *AuthService) establish(ctx context.Context, principal domain.Principal, remember bool) (*ports.AuthResult, error) {
	marker := domain.SessionMarker{}
	if principal.UserID() == "" {
		marker.Admin = true
	} else {
		marker.UserID = principal.UserID()
	}

	sid := uuid.NewString()
	if err := s.sessions.Put(ctx, sid, marker, remember); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("principal", principal.AuthInfo().Email).
		Bool("remember", remember).
		Msg("session established")

	return &ports.AuthResult{Principal: principal, SessionID: sid, Remember: remember}, nil
}
