package ports

import "github.com/fluxt/fluxt-api/internal/core/domain"

// Mailer delivers transactional mail. Calls are fire-and-forget from the
// caller's perspective: implementations deliver asynchronously and log
// failures instead of surfacing them.
type Mailer interface {
	// SendUserCreated invites a freshly created user to set their password.
	SendUserCreated(user *domain.User, token string)
	// SendPasswordReset sends a password reset link.
	SendPasswordReset(user *domain.User, token string)
}
