package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fluxt/fluxt-api/internal/api/metrics"
	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
)

const (
	// SessionCookie carries the session id. HttpOnly; session-scoped unless
	// the login asked to be remembered.
	SessionCookie = "session"
	// RememberHeader opts a login into a persistent session. Only the exact
	// string "true" counts; anything else means a browser-session login.
	RememberHeader = "X-Remember-Me"

	principalKey = "principal"

	rememberMaxAge = 30 * 24 * 60 * 60
)

// Auth authenticates the request through the auth service (session marker
// first, Basic credentials second) and injects the resolved principal into
// the context. Unauthenticated requests fail here with a generic 401; the
// response never distinguishes unknown identifiers from wrong passwords.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var creds *ports.Credentials
			if username, pass, ok := c.Request().BasicAuth(); ok {
				creds = &ports.Credentials{Username: username, Password: pass}
			}
			remember := c.Request().Header.Get(RememberHeader) == "true"

			result, err := auth.Authenticate(c.Request().Context(), sessionID(c), creds, remember)
			if err != nil {
				if creds != nil {
					metrics.LoginsTotal.WithLabelValues(credsKind(creds), "failure").Inc()
				}
				return err
			}

			if result.SessionID != "" {
				metrics.LoginsTotal.WithLabelValues(principalKind(result.Principal), "success").Inc()
				setSessionCookie(c, result.SessionID, result.Remember)
			} else {
				metrics.SessionResumesTotal.Inc()
			}

			c.Set(principalKey, result.Principal)
			return next(c)
		}
	}
}

// RequireRoles gates a route on the principal's role: 401 when no principal
// was resolved, 403 when the role is not in the allowed set.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if _, ok := allowed[principal.Role()]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// PrincipalFrom extracts the principal injected by Auth.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	principal, ok := c.Get(principalKey).(domain.Principal)
	return principal, ok
}

// SessionID returns the session id from the request cookie, or "".
func SessionID(c echo.Context) string {
	return sessionID(c)
}

func sessionID(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setSessionCookie(c echo.Context, sid string, remember bool) {
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.MaxAge = rememberMaxAge
	}
	c.SetCookie(cookie)
}

// ClearSessionCookie expires the session cookie on logout.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func credsKind(creds *ports.Credentials) string {
	if creds.Username == domain.SuperAdminName {
		return "super_admin"
	}
	return "user"
}

func principalKind(principal domain.Principal) string {
	if principal.UserID() == "" {
		return "super_admin"
	}
	return "user"
}
