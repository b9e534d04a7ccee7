package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fluxt/fluxt-api/internal/api/middleware"
	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
)

// AuthHandler exposes the GET /auth and GET /deauth endpoints.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Info returns the authenticated principal's identity.
//
// @Summary      Who am I
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.AuthInfo
// @Failure      401  {object}  map[string]string
// @Router       /auth [get]
func (h *AuthHandler) Info(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, principal.AuthInfo())
}

// Deauth clears the session. Always succeeds, even without one.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /deauth [get]
func (h *AuthHandler) Deauth(c echo.Context) error {
	if err := h.auth.Deauthenticate(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return err
	}
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}
