package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
)

// UserHandler exposes administrator user management and the public
// password-action token endpoints.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  map[string][]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected_json")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	user, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
		Enabled:   enabled,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: user.ID})
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  userListResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := userListResponse{Users: make([]userResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update handles PUT /users/:id with a partial payload.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected_json")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Enabled:   req.Enabled,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SendCreatedEmail handles POST /users/:id/send-created-email.
//
// @Summary      Re-send the account invite email
// @Tags         users
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/send-created-email [post]
func (h *UserHandler) SendCreatedEmail(c echo.Context) error {
	if err := h.users.SendCreatedEmail(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PasswordTokenState handles GET /set-password/:token. 204 means the token is
// valid and the password not yet chosen.
//
// @Summary      Check a set-password token
// @Tags         password
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /set-password/{token} [get]
func (h *UserHandler) PasswordTokenState(c echo.Context) error {
	if err := h.users.PasswordTokenState(c.Request().Context(), c.Param("token")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetPassword handles POST /set-password/:token.
//
// @Summary      Set the initial password
// @Tags         password
// @Accept       json
// @Param        body  body  passwordRequest  true  "New password"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /set-password/{token} [post]
func (h *UserHandler) SetPassword(c echo.Context) error {
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected_json")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.users.SetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SendResetEmail handles GET /reset-password/:email.
//
// @Summary      Send a password reset email
// @Tags         password
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /reset-password/{email} [get]
func (h *UserHandler) SendResetEmail(c echo.Context) error {
	if err := h.users.SendResetEmail(c.Request().Context(), c.Param("email")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword handles POST /reset-password/:token. Unlike the set-password
// flow there is no already-set guard.
//
// @Summary      Reset the password
// @Tags         password
// @Accept       json
// @Param        body  body  passwordRequest  true  "New password"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /reset-password/{token} [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected_json")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.users.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
