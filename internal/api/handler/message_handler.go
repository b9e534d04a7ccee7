package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fluxt/fluxt-api/internal/core/ports"
)

// MessageHandler exposes the public message board.
type MessageHandler struct {
	messages ports.MessageService
}

func NewMessageHandler(messages ports.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type messageResponse struct {
	Text string `json:"text"`
}

type messageListResponse struct {
	Messages []messageResponse `json:"messages"`
}

type postMessageRequest struct {
	Text string `json:"text"`
}

// List handles GET /messages.
//
// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Success      200  {object}  messageListResponse
// @Router       /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	messages, err := h.messages.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := messageListResponse{Messages: make([]messageResponse, 0, len(messages))}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, messageResponse{Text: m.Text})
	}
	return c.JSON(http.StatusOK, resp)
}

// Post handles POST /messages.
//
// @Summary      Post a message
// @Tags         messages
// @Accept       json
// @Success      201
// @Failure      400  {object}  map[string]string
// @Router       /messages [post]
func (h *MessageHandler) Post(c echo.Context) error {
	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected_json")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "expected_text")
	}

	if _, err := h.messages.Post(c.Request().Context(), req.Text); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Delete handles DELETE /messages/:id.
//
// @Summary      Delete a message
// @Tags         messages
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	if err := h.messages.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
