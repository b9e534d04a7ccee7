package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fluxt/fluxt-api/internal/api/metrics"
	"github.com/fluxt/fluxt-api/internal/api/middleware"
	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
)

// FileHandler exposes file upload, download and deletion.
type FileHandler struct {
	files ports.FileService
}

func NewFileHandler(files ports.FileService) *FileHandler {
	return &FileHandler{files: files}
}

type uploadResponse struct {
	Filename string `json:"filename"`
}

// Upload handles POST /files with a multipart "file" part.
//
// @Summary      Upload a file
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  uploadResponse
// @Failure      400  {object}  map[string]string
// @Router       /files [post]
func (h *FileHandler) Upload(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	part, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected_file")
	}

	src, err := part.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected_file")
	}
	defer src.Close()

	file, err := h.files.Upload(c.Request().Context(), principal, src, part.Filename)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	return c.JSON(http.StatusCreated, uploadResponse{Filename: file.Filename})
}

// Download handles GET /files/:filename. The content-disposition header is
// left unset so the frontend can pick a filename for the download link.
//
// @Summary      Download a file
// @Tags         files
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /files/{filename} [get]
func (h *FileHandler) Download(c echo.Context) error {
	_, blob, mime, err := h.files.Open(c.Request().Context(), c.Param("filename"))
	if err != nil {
		return err
	}
	defer blob.Close()

	return c.Stream(http.StatusOK, mime, blob)
}

// Delete handles DELETE /files/:filename.
//
// @Summary      Delete a file
// @Tags         files
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /files/{filename} [delete]
func (h *FileHandler) Delete(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := h.files.Delete(c.Request().Context(), principal, c.Param("filename")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
