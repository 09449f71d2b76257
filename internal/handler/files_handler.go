package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"cstdportal/internal/classifier"
	apperrors "cstdportal/internal/errors"
)

// FilesHandler exposes the remote result file listing and download proxy.
type FilesHandler struct {
	classifierClient *classifier.Client
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(classifierClient *classifier.Client) *FilesHandler {
	return &FilesHandler{classifierClient: classifierClient}
}

// FilesResponse represents the result file listing.
type FilesResponse struct {
	Files []string `json:"files"`
}

// List godoc
// @Summary List previously produced result files
// @Tags files
// @Produce json
// @Success 200 {object} FilesResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/files [get]
func (h *FilesHandler) List(c echo.Context) error {
	entries, err := h.classifierClient.ListResultFiles(c.Request().Context())
	if err != nil {
		return errorJSON(c, apperrors.MapErrorToHTTP(err))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return c.JSON(http.StatusOK, FilesResponse{Files: names})
}

// Download godoc
// @Summary Download a previously produced result file
// @Tags files
// @Produce text/csv
// @Param name path string true "Result file name"
// @Success 200 {file} file
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/files/{name} [get]
func (h *FilesHandler) Download(c echo.Context) error {
	// The route param is still percent-encoded; decode it so the client does
	// not escape it a second time when building the remote URL.
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		name = c.Param("name")
	}

	result, err := h.classifierClient.Download(c.Request().Context(), name)
	if err != nil {
		return errorJSON(c, apperrors.MapErrorToHTTP(err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+result.Filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", result.Data)
}
