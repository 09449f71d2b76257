package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cstdportal/internal/classifier"
	apperrors "cstdportal/internal/errors"
)

// PredictHandler forwards uploaded traffic logs to the classification
// service and streams the labeled result back as a file download.
type PredictHandler struct {
	classifierClient *classifier.Client
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(classifierClient *classifier.Client) *PredictHandler {
	return &PredictHandler{classifierClient: classifierClient}
}

// Predict godoc
// @Summary Classify an uploaded network traffic CSV
// @Description Forwards the file to the classification service and returns the labeled CSV as an attachment.
// @Tags predict
// @Accept multipart/form-data
// @Produce text/csv
// @Param file formData file true "Network traffic log (.csv)"
// @Success 200 {file} file
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/predict [post]
func (h *PredictHandler) Predict(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, apperrors.NewHTTPError(http.StatusBadRequest,
			"No file part or selected file in the request.", "NO_FILE"))
	}

	// The suffix check is case-sensitive: data.CSV is rejected.
	if !strings.HasSuffix(fileHeader.Filename, ".csv") {
		return errorJSON(c, apperrors.NewHTTPError(http.StatusBadRequest,
			"Please select a valid CSV file.", "INVALID_FILE_TYPE"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errorJSON(c, apperrors.NewHTTPError(http.StatusBadRequest,
			"Could not read the selected file.", "UNREADABLE_FILE"))
	}
	defer file.Close()

	result, err := h.classifierClient.Submit(c.Request().Context(), fileHeader.Filename, file)
	if err != nil {
		return errorJSON(c, apperrors.MapErrorToHTTP(err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+result.Filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", result.Data)
}

// errorJSON writes the portal's standard error body.
func errorJSON(c echo.Context, httpErr *apperrors.HTTPError) error {
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
