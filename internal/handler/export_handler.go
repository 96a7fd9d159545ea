package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/spendwise/spendwise-backend/internal/middleware"
	"github.com/spendwise/spendwise-backend/internal/service"
)

// ExportHandler handles expense report HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// GenerateReport godoc
// @Summary Generate an expense report PDF
// @Description Renders the caller's expenses in the inclusive day range [start, end] into a PDF and returns a short-lived download link. Rate limited per caller.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} service.ExpenseReport
// @Failure 400 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /reports/expenses [get]
func (h *ExportHandler) GenerateReport(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	start, err := time.Parse("2006-01-02", c.QueryParam("start"))
	if err != nil {
		return NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "start", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	end, err := time.Parse("2006-01-02", c.QueryParam("end"))
	if err != nil {
		return NewValidationError(c, "Invalid end date", []ValidationError{
			{Field: "end", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	report, err := h.exportService.GenerateExpenseReport(c.Request().Context(), owner, start, end)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDateRange):
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "start", Message: "Start date must not be after end date"},
			})
		case errors.Is(err, service.ErrReportStorageNotConfigured):
			return NewValidationError(c, "Report generation is not enabled", nil)
		default:
			log.Error().Err(err).Str("owner", owner).Msg("Failed to generate expense report")
			return NewInternalError(c, "Failed to generate report")
		}
	}

	return c.JSON(http.StatusOK, report)
}
