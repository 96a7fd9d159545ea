package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/spendwise/spendwise-backend/internal/currency"
	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/middleware"
	"github.com/spendwise/spendwise-backend/internal/service"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// DisplayTotals are the portfolio totals rendered in a requested currency
// and locale
type DisplayTotals struct {
	Currency      string `json:"currency"`
	TotalBudgeted string `json:"totalBudgeted"`
	TotalSpent    string `json:"totalSpent"`
}

// DashboardSummaryResponse is the payload for the dashboard view
type DashboardSummaryResponse struct {
	Totals  *domain.PortfolioTotals    `json:"totals"`
	Budgets []*domain.BudgetWithTotals `json:"budgets"`
	Latest  []*domain.Expense          `json:"latestExpenses"`
	Display *DisplayTotals             `json:"display,omitempty"`
}

// GetSummary godoc
// @Summary Get dashboard summary
// @Description Portfolio totals, per-budget aggregates, and recent expenses. Supports name search, sorting, and display formatting in a requested currency and locale.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param search query string false "Filter latest expenses by name"
// @Param sort query string false "Sort latest expenses" Enums(date, amount)
// @Param currency query string false "Display currency" Enums(USD, EUR, GBP, INR, JPY)
// @Param locale query string false "Display locale (BCP 47)"
// @Success 200 {object} DashboardSummaryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	sortParam := c.QueryParam("sort")
	if sortParam != "" && sortParam != string(domain.SortByDate) && sortParam != string(domain.SortByAmount) {
		return NewValidationError(c, "Invalid sort", []ValidationError{
			{Field: "sort", Message: "Must be 'date' or 'amount'"},
		})
	}

	summary, err := h.dashboardService.Summary(owner, service.SummaryOptions{
		Search: c.QueryParam("search"),
		Sort:   domain.ExpenseSortKey(sortParam),
	})
	if err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("Failed to build dashboard summary")
		return NewInternalError(c, "Failed to build dashboard summary")
	}

	resp := &DashboardSummaryResponse{
		Totals:  summary.Totals,
		Budgets: summary.Budgets,
		Latest:  summary.Latest,
	}

	if code := c.QueryParam("currency"); code != "" {
		locale := c.QueryParam("locale")
		if locale == "" {
			locale = "en"
		}
		display, err := formatTotals(summary.Totals, currency.Code(code), locale)
		if err != nil {
			if errors.Is(err, currency.ErrUnsupportedCurrency) {
				return NewValidationError(c, "Invalid currency", []ValidationError{
					{Field: "currency", Message: "Unsupported currency code"},
				})
			}
			return NewValidationError(c, "Invalid locale", []ValidationError{
				{Field: "locale", Message: "Must be a valid BCP 47 tag"},
			})
		}
		resp.Display = display
	}

	return c.JSON(http.StatusOK, resp)
}

// formatTotals renders the portfolio totals in the requested currency
func formatTotals(totals *domain.PortfolioTotals, code currency.Code, locale string) (*DisplayTotals, error) {
	budgeted, err := currency.Format(totals.TotalBudgeted, code, locale, currency.SummaryDigits)
	if err != nil {
		return nil, err
	}
	spent, err := currency.Format(totals.TotalSpent, code, locale, currency.SummaryDigits)
	if err != nil {
		return nil, err
	}
	return &DisplayTotals{
		Currency:      string(code),
		TotalBudgeted: budgeted,
		TotalSpent:    spent,
	}, nil
}
