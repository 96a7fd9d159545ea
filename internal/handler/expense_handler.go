package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/currency"
	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/middleware"
	"github.com/spendwise/spendwise-backend/internal/service"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// CreateExpenseRequest represents the create expense request body
type CreateExpenseRequest struct {
	Name          string `json:"name"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
}

// CreateExpense godoc
// @Summary Create an expense
// @Description Record an expense against a budget. Amounts are converted to canonical currency units.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Param request body CreateExpenseRequest true "Expense creation request"
// @Success 201 {object} domain.Expense
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id}/expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgetID, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	code := currency.Canonical
	if req.Currency != "" {
		code = currency.Code(req.Currency)
	}

	expense, err := h.expenseService.CreateExpense(owner, service.CreateExpenseInput{
		BudgetID:      budgetID,
		Name:          req.Name,
		Amount:        amount,
		Currency:      code,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		return mapExpenseError(c, err)
	}

	return c.JSON(http.StatusCreated, expense)
}

// GetExpenses godoc
// @Summary List a budget's expenses
// @Description List expenses for a budget, newest first. Use limit to cap the result.
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Param limit query int false "Maximum number of expenses"
// @Success 200 {array} domain.Expense
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id}/expenses [get]
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgetID, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var limit int32
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			return NewValidationError(c, "Invalid limit", []ValidationError{
				{Field: "limit", Message: "Must be a non-negative integer"},
			})
		}
		limit = int32(parsed)
	}

	expenses, err := h.expenseService.ListForBudget(owner, budgetID, limit)
	if err != nil {
		return mapExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, expenses)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.expenseService.DeleteExpense(owner, id); err != nil {
		return mapExpenseError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// mapExpenseError maps expense domain errors to problem responses
func mapExpenseError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrExpenseNotFound):
		return NewNotFoundError(c, "Expense not found")
	case errors.Is(err, domain.ErrBudgetNotFound):
		return NewNotFoundError(c, "Budget not found")
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name exceeds maximum length"},
		})
	case errors.Is(err, domain.ErrAmountInvalid):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be non-negative"},
		})
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "paymentMethod", Message: "Must be one of Cash, Credit, Debit, UPI, Cheque"},
		})
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currency", Message: "Unsupported currency code"},
		})
	default:
		log.Error().Err(err).Msg("Expense operation failed")
		return NewInternalError(c, "Internal server error")
	}
}
