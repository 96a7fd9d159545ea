package handler

import (
	"errors"
	"io"
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

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
	iconService   *service.IconService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, iconService *service.IconService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		iconService:   iconService,
	}
}

// CreateBudgetRequest represents the create budget request body
type CreateBudgetRequest struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Currency string `json:"currency,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// CanDeleteResponse reports whether a budget may be deleted
type CanDeleteResponse struct {
	CanDelete bool `json:"canDelete"`
}

// CreateBudget godoc
// @Summary Create a budget
// @Description Create a new budget. Amounts are converted to canonical currency units.
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBudgetRequest true "Budget creation request"
// @Success 201 {object} domain.Budget
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateBudgetRequest
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

	budget, err := h.budgetService.CreateBudget(owner, service.CreateBudgetInput{
		Name:     req.Name,
		Amount:   amount,
		Currency: code,
		Icon:     req.Icon,
	})
	if err != nil {
		return mapBudgetError(c, err)
	}

	return c.JSON(http.StatusCreated, budget)
}

// GetBudgets godoc
// @Summary List budgets
// @Description List the caller's budgets with spend totals and item counts
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.BudgetWithTotals
// @Failure 401 {object} ProblemDetails
// @Router /budgets [get]
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgets, err := h.budgetService.ListBudgets(owner)
	if err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	return c.JSON(http.StatusOK, budgets)
}

// GetBudget godoc
// @Summary Get a budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Success 200 {object} domain.Budget
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	budget, err := h.budgetService.GetBudget(owner, id)
	if err != nil {
		return mapBudgetError(c, err)
	}

	return c.JSON(http.StatusOK, budget)
}

// CanDeleteBudget godoc
// @Summary Check whether a budget can be deleted
// @Description A budget with expenses still attached cannot be deleted
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Success 200 {object} CanDeleteResponse
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id}/can-delete [get]
func (h *BudgetHandler) CanDeleteBudget(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	canDelete, err := h.budgetService.CanDelete(owner, id)
	if err != nil {
		return mapBudgetError(c, err)
	}

	return c.JSON(http.StatusOK, CanDeleteResponse{CanDelete: canDelete})
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Description Delete an empty budget. Budgets with expenses are rejected with 409.
// @Tags budgets
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(owner, id); err != nil {
		return mapBudgetError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadIcon godoc
// @Summary Upload a budget icon
// @Description Upload an icon image for a budget. The image is resized and stored privately.
// @Tags budgets
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Param file formData file true "Icon image (JPEG, PNG, WebP)"
// @Success 200 {object} domain.Budget
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id}/icon [post]
func (h *BudgetHandler) UploadIcon(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "Missing file", []ValidationError{
			{Field: "file", Message: "An image file is required"},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return NewValidationError(c, "Could not read file", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxIconSize+1))
	if err != nil {
		return NewValidationError(c, "Could not read file", nil)
	}

	budget, err := h.iconService.UploadIcon(c.Request().Context(), owner, id, data, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBudgetNotFound):
			return NewNotFoundError(c, "Budget not found")
		case errors.Is(err, service.ErrIconTooLarge),
			errors.Is(err, service.ErrIconInvalidFormat),
			errors.Is(err, service.ErrIconTooSmall),
			errors.Is(err, service.ErrIconInvalidData):
			return NewValidationError(c, err.Error(), nil)
		case errors.Is(err, service.ErrIconStorageNotConfigured):
			return NewValidationError(c, "Icon uploads are not enabled", nil)
		default:
			log.Error().Err(err).Str("owner", owner).Int32("budget_id", id).Msg("Failed to upload icon")
			return NewInternalError(c, "Failed to upload icon")
		}
	}

	return c.JSON(http.StatusOK, budget)
}

// parseIDParam parses the :id path parameter
func parseIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}

// mapBudgetError maps budget domain errors to problem responses
func mapBudgetError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrBudgetNotFound):
		return NewNotFoundError(c, "Budget not found")
	case errors.Is(err, domain.ErrBudgetHasExpenses):
		return NewConflictError(c, "Budget still has expenses")
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
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currency", Message: "Unsupported currency code"},
		})
	default:
		log.Error().Err(err).Msg("Budget operation failed")
		return NewInternalError(c, "Internal server error")
	}
}
