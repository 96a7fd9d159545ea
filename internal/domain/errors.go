package domain

import "errors"

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInternalError        = errors.New("internal error")
	ErrBudgetNotFound       = errors.New("budget not found")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrNameRequired         = errors.New("name is required")
	ErrNameTooLong          = errors.New("name exceeds maximum length")
	ErrTypeRequired         = errors.New("type is required")
	ErrAmountInvalid        = errors.New("amount must be non-negative")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrBudgetHasExpenses    = errors.New("budget has expenses")
)

// Validation constants
const (
	MaxNameLength = 255

	// HighExpenseThreshold is the canonical-currency amount above which a
	// loaded expense raises a high-expense notification.
	HighExpenseThreshold = 5000

	// DefaultLatestPerBudget is how many recent expenses the dashboard
	// fetches from each budget.
	DefaultLatestPerBudget = 3
)
