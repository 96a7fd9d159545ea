package service

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/currency"
	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/websocket"
)

// ExpenseService handles expense-related business logic
type ExpenseService struct {
	expenseRepo domain.ExpenseRepository
	budgetRepo  domain.BudgetRepository
	publisher   websocket.EventPublisher
	now         func() time.Time
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, budgetRepo domain.BudgetRepository, publisher websocket.EventPublisher) *ExpenseService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &ExpenseService{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

// CreateExpenseInput holds the input for creating an expense
type CreateExpenseInput struct {
	BudgetID      int32
	Name          string
	Amount        decimal.Decimal
	Currency      currency.Code
	PaymentMethod domain.PaymentMethod
}

// CreateExpense creates a new expense against an owned budget. The amount
// is converted to canonical units before it is stored. Expenses exceeding
// the high-spend threshold raise an alert on the notification channel.
func (s *ExpenseService) CreateExpense(owner string, input CreateExpenseInput) (*domain.Expense, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	if input.Amount.IsNegative() {
		return nil, domain.ErrAmountInvalid
	}

	if !domain.ValidPaymentMethod(input.PaymentMethod) {
		return nil, domain.ErrInvalidPaymentMethod
	}

	amount, err := currency.ToCanonical(input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}

	// The budget must exist and belong to the caller
	if _, err := s.budgetRepo.GetByID(owner, input.BudgetID); err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		Name:          name,
		Amount:        amount,
		BudgetID:      input.BudgetID,
		CreatedBy:     owner,
		CreatedAt:     s.now().UTC(),
		PaymentMethod: input.PaymentMethod,
	}

	created, err := s.expenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(owner, websocket.NewExpenseCreatedEvent(created))
	if created.Amount > domain.HighExpenseThreshold {
		s.publisher.Publish(owner, websocket.NewHighExpenseEvent(created))
	}

	return created, nil
}

// ListForBudget returns up to limit expenses for an owned budget, newest
// first. A non-positive limit returns all of the budget's expenses.
func (s *ExpenseService) ListForBudget(owner string, budgetID int32, limit int32) ([]*domain.Expense, error) {
	if _, err := s.budgetRepo.GetByID(owner, budgetID); err != nil {
		return nil, err
	}
	return s.expenseRepo.ListByBudget(budgetID, limit)
}

// DeleteExpense removes an expense owned by the caller
func (s *ExpenseService) DeleteExpense(owner string, id int32) error {
	deleted, err := s.expenseRepo.Delete(owner, id)
	if err != nil {
		return err
	}

	s.publisher.Publish(owner, websocket.NewExpenseDeletedEvent(deleted.ID))

	return nil
}

// LatestExpenses gathers the most recent expenses across all of the
// owner's budgets: up to perBudgetLimit newest entries from each budget,
// concatenated in budget order. The result is deliberately not re-sorted
// globally, each budget's slice stays contiguous.
func (s *ExpenseService) LatestExpenses(owner string, perBudgetLimit int32) ([]*domain.Expense, error) {
	if perBudgetLimit <= 0 {
		perBudgetLimit = domain.DefaultLatestPerBudget
	}

	budgets, err := s.budgetRepo.ListWithTotals(owner)
	if err != nil {
		return nil, err
	}

	latest := make([]*domain.Expense, 0, len(budgets)*int(perBudgetLimit))
	for _, b := range budgets {
		expenses, err := s.expenseRepo.ListByBudget(b.ID, perBudgetLimit)
		if err != nil {
			return nil, err
		}
		latest = append(latest, expenses...)
	}
	return latest, nil
}

// FilterByName returns the expenses whose name contains the query,
// case-insensitive. An empty query matches everything.
func FilterByName(expenses []*domain.Expense, query string) []*domain.Expense {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return expenses
	}

	filtered := make([]*domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if strings.Contains(strings.ToLower(e.Name), query) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// SortExpenses orders expenses descending by the given key. The sort is
// stable so equal entries keep their incoming order.
func SortExpenses(expenses []*domain.Expense, key domain.ExpenseSortKey) {
	switch key {
	case domain.SortByAmount:
		sort.SliceStable(expenses, func(i, j int) bool {
			return expenses[i].Amount > expenses[j].Amount
		})
	case domain.SortByDate:
		sort.SliceStable(expenses, func(i, j int) bool {
			return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
		})
	}
}
