package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/currency"
	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/websocket"
)

// BudgetService handles budget-related business logic
type BudgetService struct {
	budgetRepo  domain.BudgetRepository
	expenseRepo domain.ExpenseRepository
	publisher   websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, expenseRepo domain.ExpenseRepository, publisher websocket.EventPublisher) *BudgetService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &BudgetService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		publisher:   publisher,
	}
}

// CreateBudgetInput holds the input for creating a budget
type CreateBudgetInput struct {
	Name     string
	Amount   decimal.Decimal
	Currency currency.Code
	Icon     string
}

// CreateBudget creates a new budget with validation. The amount is
// converted to canonical units before it is stored.
func (s *BudgetService) CreateBudget(owner string, input CreateBudgetInput) (*domain.Budget, error) {
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

	amount, err := currency.ToCanonical(input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}

	icon := strings.TrimSpace(input.Icon)

	budget := &domain.Budget{
		Name:      name,
		Amount:    amount,
		CreatedBy: owner,
		Icon:      icon,
	}

	created, err := s.budgetRepo.Create(budget)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(owner, websocket.NewBudgetCreatedEvent(created))

	return created, nil
}

// GetBudget retrieves a single budget owned by the caller
func (s *BudgetService) GetBudget(owner string, id int32) (*domain.Budget, error) {
	return s.budgetRepo.GetByID(owner, id)
}

// ListBudgets returns the owner's budgets with their expense aggregates
func (s *BudgetService) ListBudgets(owner string) ([]*domain.BudgetWithTotals, error) {
	return s.budgetRepo.ListWithTotals(owner)
}

// PortfolioTotals aggregates the owner's budgets into dashboard-wide
// totals. An owner with no budgets gets all zeros.
func (s *BudgetService) PortfolioTotals(owner string) (*domain.PortfolioTotals, error) {
	budgets, err := s.budgetRepo.ListWithTotals(owner)
	if err != nil {
		return nil, err
	}

	totals := &domain.PortfolioTotals{}
	for _, b := range budgets {
		totals.TotalBudgeted += b.Amount
		totals.TotalSpent += b.TotalSpend
		totals.BudgetCount++
	}
	return totals, nil
}

// CanDelete reports whether the budget can be deleted. A budget with
// expenses still attached cannot be removed.
func (s *BudgetService) CanDelete(owner string, id int32) (bool, error) {
	if _, err := s.budgetRepo.GetByID(owner, id); err != nil {
		return false, err
	}

	hasExpenses, err := s.budgetRepo.HasExpenses(id)
	if err != nil {
		return false, err
	}
	return !hasExpenses, nil
}

// DeleteBudget removes a budget. Deletion is rejected while any expense
// still references the budget, so records are never orphaned.
func (s *BudgetService) DeleteBudget(owner string, id int32) error {
	if _, err := s.budgetRepo.GetByID(owner, id); err != nil {
		return err
	}

	hasExpenses, err := s.budgetRepo.HasExpenses(id)
	if err != nil {
		return err
	}
	if hasExpenses {
		return domain.ErrBudgetHasExpenses
	}

	if err := s.budgetRepo.Delete(owner, id); err != nil {
		return err
	}

	s.publisher.Publish(owner, websocket.NewBudgetDeletedEvent(id))

	return nil
}
