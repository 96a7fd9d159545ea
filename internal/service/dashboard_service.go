package service

import (
	"github.com/spendwise/spendwise-backend/internal/domain"
)

// DashboardService composes budget and expense data into the single
// summary payload driving the dashboard view
type DashboardService struct {
	budgetService  *BudgetService
	expenseService *ExpenseService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(budgetService *BudgetService, expenseService *ExpenseService) *DashboardService {
	return &DashboardService{
		budgetService:  budgetService,
		expenseService: expenseService,
	}
}

// DashboardSummary is the aggregate payload for the dashboard view
type DashboardSummary struct {
	Totals  *domain.PortfolioTotals    `json:"totals"`
	Budgets []*domain.BudgetWithTotals `json:"budgets"`
	Latest  []*domain.Expense          `json:"latestExpenses"`
}

// SummaryOptions control the optional filtering and ordering applied to
// the latest-expenses section of the summary
type SummaryOptions struct {
	Search string
	Sort   domain.ExpenseSortKey
}

// Summary builds the dashboard payload for an owner: portfolio totals,
// per-budget aggregates, and the most recent expenses from each budget.
// When a sort key is given the latest list is re-ordered globally,
// otherwise it keeps the per-budget grouping.
func (s *DashboardService) Summary(owner string, opts SummaryOptions) (*DashboardSummary, error) {
	totals, err := s.budgetService.PortfolioTotals(owner)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgetService.ListBudgets(owner)
	if err != nil {
		return nil, err
	}

	latest, err := s.expenseService.LatestExpenses(owner, domain.DefaultLatestPerBudget)
	if err != nil {
		return nil, err
	}

	latest = FilterByName(latest, opts.Search)
	if opts.Sort == domain.SortByDate || opts.Sort == domain.SortByAmount {
		SortExpenses(latest, opts.Sort)
	}

	return &DashboardSummary{
		Totals:  totals,
		Budgets: budgets,
		Latest:  latest,
	}, nil
}
