package domain

import "time"

// Budget represents a spending budget owned by a single user.
// Amount is stored in canonical currency units (integer USD).
type Budget struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Amount    int64     `json:"amount"`
	CreatedBy string    `json:"createdBy"`
	Icon      string    `json:"icon"`
	IconURL   *string   `json:"iconUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BudgetWithTotals is a budget joined with its expense aggregates.
// Budgets without expenses report TotalSpend=0, ItemCount=0.
type BudgetWithTotals struct {
	Budget
	TotalSpend int64 `json:"totalSpend"`
	ItemCount  int64 `json:"itemCount"`
}

// PortfolioTotals are the dashboard-wide aggregates derived from the
// owner's budgets.
type PortfolioTotals struct {
	TotalBudgeted int64 `json:"totalBudgeted"`
	TotalSpent    int64 `json:"totalSpent"`
	BudgetCount   int   `json:"budgetCount"`
}

type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(owner string, id int32) (*Budget, error)
	ListWithTotals(owner string) ([]*BudgetWithTotals, error)
	SetIconURL(owner string, id int32, iconURL string) (*Budget, error)
	HasExpenses(id int32) (bool, error)
	Delete(owner string, id int32) error
}
