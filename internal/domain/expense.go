package domain

import "time"

// PaymentMethod is the fixed set of payment instruments an expense can
// be recorded against.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodCredit PaymentMethod = "Credit"
	PaymentMethodDebit  PaymentMethod = "Debit"
	PaymentMethodUPI    PaymentMethod = "UPI"
	PaymentMethodCheque PaymentMethod = "Cheque"
)

// ValidPaymentMethod reports whether m is a member of the fixed set.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCredit, PaymentMethodDebit, PaymentMethodUPI, PaymentMethodCheque:
		return true
	}
	return false
}

// Expense is a single spend record against a budget. Amount is stored in
// canonical currency units; conversion happens before the record reaches
// the repository. Expenses are immutable once created except for deletion.
type Expense struct {
	ID            int32         `json:"id"`
	Name          string        `json:"name"`
	Amount        int64         `json:"amount"`
	BudgetID      int32         `json:"budgetId"`
	CreatedBy     string        `json:"createdBy"`
	CreatedAt     time.Time     `json:"createdAt"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// ExpenseSortKey selects the dashboard sort order for expense lists.
type ExpenseSortKey string

const (
	SortByDate   ExpenseSortKey = "date"
	SortByAmount ExpenseSortKey = "amount"
)

type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	// ListByBudget returns up to limit expenses for the budget, newest first.
	ListByBudget(budgetID int32, limit int32) ([]*Expense, error)
	ListByOwner(owner string) ([]*Expense, error)
	CountByBudget(budgetID int32) (int64, error)
	Delete(owner string, id int32) (*Expense, error)
}
