package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendwise/spendwise-backend/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts a new expense and returns it with its generated id
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	var createdAt pgtype.Timestamptz
	createdAt.Time = expense.CreatedAt
	createdAt.Valid = true

	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (name, amount, budget_id, created_by, created_at, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, amount, budget_id, created_by, created_at, payment_method`,
		expense.Name, expense.Amount, expense.BudgetID, expense.CreatedBy, createdAt, string(expense.PaymentMethod),
	)
	return scanExpense(row)
}

// ListByBudget returns up to limit expenses for a budget, newest first.
// A non-positive limit returns all of the budget's expenses.
func (r *ExpenseRepository) ListByBudget(budgetID int32, limit int32) ([]*domain.Expense, error) {
	ctx := context.Background()

	query := `
		SELECT id, name, amount, budget_id, created_by, created_at, payment_method
		FROM expenses
		WHERE budget_id = $1
		ORDER BY created_at DESC, id DESC`
	args := []any{budgetID}
	if limit > 0 {
		query += `
		LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// ListByOwner returns every expense recorded by the owner, newest first
func (r *ExpenseRepository) ListByOwner(owner string) ([]*domain.Expense, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, amount, budget_id, created_by, created_at, payment_method
		FROM expenses
		WHERE created_by = $1
		ORDER BY created_at DESC, id DESC`,
		owner,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// CountByBudget counts the expenses referencing a budget
func (r *ExpenseRepository) CountByBudget(budgetID int32) (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(id) FROM expenses WHERE budget_id = $1`, budgetID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes an expense and returns the deleted record, or
// domain.ErrExpenseNotFound when no row matches.
func (r *ExpenseRepository) Delete(owner string, id int32) (*domain.Expense, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		DELETE FROM expenses
		WHERE created_by = $1 AND id = $2
		RETURNING id, name, amount, budget_id, created_by, created_at, payment_method`,
		owner, id,
	)
	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// Helper functions

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	var createdAt pgtype.Timestamptz
	var paymentMethod string
	if err := row.Scan(&e.ID, &e.Name, &e.Amount, &e.BudgetID, &e.CreatedBy, &createdAt, &paymentMethod); err != nil {
		return nil, err
	}
	e.CreatedAt = createdAt.Time
	e.PaymentMethod = domain.PaymentMethod(paymentMethod)
	return &e, nil
}

func collectExpenses(rows pgx.Rows) ([]*domain.Expense, error) {
	var result []*domain.Expense
	for rows.Next() {
		var e domain.Expense
		var createdAt pgtype.Timestamptz
		var paymentMethod string
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &e.BudgetID, &e.CreatedBy, &createdAt, &paymentMethod); err != nil {
			return nil, err
		}
		e.CreatedAt = createdAt.Time
		e.PaymentMethod = domain.PaymentMethod(paymentMethod)
		result = append(result, &e)
	}
	return result, rows.Err()
}
