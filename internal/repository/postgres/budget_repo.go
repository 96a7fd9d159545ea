package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendwise/spendwise-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Create inserts a new budget and returns it with its generated id
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (name, amount, created_by, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, amount, created_by, icon, icon_url, created_at`,
		budget.Name, budget.Amount, budget.CreatedBy, budget.Icon,
	)
	return scanBudget(row)
}

// GetByID retrieves a budget by id, scoped to its owner
func (r *BudgetRepository) GetByID(owner string, id int32) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, amount, created_by, icon, icon_url, created_at
		FROM budgets
		WHERE created_by = $1 AND id = $2`,
		owner, id,
	)
	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// ListWithTotals retrieves the owner's budgets joined with their expense
// aggregates. Budgets without expenses report zero totals (left join).
func (r *BudgetRepository) ListWithTotals(owner string) ([]*domain.BudgetWithTotals, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.name, b.amount, b.created_by, b.icon, b.icon_url, b.created_at,
		       COALESCE(SUM(e.amount), 0) AS total_spend,
		       COUNT(e.id) AS item_count
		FROM budgets b
		LEFT JOIN expenses e ON e.budget_id = b.id
		WHERE b.created_by = $1
		GROUP BY b.id
		ORDER BY b.id`,
		owner,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.BudgetWithTotals
	for rows.Next() {
		var b domain.BudgetWithTotals
		var iconURL pgtype.Text
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(&b.ID, &b.Name, &b.Amount, &b.CreatedBy, &b.Icon, &iconURL, &createdAt, &b.TotalSpend, &b.ItemCount); err != nil {
			return nil, err
		}
		if iconURL.Valid {
			b.IconURL = &iconURL.String
		}
		b.CreatedAt = createdAt.Time
		result = append(result, &b)
	}
	return result, rows.Err()
}

// SetIconURL records the uploaded icon image path for a budget
func (r *BudgetRepository) SetIconURL(owner string, id int32, iconURL string) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE budgets
		SET icon_url = $3
		WHERE created_by = $1 AND id = $2
		RETURNING id, name, amount, created_by, icon, icon_url, created_at`,
		owner, id, iconURL,
	)
	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// HasExpenses reports whether any expense still references the budget
func (r *BudgetRepository) HasExpenses(id int32) (bool, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(id) FROM expenses WHERE budget_id = $1`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a budget. Returns domain.ErrBudgetNotFound when no row
// matches, so a repeated delete fails gracefully.
func (r *BudgetRepository) Delete(owner string, id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE created_by = $1 AND id = $2`, owner, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

// Helper functions

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	var iconURL pgtype.Text
	var createdAt pgtype.Timestamptz
	if err := row.Scan(&b.ID, &b.Name, &b.Amount, &b.CreatedBy, &b.Icon, &iconURL, &createdAt); err != nil {
		return nil, err
	}
	if iconURL.Valid {
		b.IconURL = &iconURL.String
	}
	b.CreatedAt = createdAt.Time
	return &b, nil
}
