package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e *core.Expense) error {
	e.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, category_id, amount, expense_date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.UserID.String(), nullUUID(e.CategoryID), e.Amount.String(),
		e.Date.String(), e.Description, e.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e *core.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET category_id = ?, amount = ?, expense_date = ?, description = ?
		WHERE id = ? AND user_id = ?`,
		nullUUID(e.CategoryID), e.Amount.String(), e.Date.String(), e.Description,
		e.ID.String(), e.UserID.String())
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, userID, id uuid.UUID) (*core.Expense, error) {
	row := r.db.QueryRowContext(ctx, expenseSelect+` WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	return scanExpense(row)
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID uuid.UUID) ([]core.Expense, error) {
	return r.queryExpenses(ctx, expenseSelect+` WHERE user_id = ? ORDER BY expense_date DESC`, userID.String())
}

// GetExpensesForCategoryInRange feeds the budget evaluator: expenses of one
// category with dates inside [start, end] inclusive.
func (r *SQLiteRepository) GetExpensesForCategoryInRange(ctx context.Context, userID, categoryID uuid.UUID, start, end core.Date) ([]core.Expense, error) {
	return r.queryExpenses(ctx, expenseSelect+`
		WHERE user_id = ? AND category_id = ? AND expense_date BETWEEN ? AND ?
		ORDER BY expense_date`,
		userID.String(), categoryID.String(), start.String(), end.String())
}

func (r *SQLiteRepository) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

const expenseSelect = `
	SELECT id, user_id, category_id, amount, expense_date, description, created_at
	FROM expenses`

func scanExpense(row rowScanner) (*core.Expense, error) {
	var (
		e                  core.Expense
		idStr, userStr     string
		catNS              sql.NullString
		amountStr, dateStr string
		createdStr         string
	)
	err := row.Scan(&idStr, &userStr, &catNS, &amountStr, &dateStr, &e.Description, &createdStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan expense: %w", err)
	}

	if e.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("parse expense id: %w", err)
	}
	if e.UserID, err = uuid.Parse(userStr); err != nil {
		return nil, fmt.Errorf("parse expense user id: %w", err)
	}
	if e.CategoryID, err = scanNullUUID(catNS); err != nil {
		return nil, err
	}
	if e.Amount, err = scanDecimal(amountStr); err != nil {
		return nil, err
	}
	if e.Date, err = scanDate(dateStr); err != nil {
		return nil, err
	}
	e.CreatedAt = scanTime(createdStr)
	return &e, nil
}

// --- categories ---

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c *core.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, user_id, name) VALUES (?, ?, ?)`,
		c.ID.String(), c.UserID.String(), c.Name)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListCategories(ctx context.Context, userID uuid.UUID) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name FROM categories WHERE user_id = ? ORDER BY name`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		var idStr, userStr string
		if err := rows.Scan(&idStr, &userStr, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if c.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("parse category id: %w", err)
		}
		if c.UserID, err = uuid.Parse(userStr); err != nil {
			return nil, fmt.Errorf("parse category user id: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
