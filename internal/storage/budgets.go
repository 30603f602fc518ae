package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

func (r *SQLiteRepository) CreateBudget(ctx context.Context, b *core.Budget) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, category_id, name, amount_limit, period, start_date, end_date, alert_threshold, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID.String(), b.UserID.String(), nullUUID(b.CategoryID), b.Name, b.AmountLimit.String(),
		string(b.Period), b.StartDate.String(), b.EndDate.String(), b.AlertThreshold,
		boolToInt(b.Active), now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b *core.Budget) error {
	b.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE budgets SET category_id = ?, name = ?, amount_limit = ?, period = ?, start_date = ?, end_date = ?, alert_threshold = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		nullUUID(b.CategoryID), b.Name, b.AmountLimit.String(), string(b.Period),
		b.StartDate.String(), b.EndDate.String(), b.AlertThreshold, boolToInt(b.Active),
		b.UpdatedAt.Format(timeLayout), b.ID.String(), b.UserID.String())
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) GetBudget(ctx context.Context, userID, id uuid.UUID) (*core.Budget, error) {
	row := r.db.QueryRowContext(ctx, budgetSelect+` WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	return scanBudget(row)
}

func (r *SQLiteRepository) ListBudgets(ctx context.Context, userID uuid.UUID) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, budgetSelect+` WHERE user_id = ? ORDER BY start_date DESC, name`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

const budgetSelect = `
	SELECT id, user_id, category_id, name, amount_limit, period, start_date, end_date, alert_threshold, is_active, created_at, updated_at
	FROM budgets`

func scanBudget(row rowScanner) (*core.Budget, error) {
	var (
		b                      core.Budget
		idStr, userStr         string
		catNS                  sql.NullString
		limitStr, periodStr    string
		startStr, endStr       string
		active                 int
		createdStr, updatedStr string
	)
	err := row.Scan(&idStr, &userStr, &catNS, &b.Name, &limitStr, &periodStr,
		&startStr, &endStr, &b.AlertThreshold, &active, &createdStr, &updatedStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan budget: %w", err)
	}

	if b.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("parse budget id: %w", err)
	}
	if b.UserID, err = uuid.Parse(userStr); err != nil {
		return nil, fmt.Errorf("parse budget user id: %w", err)
	}
	if b.CategoryID, err = scanNullUUID(catNS); err != nil {
		return nil, err
	}
	if b.AmountLimit, err = scanDecimal(limitStr); err != nil {
		return nil, err
	}
	if b.StartDate, err = scanDate(startStr); err != nil {
		return nil, err
	}
	if b.EndDate, err = scanDate(endStr); err != nil {
		return nil, err
	}
	b.Period = core.BudgetPeriod(periodStr)
	b.Active = active != 0
	b.CreatedAt = scanTime(createdStr)
	b.UpdatedAt = scanTime(updatedStr)
	return &b, nil
}
