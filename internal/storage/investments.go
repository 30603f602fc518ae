package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

func (r *SQLiteRepository) CreateInvestment(ctx context.Context, inv *core.Investment) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO investments (id, user_id, account_id, name, investment_type, symbol,
			quantity, purchase_price, current_price, purchase_date, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID.String(), inv.UserID.String(), nullUUID(inv.AccountID), inv.Name, inv.Type, inv.Symbol,
		inv.Quantity.String(), inv.PurchasePrice.String(), inv.CurrentPrice.String(),
		inv.PurchaseDate.String(), inv.Description,
		inv.CreatedAt.Format(timeLayout), inv.UpdatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create investment: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateInvestment(ctx context.Context, inv *core.Investment) error {
	inv.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE investments SET account_id = ?, name = ?, investment_type = ?, symbol = ?,
			quantity = ?, purchase_price = ?, current_price = ?, purchase_date = ?,
			description = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		nullUUID(inv.AccountID), inv.Name, inv.Type, inv.Symbol,
		inv.Quantity.String(), inv.PurchasePrice.String(), inv.CurrentPrice.String(),
		inv.PurchaseDate.String(), inv.Description, inv.UpdatedAt.Format(timeLayout),
		inv.ID.String(), inv.UserID.String())
	if err != nil {
		return fmt.Errorf("update investment: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteInvestment(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM investments WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) GetInvestment(ctx context.Context, userID, id uuid.UUID) (*core.Investment, error) {
	row := r.db.QueryRowContext(ctx, investmentSelect+` WHERE id = ? AND user_id = ?`,
		id.String(), userID.String())
	return scanInvestment(row)
}

func (r *SQLiteRepository) ListInvestments(ctx context.Context, userID uuid.UUID) ([]core.Investment, error) {
	rows, err := r.db.QueryContext(ctx, investmentSelect+` WHERE user_id = ? ORDER BY name`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var investments []core.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, *inv)
	}
	return investments, rows.Err()
}

const investmentSelect = `
	SELECT id, user_id, account_id, name, investment_type, symbol,
		quantity, purchase_price, current_price, purchase_date, description, created_at, updated_at
	FROM investments`

func scanInvestment(row rowScanner) (*core.Investment, error) {
	var (
		inv                      core.Investment
		idStr, userStr           string
		accountNS                sql.NullString
		qtyStr, buyStr, curStr   string
		dateStr, createdStr, updatedStr string
	)
	err := row.Scan(&idStr, &userStr, &accountNS, &inv.Name, &inv.Type, &inv.Symbol,
		&qtyStr, &buyStr, &curStr, &dateStr, &inv.Description, &createdStr, &updatedStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan investment: %w", err)
	}

	if inv.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("parse investment id: %w", err)
	}
	if inv.UserID, err = uuid.Parse(userStr); err != nil {
		return nil, fmt.Errorf("parse investment user id: %w", err)
	}
	if inv.AccountID, err = scanNullUUID(accountNS); err != nil {
		return nil, err
	}
	if inv.Quantity, err = scanDecimal(qtyStr); err != nil {
		return nil, err
	}
	if inv.PurchasePrice, err = scanDecimal(buyStr); err != nil {
		return nil, err
	}
	if inv.CurrentPrice, err = scanDecimal(curStr); err != nil {
		return nil, err
	}
	if inv.PurchaseDate, err = scanDate(dateStr); err != nil {
		return nil, err
	}
	inv.CreatedAt = scanTime(createdStr)
	inv.UpdatedAt = scanTime(updatedStr)
	return &inv, nil
}
