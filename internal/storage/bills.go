package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

func (r *SQLiteRepository) CreateBill(ctx context.Context, b *core.Bill) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bills (id, user_id, category_id, name, amount, billing_cycle, due_day, start_date, end_date,
			is_active, reminder_days, last_payment_date, next_payment_date, description, vendor, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID.String(), b.UserID.String(), nullUUID(b.CategoryID), b.Name, b.Amount.String(),
		string(b.Cycle), b.DueDay, b.StartDate.String(), nullDate(b.EndDate),
		boolToInt(b.Active), b.ReminderDays, nullDate(b.LastPaymentDate), nullDate(b.NextPaymentDate),
		b.Description, b.Vendor, now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create bill: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateBill(ctx context.Context, b *core.Bill) error {
	b.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE bills SET category_id = ?, name = ?, amount = ?, billing_cycle = ?, due_day = ?, start_date = ?,
			end_date = ?, is_active = ?, reminder_days = ?, last_payment_date = ?, next_payment_date = ?,
			description = ?, vendor = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		nullUUID(b.CategoryID), b.Name, b.Amount.String(), string(b.Cycle), b.DueDay, b.StartDate.String(),
		nullDate(b.EndDate), boolToInt(b.Active), b.ReminderDays, nullDate(b.LastPaymentDate),
		nullDate(b.NextPaymentDate), b.Description, b.Vendor, b.UpdatedAt.Format(timeLayout),
		b.ID.String(), b.UserID.String())
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteBill(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM bills WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) GetBill(ctx context.Context, userID, id uuid.UUID) (*core.Bill, error) {
	row := r.db.QueryRowContext(ctx, billSelect+` WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	return scanBill(row)
}

func (r *SQLiteRepository) ListBills(ctx context.Context, userID uuid.UUID) ([]core.Bill, error) {
	return r.queryBills(ctx, billSelect+` WHERE user_id = ? ORDER BY next_payment_date IS NULL, next_payment_date`, userID.String())
}

// ListUpcomingBills returns active bills whose next payment date falls
// inside [from, to].
func (r *SQLiteRepository) ListUpcomingBills(ctx context.Context, userID uuid.UUID, from, to core.Date) ([]core.Bill, error) {
	return r.queryBills(ctx, billSelect+`
		WHERE user_id = ? AND is_active = 1 AND next_payment_date IS NOT NULL
		  AND next_payment_date BETWEEN ? AND ?
		ORDER BY next_payment_date`,
		userID.String(), from.String(), to.String())
}

// ListActiveBills returns every active bill across all users. The billing
// worker walks this to refresh schedules and emit reminders.
func (r *SQLiteRepository) ListActiveBills(ctx context.Context) ([]core.Bill, error) {
	return r.queryBills(ctx, billSelect+` WHERE is_active = 1 ORDER BY user_id, name`)
}

func (r *SQLiteRepository) queryBills(ctx context.Context, query string, args ...any) ([]core.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}
	defer rows.Close()

	var bills []core.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *b)
	}
	return bills, rows.Err()
}

const billSelect = `
	SELECT id, user_id, category_id, name, amount, billing_cycle, due_day, start_date, end_date,
		is_active, reminder_days, last_payment_date, next_payment_date, description, vendor, created_at, updated_at
	FROM bills`

func scanBill(row rowScanner) (*core.Bill, error) {
	var (
		b                      core.Bill
		idStr, userStr         string
		catNS                  sql.NullString
		amountStr, cycleStr    string
		startStr               string
		endNS, lastNS, nextNS  sql.NullString
		active                 int
		createdStr, updatedStr string
	)
	err := row.Scan(&idStr, &userStr, &catNS, &b.Name, &amountStr, &cycleStr, &b.DueDay,
		&startStr, &endNS, &active, &b.ReminderDays, &lastNS, &nextNS,
		&b.Description, &b.Vendor, &createdStr, &updatedStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan bill: %w", err)
	}

	if b.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("parse bill id: %w", err)
	}
	if b.UserID, err = uuid.Parse(userStr); err != nil {
		return nil, fmt.Errorf("parse bill user id: %w", err)
	}
	if b.CategoryID, err = scanNullUUID(catNS); err != nil {
		return nil, err
	}
	if b.Amount, err = scanDecimal(amountStr); err != nil {
		return nil, err
	}
	if b.StartDate, err = scanDate(startStr); err != nil {
		return nil, err
	}
	if b.EndDate, err = scanNullDate(endNS); err != nil {
		return nil, err
	}
	if b.LastPaymentDate, err = scanNullDate(lastNS); err != nil {
		return nil, err
	}
	if b.NextPaymentDate, err = scanNullDate(nextNS); err != nil {
		return nil, err
	}
	b.Cycle = core.BillingCycle(cycleStr)
	b.Active = active != 0
	b.CreatedAt = scanTime(createdStr)
	b.UpdatedAt = scanTime(updatedStr)
	return &b, nil
}
