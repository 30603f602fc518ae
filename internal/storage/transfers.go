package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// Transfer operations run inside a single SQL transaction: the transfer row
// and both balance updates commit together or not at all.

func (r *SQLiteRepository) CreateTransfer(ctx context.Context, t *core.Transfer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer tx: %w", err)
	}
	defer tx.Rollback()

	t.CreatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO transfers (id, user_id, from_account_id, to_account_id, amount, transfer_date, description, transfer_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID.String(), t.UserID.String(), t.FromAccountID.String(), t.ToAccountID.String(),
		t.Amount.String(), t.Date.String(), t.Description, string(t.Type),
		t.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}

	if err := r.applyTransferTx(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer: %w", err)
	}

	slog.InfoContext(ctx, "Transfer created",
		"transfer_id", t.ID,
		"from_account_id", t.FromAccountID,
		"to_account_id", t.ToAccountID,
		"amount", t.Amount)
	return nil
}

// UpdateTransfer reverses the old transfer's balance effect, rewrites the
// record, then applies the new transfer, all in one transaction.
func (r *SQLiteRepository) UpdateTransfer(ctx context.Context, old, updated *core.Transfer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer tx: %w", err)
	}
	defer tx.Rollback()

	if err := r.reverseTransferTx(ctx, tx, old); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE transfers SET from_account_id = ?, to_account_id = ?, amount = ?, transfer_date = ?, description = ?, transfer_type = ?
		WHERE id = ? AND user_id = ?`,
		updated.FromAccountID.String(), updated.ToAccountID.String(), updated.Amount.String(),
		updated.Date.String(), updated.Description, string(updated.Type),
		updated.ID.String(), updated.UserID.String())
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if err := r.applyTransferTx(ctx, tx, updated); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer update: %w", err)
	}

	slog.InfoContext(ctx, "Transfer updated", "transfer_id", updated.ID, "amount", updated.Amount)
	return nil
}

func (r *SQLiteRepository) DeleteTransfer(ctx context.Context, t *core.Transfer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer tx: %w", err)
	}
	defer tx.Rollback()

	if err := r.reverseTransferTx(ctx, tx, t); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM transfers WHERE id = ? AND user_id = ?`, t.ID.String(), t.UserID.String())
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer delete: %w", err)
	}

	slog.InfoContext(ctx, "Transfer deleted", "transfer_id", t.ID, "amount", t.Amount)
	return nil
}

func (r *SQLiteRepository) GetTransfer(ctx context.Context, userID, id uuid.UUID) (*core.Transfer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, from_account_id, to_account_id, amount, transfer_date, description, transfer_type, created_at
		FROM transfers WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	return scanTransfer(row)
}

func (r *SQLiteRepository) ListTransfers(ctx context.Context, userID uuid.UUID) ([]core.Transfer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, from_account_id, to_account_id, amount, transfer_date, description, transfer_type, created_at
		FROM transfers WHERE user_id = ? ORDER BY transfer_date DESC`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []core.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *t)
	}
	return transfers, rows.Err()
}

// applyTransferTx debits the source and credits the destination using the
// balances read inside the same transaction.
func (r *SQLiteRepository) applyTransferTx(ctx context.Context, tx *sql.Tx, t *core.Transfer) error {
	balances, err := r.balancesTx(ctx, tx, t.FromAccountID, t.ToAccountID)
	if err != nil {
		return err
	}
	return r.writeBalancesTx(ctx, tx, t, core.ApplyTransfer(balances, t.Amount))
}

// reverseTransferTx returns the amount to the source and removes it from the
// destination, undoing a previously applied transfer.
func (r *SQLiteRepository) reverseTransferTx(ctx context.Context, tx *sql.Tx, t *core.Transfer) error {
	balances, err := r.balancesTx(ctx, tx, t.FromAccountID, t.ToAccountID)
	if err != nil {
		return err
	}
	return r.writeBalancesTx(ctx, tx, t, core.ReverseTransfer(balances, t.Amount))
}

func (r *SQLiteRepository) balancesTx(ctx context.Context, tx *sql.Tx, fromID, toID uuid.UUID) (core.Balances, error) {
	from, err := accountBalanceTx(ctx, tx, fromID)
	if err != nil {
		return core.Balances{}, fmt.Errorf("source account %s: %w", fromID, err)
	}
	to, err := accountBalanceTx(ctx, tx, toID)
	if err != nil {
		return core.Balances{}, fmt.Errorf("destination account %s: %w", toID, err)
	}
	return core.Balances{From: from, To: to}, nil
}

func (r *SQLiteRepository) writeBalancesTx(ctx context.Context, tx *sql.Tx, t *core.Transfer, b core.Balances) error {
	if err := setAccountBalanceTx(ctx, tx, t.FromAccountID, b.From); err != nil {
		return fmt.Errorf("update source balance: %w", err)
	}
	if err := setAccountBalanceTx(ctx, tx, t.ToAccountID, b.To); err != nil {
		return fmt.Errorf("update destination balance: %w", err)
	}
	return nil
}

func accountBalanceTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) (decimal.Decimal, error) {
	var balanceStr string
	err := tx.QueryRowContext(ctx,
		`SELECT balance FROM accounts WHERE id = ?`, id.String()).Scan(&balanceStr)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("read balance: %w", err)
	}
	return scanDecimal(balanceStr)
}

func setAccountBalanceTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, balance decimal.Decimal) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE accounts SET balance = ?, updated_at = ? WHERE id = ?`,
		balance.String(), time.Now().UTC().Format(timeLayout), id.String())
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanTransfer(row rowScanner) (*core.Transfer, error) {
	var (
		t                              core.Transfer
		idStr, userStr, fromStr, toStr string
		amountStr, dateStr, typeStr    string
		createdStr                     string
	)
	err := row.Scan(&idStr, &userStr, &fromStr, &toStr, &amountStr, &dateStr,
		&t.Description, &typeStr, &createdStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan transfer: %w", err)
	}

	if t.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("parse transfer id: %w", err)
	}
	if t.UserID, err = uuid.Parse(userStr); err != nil {
		return nil, fmt.Errorf("parse transfer user id: %w", err)
	}
	if t.FromAccountID, err = uuid.Parse(fromStr); err != nil {
		return nil, fmt.Errorf("parse from account id: %w", err)
	}
	if t.ToAccountID, err = uuid.Parse(toStr); err != nil {
		return nil, fmt.Errorf("parse to account id: %w", err)
	}
	if t.Amount, err = scanDecimal(amountStr); err != nil {
		return nil, err
	}
	if t.Date, err = scanDate(dateStr); err != nil {
		return nil, err
	}
	t.Type = core.TransferType(typeStr)
	t.CreatedAt = scanTime(createdStr)
	return &t, nil
}
