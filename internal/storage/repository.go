// Package storage persists the fintrack domain in SQLite.
//
// Monetary values are stored as decimal strings, never floats, so amounts
// survive round trips exactly. Calendar dates are stored as YYYY-MM-DD text.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

const timeLayout = time.RFC3339

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Serialized access keeps the transfer transactions free of
	// SQLITE_BUSY surprises under the single-process model.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Ping checks database liveness for readiness probes.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- scan helpers ---

func scanDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

func scanDate(s string) (core.Date, error) {
	if s == "" {
		return core.Date{}, nil
	}
	return core.ParseDate(s)
}

func scanNullDate(ns sql.NullString) (*core.Date, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := core.ParseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func scanNullUUID(ns sql.NullString) (*uuid.UUID, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	id, err := uuid.Parse(ns.String)
	if err != nil {
		return nil, fmt.Errorf("parse uuid %q: %w", ns.String, err)
	}
	return &id, nil
}

func scanTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullDate(d *core.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// --- accounts ---

func (r *SQLiteRepository) CreateAccount(ctx context.Context, a *core.Account) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, name, account_type, balance, currency, institution, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.UserID.String(), a.Name, string(a.Type),
		a.Balance.String(), a.Currency, a.Institution, boolToInt(a.Active),
		now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAccount(ctx context.Context, userID, id uuid.UUID) (*core.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, account_type, balance, currency, institution, is_active, created_at, updated_at
		FROM accounts WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	return scanAccount(row)
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context, userID uuid.UUID) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, account_type, balance, currency, institution, is_active, created_at, updated_at
		FROM accounts WHERE user_id = ? ORDER BY name`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (r *SQLiteRepository) UpdateAccount(ctx context.Context, a *core.Account) error {
	a.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET name = ?, account_type = ?, balance = ?, currency = ?, institution = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		a.Name, string(a.Type), a.Balance.String(), a.Currency, a.Institution,
		boolToInt(a.Active), a.UpdatedAt.Format(timeLayout),
		a.ID.String(), a.UserID.String())
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteAccount(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*core.Account, error) {
	var (
		a                    core.Account
		idStr, userStr       string
		typeStr, balanceStr  string
		createdStr, updStr   string
		active               int
	)
	err := row.Scan(&idStr, &userStr, &a.Name, &typeStr, &balanceStr,
		&a.Currency, &a.Institution, &active, &createdStr, &updStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}

	if a.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}
	if a.UserID, err = uuid.Parse(userStr); err != nil {
		return nil, fmt.Errorf("parse account user id: %w", err)
	}
	if a.Balance, err = scanDecimal(balanceStr); err != nil {
		return nil, err
	}
	a.Type = core.AccountType(typeStr)
	a.Active = active != 0
	a.CreatedAt = scanTime(createdStr)
	a.UpdatedAt = scanTime(updStr)
	return &a, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
