package worker

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func newTestWorker(t *testing.T) (*AlertWorker, *storage.SQLiteRepository) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return NewAlertWorker(repo, nil), repo
}

func TestHandleBillReminder(t *testing.T) {
	w, repo := newTestWorker(t)
	ctx := context.Background()
	userID := uuid.New()

	msg := amqp.NewBillReminderMessage(uuid.New(), userID, "Rent", "900.00", "2026-03-15")
	if err := w.HandleBillReminder(ctx, msg); err != nil {
		t.Fatalf("HandleBillReminder: %v", err)
	}

	notifications, err := repo.ListNotifications(ctx, userID, 0)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	n := notifications[0]
	if n.Kind != core.KindBillReminder {
		t.Errorf("kind = %s, want %s", n.Kind, core.KindBillReminder)
	}
	if !strings.Contains(n.Message, "Rent") || !strings.Contains(n.Message, "2026-03-15") {
		t.Errorf("message = %q", n.Message)
	}
}

func TestHandleBudgetAlert(t *testing.T) {
	w, repo := newTestWorker(t)
	ctx := context.Background()
	userID := uuid.New()

	msg := amqp.NewBudgetAlertMessage(uuid.New(), userID, "Groceries", "DANGER", "95.00")
	if err := w.HandleBudgetAlert(ctx, msg); err != nil {
		t.Fatalf("HandleBudgetAlert: %v", err)
	}

	notifications, err := repo.ListNotifications(ctx, userID, 0)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	n := notifications[0]
	if n.Kind != core.KindBudgetAlert {
		t.Errorf("kind = %s, want %s", n.Kind, core.KindBudgetAlert)
	}
	if !strings.Contains(n.Message, "95.00%") || !strings.Contains(n.Message, "DANGER") {
		t.Errorf("message = %q", n.Message)
	}
}

func TestNotificationsScopedToUser(t *testing.T) {
	w, repo := newTestWorker(t)
	ctx := context.Background()
	userID := uuid.New()

	msg := amqp.NewBillReminderMessage(uuid.New(), userID, "Rent", "900.00", "2026-03-15")
	if err := w.HandleBillReminder(ctx, msg); err != nil {
		t.Fatalf("HandleBillReminder: %v", err)
	}

	notifications, err := repo.ListNotifications(ctx, uuid.New(), 0)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("other user sees %d notifications, want 0", len(notifications))
	}
}
