// Package worker turns queued reminder and alert messages into stored
// notifications.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type AlertWorker struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewAlertWorker(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *AlertWorker {
	return &AlertWorker{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// Run consumes both queues until the context is cancelled. Either consumer
// failing stops the other.
func (w *AlertWorker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.amqpClient.ConsumeBillReminders(ctx, func(msg *amqp.BillReminderMessage) error {
			return w.HandleBillReminder(ctx, msg)
		})
	})
	g.Go(func() error {
		return w.amqpClient.ConsumeBudgetAlerts(ctx, func(msg *amqp.BudgetAlertMessage) error {
			return w.HandleBudgetAlert(ctx, msg)
		})
	})

	return g.Wait()
}

// HandleBillReminder stores a notification for an upcoming bill payment.
func (w *AlertWorker) HandleBillReminder(ctx context.Context, msg *amqp.BillReminderMessage) error {
	slog.InfoContext(ctx, "Processing bill reminder",
		"bill_id", msg.BillID,
		"user_id", msg.UserID,
		"due_date", msg.DueDate)

	n := core.Notification{
		ID:      uuid.New(),
		UserID:  msg.UserID,
		Kind:    core.KindBillReminder,
		Message: fmt.Sprintf("%s (%s) is due on %s", msg.Name, msg.Amount, msg.DueDate),
	}
	if err := w.storage.CreateNotification(ctx, &n); err != nil {
		return fmt.Errorf("store bill reminder: %w", err)
	}
	return nil
}

// HandleBudgetAlert stores a notification for a budget that crossed its
// alert threshold.
func (w *AlertWorker) HandleBudgetAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	slog.InfoContext(ctx, "Processing budget alert",
		"budget_id", msg.BudgetID,
		"user_id", msg.UserID,
		"status", msg.Status)

	n := core.Notification{
		ID:      uuid.New(),
		UserID:  msg.UserID,
		Kind:    core.KindBudgetAlert,
		Message: fmt.Sprintf("Budget %q is at %s%% (%s)", msg.Name, msg.PercentageUsed, msg.Status),
	}
	if err := w.storage.CreateNotification(ctx, &n); err != nil {
		return fmt.Errorf("store budget alert: %w", err)
	}
	return nil
}
