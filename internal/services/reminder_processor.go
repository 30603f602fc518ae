package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// ReminderProcessor sweeps active bills across all users: it rolls forward
// next payment dates that fell into the past and publishes a reminder for
// every bill entering its reminder window.
type ReminderProcessor struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
	clock      Clock
}

func NewReminderProcessor(storage *storage.SQLiteRepository, amqpClient *amqp.Client, clock Clock) *ReminderProcessor {
	return &ReminderProcessor{
		storage:    storage,
		amqpClient: amqpClient,
		clock:      clock,
	}
}

// ProcessBills runs one sweep and returns how many reminders were published.
func (p *ReminderProcessor) ProcessBills(ctx context.Context) (int, error) {
	if p.storage == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	bills, err := p.storage.ListActiveBills(ctx)
	if err != nil {
		return 0, fmt.Errorf("load active bills: %w", err)
	}

	today := p.clock.Today()
	slog.InfoContext(ctx, "Processing bill schedules",
		"total_active", len(bills),
		"processing_date", today.String())

	published := 0
	for _, b := range bills {
		if refreshed := p.refreshSchedule(ctx, &b, today); !refreshed {
			continue
		}

		if p.dueForReminder(b, today) {
			if err := p.publishReminder(ctx, b); err != nil {
				slog.ErrorContext(ctx, "Failed to publish bill reminder",
					"bill_id", b.ID,
					"error", err)
				continue
			}
			published++
		}
	}

	slog.InfoContext(ctx, "Bill schedule processing complete",
		"published", published,
		"total_checked", len(bills))
	return published, nil
}

// refreshSchedule recomputes the next payment date and persists it when it
// changed. Returns false when the bill could not be brought up to date.
func (p *ReminderProcessor) refreshSchedule(ctx context.Context, b *core.Bill, today core.Date) bool {
	next := core.NextPaymentDate(b.StartDate, b.Cycle, b.DueDay, b.EndDate, today)
	if sameSchedule(b.NextPaymentDate, next) {
		return true
	}

	b.NextPaymentDate = next
	if err := p.storage.UpdateBill(ctx, b); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh bill schedule",
			"bill_id", b.ID,
			"error", err)
		return false
	}

	slog.InfoContext(ctx, "Bill schedule refreshed",
		"bill_id", b.ID,
		"next_payment_date", dateLog(next))
	return true
}

func (p *ReminderProcessor) dueForReminder(b core.Bill, today core.Date) bool {
	if b.NextPaymentDate == nil {
		return false
	}
	days := today.DaysUntil(*b.NextPaymentDate)
	return days >= 0 && days <= b.ReminderDays
}

func (p *ReminderProcessor) publishReminder(ctx context.Context, b core.Bill) error {
	if p.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping bill reminder",
			"bill_id", b.ID)
		return nil
	}

	msg := amqp.NewBillReminderMessage(
		b.ID,
		b.UserID,
		b.Name,
		core.FormatAmount(b.Amount),
		b.NextPaymentDate.String(),
	)
	return p.amqpClient.PublishBillReminder(ctx, msg)
}

func sameSchedule(a, b *core.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b.Time)
}
