package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// BillService manages recurring bills. The next payment date is derived from
// the schedule on every write; clients never set it directly.
type BillService struct {
	storage *storage.SQLiteRepository
	clock   Clock
}

func NewBillService(storage *storage.SQLiteRepository, clock Clock) *BillService {
	return &BillService{storage: storage, clock: clock}
}

func (s *BillService) Create(ctx context.Context, session core.Session, b core.Bill) (*core.Bill, error) {
	b.ID = uuid.New()
	b.UserID = session.UserID
	b.Active = true
	if b.ReminderDays == 0 {
		b.ReminderDays = core.DefaultReminderDays
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	b.NextPaymentDate = core.NextPaymentDate(b.StartDate, b.Cycle, b.DueDay, b.EndDate, s.clock.Today())
	if err := s.storage.CreateBill(ctx, &b); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}

	slog.InfoContext(ctx, "Bill created",
		"bill_id", b.ID,
		"cycle", b.Cycle,
		"next_payment_date", dateLog(b.NextPaymentDate))
	return &b, nil
}

func (s *BillService) Update(ctx context.Context, session core.Session, b core.Bill) (*core.Bill, error) {
	b.UserID = session.UserID
	if err := b.Validate(); err != nil {
		return nil, err
	}

	current, err := s.storage.GetBill(ctx, session.UserID, b.ID)
	if err != nil {
		return nil, err
	}
	b.LastPaymentDate = current.LastPaymentDate
	b.CreatedAt = current.CreatedAt

	b.NextPaymentDate = core.NextPaymentDate(b.StartDate, b.Cycle, b.DueDay, b.EndDate, s.clock.Today())
	if err := s.storage.UpdateBill(ctx, &b); err != nil {
		return nil, fmt.Errorf("update bill: %w", err)
	}
	return &b, nil
}

// MarkPaid records a payment made today and rolls the schedule forward.
func (s *BillService) MarkPaid(ctx context.Context, session core.Session, id uuid.UUID) (*core.Bill, error) {
	b, err := s.storage.GetBill(ctx, session.UserID, id)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	b.LastPaymentDate = &today
	b.NextPaymentDate = core.NextPaymentDate(b.StartDate, b.Cycle, b.DueDay, b.EndDate, today)
	if err := s.storage.UpdateBill(ctx, b); err != nil {
		return nil, fmt.Errorf("mark bill paid: %w", err)
	}

	slog.InfoContext(ctx, "Bill marked paid",
		"bill_id", b.ID,
		"next_payment_date", dateLog(b.NextPaymentDate))
	return b, nil
}

// Deactivate stops the schedule without deleting the bill's history.
func (s *BillService) Deactivate(ctx context.Context, session core.Session, id uuid.UUID) (*core.Bill, error) {
	b, err := s.storage.GetBill(ctx, session.UserID, id)
	if err != nil {
		return nil, err
	}
	b.Active = false
	if err := s.storage.UpdateBill(ctx, b); err != nil {
		return nil, fmt.Errorf("deactivate bill: %w", err)
	}
	return b, nil
}

func (s *BillService) Delete(ctx context.Context, session core.Session, id uuid.UUID) error {
	return s.storage.DeleteBill(ctx, session.UserID, id)
}

func (s *BillService) Get(ctx context.Context, session core.Session, id uuid.UUID) (*core.Bill, error) {
	return s.storage.GetBill(ctx, session.UserID, id)
}

func (s *BillService) List(ctx context.Context, session core.Session) ([]core.Bill, error) {
	return s.storage.ListBills(ctx, session.UserID)
}

// Upcoming lists active bills due within the next days.
func (s *BillService) Upcoming(ctx context.Context, session core.Session, days int) ([]core.Bill, error) {
	if days <= 0 {
		days = 30
	}
	today := s.clock.Today()
	return s.storage.ListUpcomingBills(ctx, session.UserID, today, today.AddDays(days))
}

func dateLog(d *core.Date) string {
	if d == nil {
		return "none"
	}
	return d.String()
}
