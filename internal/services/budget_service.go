package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// BudgetService manages budgets and evaluates their consumption. Reports are
// computed from expenses on every read and never stored.
type BudgetService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
	clock      Clock
}

func NewBudgetService(storage *storage.SQLiteRepository, amqpClient *amqp.Client, clock Clock) *BudgetService {
	return &BudgetService{
		storage:    storage,
		amqpClient: amqpClient,
		clock:      clock,
	}
}

func (s *BudgetService) Create(ctx context.Context, session core.Session, b core.Budget) (*core.Budget, error) {
	b.ID = uuid.New()
	b.UserID = session.UserID
	b.Active = true
	if b.AlertThreshold == 0 {
		b.AlertThreshold = core.DefaultAlertThreshold
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.CreateBudget(ctx, &b); err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return &b, nil
}

func (s *BudgetService) Update(ctx context.Context, session core.Session, b core.Budget) (*core.Budget, error) {
	b.UserID = session.UserID
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.UpdateBudget(ctx, &b); err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}
	return &b, nil
}

func (s *BudgetService) Delete(ctx context.Context, session core.Session, id uuid.UUID) error {
	return s.storage.DeleteBudget(ctx, session.UserID, id)
}

func (s *BudgetService) List(ctx context.Context, session core.Session) ([]core.Budget, error) {
	return s.storage.ListBudgets(ctx, session.UserID)
}

// Evaluate computes the report for one budget and publishes an alert when it
// sits at or past its warning threshold.
func (s *BudgetService) Evaluate(ctx context.Context, session core.Session, id uuid.UUID) (*core.BudgetOverview, error) {
	b, err := s.storage.GetBudget(ctx, session.UserID, id)
	if err != nil {
		return nil, err
	}

	overview, err := s.evaluate(ctx, *b)
	if err != nil {
		return nil, err
	}

	if overview.Report.Status != core.StatusNormal {
		s.publishAlert(ctx, overview)
	}
	return overview, nil
}

// Overview evaluates every active budget. It never publishes alerts: the
// dashboard would spam the queue on every refresh.
func (s *BudgetService) Overview(ctx context.Context, session core.Session) ([]core.BudgetOverview, error) {
	budgets, err := s.storage.ListBudgets(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	var overviews []core.BudgetOverview
	for _, b := range budgets {
		if !b.Active {
			continue
		}
		overview, err := s.evaluate(ctx, b)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, *overview)
	}
	return overviews, nil
}

func (s *BudgetService) evaluate(ctx context.Context, b core.Budget) (*core.BudgetOverview, error) {
	var expenses []core.Expense
	if b.CategoryID != nil {
		var err error
		expenses, err = s.storage.GetExpensesForCategoryInRange(ctx, b.UserID, *b.CategoryID, b.StartDate, b.EndDate)
		if err != nil {
			return nil, fmt.Errorf("load budget expenses: %w", err)
		}
	}

	return &core.BudgetOverview{
		Budget: b,
		Report: core.EvaluateBudget(b, expenses),
	}, nil
}

func (s *BudgetService) publishAlert(ctx context.Context, overview *core.BudgetOverview) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping budget alert",
			"budget_id", overview.Budget.ID)
		return
	}

	msg := amqp.NewBudgetAlertMessage(
		overview.Budget.ID,
		overview.Budget.UserID,
		overview.Budget.Name,
		string(overview.Report.Status),
		overview.Report.PercentageUsed.StringFixed(2),
	)
	if err := s.amqpClient.PublishBudgetAlert(ctx, msg); err != nil {
		// The report is still served; the alert is best effort.
		slog.ErrorContext(ctx, "Failed to publish budget alert",
			"budget_id", overview.Budget.ID,
			"error", err)
	}
}
