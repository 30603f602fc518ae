package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// ExpenseService manages the expenses budgets are evaluated against.
type ExpenseService struct {
	storage *storage.SQLiteRepository
}

func NewExpenseService(storage *storage.SQLiteRepository) *ExpenseService {
	return &ExpenseService{storage: storage}
}

func (s *ExpenseService) Create(ctx context.Context, session core.Session, e core.Expense) (*core.Expense, error) {
	e.ID = uuid.New()
	e.UserID = session.UserID
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.CreateExpense(ctx, &e); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &e, nil
}

func (s *ExpenseService) Update(ctx context.Context, session core.Session, e core.Expense) (*core.Expense, error) {
	e.UserID = session.UserID
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.UpdateExpense(ctx, &e); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return &e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, session core.Session, id uuid.UUID) error {
	return s.storage.DeleteExpense(ctx, session.UserID, id)
}

func (s *ExpenseService) Get(ctx context.Context, session core.Session, id uuid.UUID) (*core.Expense, error) {
	return s.storage.GetExpense(ctx, session.UserID, id)
}

func (s *ExpenseService) List(ctx context.Context, session core.Session) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx, session.UserID)
}

// CategoryService manages the categories expenses and budgets share.
type CategoryService struct {
	storage *storage.SQLiteRepository
}

func NewCategoryService(storage *storage.SQLiteRepository) *CategoryService {
	return &CategoryService{storage: storage}
}

func (s *CategoryService) Create(ctx context.Context, session core.Session, c core.Category) (*core.Category, error) {
	c.ID = uuid.New()
	c.UserID = session.UserID
	if c.Name == "" {
		return nil, core.ErrEmptyName
	}
	if err := s.storage.CreateCategory(ctx, &c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &c, nil
}

func (s *CategoryService) Delete(ctx context.Context, session core.Session, id uuid.UUID) error {
	return s.storage.DeleteCategory(ctx, session.UserID, id)
}

func (s *CategoryService) List(ctx context.Context, session core.Session) ([]core.Category, error) {
	return s.storage.ListCategories(ctx, session.UserID)
}
