package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// AccountService manages the accounts money moves between.
type AccountService struct {
	storage *storage.SQLiteRepository
}

func NewAccountService(storage *storage.SQLiteRepository) *AccountService {
	return &AccountService{storage: storage}
}

func (s *AccountService) Create(ctx context.Context, session core.Session, a core.Account) (*core.Account, error) {
	a.ID = uuid.New()
	a.UserID = session.UserID
	a.Active = true
	if a.Currency == "" {
		a.Currency = "EUR"
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.CreateAccount(ctx, &a); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &a, nil
}

func (s *AccountService) Get(ctx context.Context, session core.Session, id uuid.UUID) (*core.Account, error) {
	return s.storage.GetAccount(ctx, session.UserID, id)
}

func (s *AccountService) List(ctx context.Context, session core.Session) ([]core.Account, error) {
	return s.storage.ListAccounts(ctx, session.UserID)
}

func (s *AccountService) Update(ctx context.Context, session core.Session, a core.Account) (*core.Account, error) {
	a.UserID = session.UserID
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.UpdateAccount(ctx, &a); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	return &a, nil
}

func (s *AccountService) Delete(ctx context.Context, session core.Session, id uuid.UUID) error {
	return s.storage.DeleteAccount(ctx, session.UserID, id)
}
