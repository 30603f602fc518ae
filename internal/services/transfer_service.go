package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// TransferService moves money between accounts. The transfer record and both
// balance adjustments are committed atomically by the storage layer.
type TransferService struct {
	storage *storage.SQLiteRepository
}

func NewTransferService(storage *storage.SQLiteRepository) *TransferService {
	return &TransferService{storage: storage}
}

func (s *TransferService) Create(ctx context.Context, session core.Session, t core.Transfer) (*core.Transfer, error) {
	t.ID = uuid.New()
	t.UserID = session.UserID
	if t.Type == "" {
		t.Type = core.Internal
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, session, t); err != nil {
		return nil, err
	}
	if err := s.storage.CreateTransfer(ctx, &t); err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	return &t, nil
}

// Update rewrites a transfer. The old amount is reversed and the new one
// applied in the same transaction, so account balances end up as if the
// transfer had been created with the new values in the first place.
func (s *TransferService) Update(ctx context.Context, session core.Session, t core.Transfer) (*core.Transfer, error) {
	t.UserID = session.UserID
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, session, t); err != nil {
		return nil, err
	}

	old, err := s.storage.GetTransfer(ctx, session.UserID, t.ID)
	if err != nil {
		return nil, err
	}
	if err := s.storage.UpdateTransfer(ctx, old, &t); err != nil {
		return nil, fmt.Errorf("update transfer: %w", err)
	}
	return &t, nil
}

// Delete removes a transfer and returns the moved amount to the accounts.
func (s *TransferService) Delete(ctx context.Context, session core.Session, id uuid.UUID) error {
	t, err := s.storage.GetTransfer(ctx, session.UserID, id)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteTransfer(ctx, t); err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}

func (s *TransferService) Get(ctx context.Context, session core.Session, id uuid.UUID) (*core.Transfer, error) {
	return s.storage.GetTransfer(ctx, session.UserID, id)
}

func (s *TransferService) List(ctx context.Context, session core.Session) ([]core.Transfer, error) {
	return s.storage.ListTransfers(ctx, session.UserID)
}

// checkOwnership rejects transfers touching accounts that belong to someone
// else before the transaction starts.
func (s *TransferService) checkOwnership(ctx context.Context, session core.Session, t core.Transfer) error {
	if _, err := s.storage.GetAccount(ctx, session.UserID, t.FromAccountID); err != nil {
		return fmt.Errorf("source account: %w", err)
	}
	if _, err := s.storage.GetAccount(ctx, session.UserID, t.ToAccountID); err != nil {
		return fmt.Errorf("destination account: %w", err)
	}
	return nil
}
