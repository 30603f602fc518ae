package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// Holding pairs an investment with its derived figures.
type Holding struct {
	Investment core.Investment
	Metrics    core.InvestmentMetrics
}

// InvestmentService manages investment holdings and their performance.
type InvestmentService struct {
	storage *storage.SQLiteRepository
}

func NewInvestmentService(storage *storage.SQLiteRepository) *InvestmentService {
	return &InvestmentService{storage: storage}
}

func (s *InvestmentService) Create(ctx context.Context, session core.Session, inv core.Investment) (*core.Investment, error) {
	inv.ID = uuid.New()
	inv.UserID = session.UserID
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.CreateInvestment(ctx, &inv); err != nil {
		return nil, fmt.Errorf("create investment: %w", err)
	}
	return &inv, nil
}

func (s *InvestmentService) Update(ctx context.Context, session core.Session, inv core.Investment) (*core.Investment, error) {
	inv.UserID = session.UserID
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.UpdateInvestment(ctx, &inv); err != nil {
		return nil, fmt.Errorf("update investment: %w", err)
	}
	return &inv, nil
}

func (s *InvestmentService) Delete(ctx context.Context, session core.Session, id uuid.UUID) error {
	return s.storage.DeleteInvestment(ctx, session.UserID, id)
}

// Get returns one holding with its metrics computed.
func (s *InvestmentService) Get(ctx context.Context, session core.Session, id uuid.UUID) (*Holding, error) {
	inv, err := s.storage.GetInvestment(ctx, session.UserID, id)
	if err != nil {
		return nil, err
	}
	return &Holding{Investment: *inv, Metrics: inv.Metrics()}, nil
}

// List returns all holdings with metrics computed.
func (s *InvestmentService) List(ctx context.Context, session core.Session) ([]Holding, error) {
	investments, err := s.storage.ListInvestments(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	holdings := make([]Holding, 0, len(investments))
	for _, inv := range investments {
		holdings = append(holdings, Holding{Investment: inv, Metrics: inv.Metrics()})
	}
	return holdings, nil
}

// Summary totals the portfolio.
func (s *InvestmentService) Summary(ctx context.Context, session core.Session) (core.PortfolioSummary, error) {
	investments, err := s.storage.ListInvestments(ctx, session.UserID)
	if err != nil {
		return core.PortfolioSummary{}, err
	}
	return core.SummarizePortfolio(investments), nil
}
