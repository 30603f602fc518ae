package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

const upcomingWindowDays = 30

// DashboardService assembles the aggregate view: net worth, upcoming bills,
// budget consumption and portfolio totals. Results are cached per user.
type DashboardService struct {
	storage *storage.SQLiteRepository
	budgets *BudgetService
	clock   Clock
	cache   *cache.LRUCache[core.DashboardSummary]
}

func NewDashboardService(storage *storage.SQLiteRepository, budgets *BudgetService, clock Clock, ttl time.Duration) *DashboardService {
	return &DashboardService{
		storage: storage,
		budgets: budgets,
		clock:   clock,
		cache:   cache.NewLRUCache[core.DashboardSummary](256, ttl),
	}
}

// Cache exposes the underlying cache for cleanup registration.
func (s *DashboardService) Cache() *cache.LRUCache[core.DashboardSummary] {
	return s.cache
}

// Invalidate drops the cached summary after a write.
func (s *DashboardService) Invalidate(session core.Session) {
	s.cache.Delete(session.UserID.String())
}

func (s *DashboardService) Summary(ctx context.Context, session core.Session) (core.DashboardSummary, error) {
	key := session.UserID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	summary, err := s.build(ctx, session)
	if err != nil {
		return core.DashboardSummary{}, err
	}

	s.cache.Set(key, summary)
	return summary, nil
}

func (s *DashboardService) build(ctx context.Context, session core.Session) (core.DashboardSummary, error) {
	accounts, err := s.storage.ListAccounts(ctx, session.UserID)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("load accounts: %w", err)
	}

	today := s.clock.Today()
	upcoming, err := s.storage.ListUpcomingBills(ctx, session.UserID, today, today.AddDays(upcomingWindowDays))
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("load upcoming bills: %w", err)
	}

	overviews, err := s.budgets.Overview(ctx, session)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("evaluate budgets: %w", err)
	}

	investments, err := s.storage.ListInvestments(ctx, session.UserID)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("load investments: %w", err)
	}

	return core.DashboardSummary{
		NetWorth:      core.NetWorth(accounts),
		AccountCount:  len(accounts),
		UpcomingBills: upcoming,
		Budgets:       overviews,
		Portfolio:     core.SummarizePortfolio(investments),
	}, nil
}
