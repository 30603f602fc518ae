package core

import (
	"github.com/shopspring/decimal"
)

// BudgetOverview pairs a budget with its freshly evaluated report.
type BudgetOverview struct {
	Budget Budget
	Report BudgetReport
}

// DashboardSummary is the aggregate view served on the dashboard.
type DashboardSummary struct {
	NetWorth      decimal.Decimal
	AccountCount  int
	UpcomingBills []Bill
	Budgets       []BudgetOverview
	Portfolio     PortfolioSummary
}

// NetWorth sums the balances of active accounts. Credit card balances are
// stored signed, so they subtract naturally.
func NetWorth(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if !a.Active {
			continue
		}
		total = total.Add(a.Balance)
	}
	return total
}
