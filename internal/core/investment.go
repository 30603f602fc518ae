package core

import (
	"github.com/shopspring/decimal"
)

// InvestmentMetrics are the derived figures for one holding.
type InvestmentMetrics struct {
	TotalValue    decimal.Decimal
	ROI           decimal.Decimal
	ROIPercentage decimal.Decimal
}

// Metrics computes the holding's current value and return.
//
//	TotalValue = currentPrice × quantity
//	ROI        = (currentPrice − purchasePrice) × quantity
//	ROI%       = (currentPrice − purchasePrice) / purchasePrice × 100
//
// ROI% is zero when the purchase price is not positive.
func (i Investment) Metrics() InvestmentMetrics {
	m := InvestmentMetrics{
		TotalValue: i.CurrentPrice.Mul(i.Quantity),
		ROI:        i.CurrentPrice.Sub(i.PurchasePrice).Mul(i.Quantity),
	}
	if i.PurchasePrice.IsPositive() {
		m.ROIPercentage = i.CurrentPrice.Sub(i.PurchasePrice).
			DivRound(i.PurchasePrice, 4).Mul(hundred).Round(2)
	}
	return m
}

// PortfolioSummary aggregates a user's holdings. Plain sums: no weighting,
// no currency normalization.
type PortfolioSummary struct {
	TotalValue decimal.Decimal
	TotalROI   decimal.Decimal
	Holdings   int
}

// SummarizePortfolio totals value and return over all holdings.
func SummarizePortfolio(investments []Investment) PortfolioSummary {
	s := PortfolioSummary{
		TotalValue: decimal.Zero,
		TotalROI:   decimal.Zero,
		Holdings:   len(investments),
	}
	for _, inv := range investments {
		m := inv.Metrics()
		s.TotalValue = s.TotalValue.Add(m.TotalValue)
		s.TotalROI = s.TotalROI.Add(m.ROI)
	}
	return s
}
