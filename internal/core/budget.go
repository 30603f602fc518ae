package core

import (
	"github.com/shopspring/decimal"
)

// BudgetStatus is the consumption tier of a budget.
type BudgetStatus string

const (
	StatusNormal   BudgetStatus = "NORMAL"
	StatusWarning  BudgetStatus = "WARNING"
	StatusDanger   BudgetStatus = "DANGER"
	StatusExceeded BudgetStatus = "EXCEEDED"
)

// BudgetReport carries the derived figures for one budget. They are
// recomputed on every read and never persisted.
type BudgetReport struct {
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed decimal.Decimal
	Status         BudgetStatus
}

var hundred = decimal.NewFromInt(100)

// EvaluateBudget computes spent, remaining, percentage used and status for a
// budget against the expenses of its category.
//
// An expense counts when its category matches the budget's and its date is
// inside [StartDate, EndDate], both ends inclusive. A budget without a
// category never accumulates spend: the evaluator does not aggregate
// uncategorized or cross-category expenses.
func EvaluateBudget(b Budget, expenses []Expense) BudgetReport {
	spent := decimal.Zero

	if b.CategoryID != nil && !b.StartDate.IsZero() && !b.EndDate.IsZero() {
		// Inclusive range via exclusive bounds shifted by one day.
		lower := b.StartDate.AddDays(-1)
		upper := b.EndDate.AddDays(1)
		for _, e := range expenses {
			if e.CategoryID == nil || *e.CategoryID != *b.CategoryID {
				continue
			}
			if e.Date.IsZero() {
				continue
			}
			if e.Date.After(lower.Time) && e.Date.Before(upper.Time) {
				spent = spent.Add(e.Amount)
			}
		}
	}

	report := BudgetReport{
		Spent:     spent,
		Remaining: b.AmountLimit.Sub(spent),
	}

	if b.AmountLimit.IsPositive() {
		report.PercentageUsed = spent.Div(b.AmountLimit).Mul(hundred).Round(2)
	}

	report.Status = budgetStatus(report.PercentageUsed, b.AlertThreshold)
	return report
}

// budgetStatus maps percentage used to a tier. The alert threshold only
// moves the WARNING floor; the 90 and 100 cutoffs are fixed. A percentage
// below the threshold is always NORMAL, even when the threshold sits inside
// the fixed DANGER band.
func budgetStatus(pct decimal.Decimal, alertThreshold int) BudgetStatus {
	if pct.LessThan(decimal.NewFromInt(int64(alertThreshold))) {
		return StatusNormal
	}
	switch {
	case pct.GreaterThanOrEqual(hundred):
		return StatusExceeded
	case pct.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return StatusDanger
	default:
		return StatusWarning
	}
}
