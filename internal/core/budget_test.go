package core

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testBudget(categoryID *uuid.UUID) Budget {
	return Budget{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		CategoryID:     categoryID,
		Name:           "Groceries",
		AmountLimit:    dec("100"),
		Period:         PeriodMonthly,
		StartDate:      NewDate(2024, 1, 1),
		EndDate:        NewDate(2024, 1, 31),
		AlertThreshold: 80,
		Active:         true,
	}
}

func expenseOn(categoryID *uuid.UUID, date Date, amount string) Expense {
	return Expense{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Amount:     dec(amount),
		Date:       date,
	}
}

func TestEvaluateBudget_StatusBoundaries(t *testing.T) {
	catID := uuid.New()
	budget := testBudget(&catID)

	tests := []struct {
		spent  string
		status BudgetStatus
	}{
		{"79.99", StatusNormal},
		{"80.00", StatusWarning},
		{"89.99", StatusWarning},
		{"90.00", StatusDanger},
		{"99.99", StatusDanger},
		{"100.00", StatusExceeded},
		{"150.00", StatusExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			expenses := []Expense{expenseOn(&catID, NewDate(2024, 1, 10), tt.spent)}
			report := EvaluateBudget(budget, expenses)

			if report.Status != tt.status {
				t.Errorf("status = %s, want %s (spent %s)", report.Status, tt.status, tt.spent)
			}
			if !report.Spent.Equal(dec(tt.spent)) {
				t.Errorf("spent = %s, want %s", report.Spent, tt.spent)
			}
			wantRemaining := dec("100").Sub(dec(tt.spent))
			if !report.Remaining.Equal(wantRemaining) {
				t.Errorf("remaining = %s, want %s", report.Remaining, wantRemaining)
			}
		})
	}
}

func TestEvaluateBudget_InclusiveDateWindow(t *testing.T) {
	catID := uuid.New()
	budget := testBudget(&catID)

	tests := []struct {
		name      string
		date      Date
		wantSpent string
	}{
		{"day before window", NewDate(2023, 12, 31), "0"},
		{"first day counts", NewDate(2024, 1, 1), "10"},
		{"last day counts", NewDate(2024, 1, 31), "10"},
		{"day after window", NewDate(2024, 2, 1), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses := []Expense{expenseOn(&catID, tt.date, "10")}
			report := EvaluateBudget(budget, expenses)
			if !report.Spent.Equal(dec(tt.wantSpent)) {
				t.Errorf("spent = %s, want %s", report.Spent, tt.wantSpent)
			}
		})
	}
}

func TestEvaluateBudget_CategoryIsolation(t *testing.T) {
	catID := uuid.New()
	otherCat := uuid.New()
	budget := testBudget(&catID)

	expenses := []Expense{
		expenseOn(&catID, NewDate(2024, 1, 10), "25"),
		expenseOn(&otherCat, NewDate(2024, 1, 10), "999"),
		expenseOn(nil, NewDate(2024, 1, 10), "999"),
	}

	report := EvaluateBudget(budget, expenses)
	if !report.Spent.Equal(dec("25")) {
		t.Errorf("spent = %s, want 25: foreign-category expenses leaked in", report.Spent)
	}
}

func TestEvaluateBudget_NoCategory(t *testing.T) {
	budget := testBudget(nil)
	catID := uuid.New()
	expenses := []Expense{expenseOn(&catID, NewDate(2024, 1, 10), "50")}

	report := EvaluateBudget(budget, expenses)
	if !report.Spent.IsZero() {
		t.Errorf("spent = %s, want 0 for budget without category", report.Spent)
	}
	if report.Status != StatusNormal {
		t.Errorf("status = %s, want NORMAL", report.Status)
	}
	if !report.Remaining.Equal(dec("100")) {
		t.Errorf("remaining = %s, want full limit", report.Remaining)
	}
}

func TestEvaluateBudget_PercentageRounding(t *testing.T) {
	catID := uuid.New()
	budget := testBudget(&catID)
	budget.AmountLimit = dec("300")

	expenses := []Expense{expenseOn(&catID, NewDate(2024, 1, 10), "100")}
	report := EvaluateBudget(budget, expenses)

	if !report.PercentageUsed.Equal(dec("33.33")) {
		t.Errorf("percentageUsed = %s, want 33.33", report.PercentageUsed)
	}
}

func TestEvaluateBudget_ThresholdAboveDangerBand(t *testing.T) {
	// The threshold only moves the WARNING floor; below it everything
	// stays NORMAL even inside the fixed 90-100 band.
	catID := uuid.New()
	budget := testBudget(&catID)
	budget.AlertThreshold = 95

	expenses := []Expense{expenseOn(&catID, NewDate(2024, 1, 10), "92")}
	report := EvaluateBudget(budget, expenses)
	if report.Status != StatusNormal {
		t.Errorf("status = %s, want NORMAL with threshold 95 and 92%% used", report.Status)
	}

	expenses = []Expense{expenseOn(&catID, NewDate(2024, 1, 10), "96")}
	report = EvaluateBudget(budget, expenses)
	if report.Status != StatusDanger {
		t.Errorf("status = %s, want DANGER with threshold 95 and 96%% used", report.Status)
	}
}
