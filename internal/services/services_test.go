package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type fixedClock struct {
	today core.Date
}

func (c fixedClock) Today() core.Date { return c.today }

func newTestStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func testSession() core.Session {
	return core.Session{UserID: uuid.New()}
}

func TestBillService_CreateComputesNextPaymentDate(t *testing.T) {
	repo := newTestStorage(t)
	clock := fixedClock{today: core.NewDate(2026, 3, 10)}
	svc := NewBillService(repo, clock)
	session := testSession()

	b, err := svc.Create(context.Background(), session, core.Bill{
		Name:      "Rent",
		Amount:    dec(t, "900"),
		Cycle:     core.Monthly,
		DueDay:    15,
		StartDate: core.NewDate(2026, 1, 15),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if b.NextPaymentDate == nil {
		t.Fatal("next payment date not computed")
	}
	if got, want := b.NextPaymentDate.String(), "2026-03-15"; got != want {
		t.Errorf("next payment date = %s, want %s", got, want)
	}
	if b.ReminderDays != core.DefaultReminderDays {
		t.Errorf("reminder days = %d, want default %d", b.ReminderDays, core.DefaultReminderDays)
	}
	if !b.Active {
		t.Error("new bill should be active")
	}
}

func TestBillService_CreateRejectsInvalidDueDay(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewBillService(repo, fixedClock{today: core.NewDate(2026, 3, 10)})

	_, err := svc.Create(context.Background(), testSession(), core.Bill{
		Name:      "Rent",
		Amount:    dec(t, "900"),
		Cycle:     core.Monthly,
		DueDay:    31,
		StartDate: core.NewDate(2026, 1, 31),
	})
	if !errors.Is(err, core.ErrInvalidDueDay) {
		t.Errorf("expected ErrInvalidDueDay, got %v", err)
	}
}

func TestBillService_MarkPaidRollsScheduleForward(t *testing.T) {
	repo := newTestStorage(t)
	clock := fixedClock{today: core.NewDate(2026, 3, 14)}
	svc := NewBillService(repo, clock)
	session := testSession()

	b, err := svc.Create(context.Background(), session, core.Bill{
		Name:      "Rent",
		Amount:    dec(t, "900"),
		Cycle:     core.Monthly,
		DueDay:    15,
		StartDate: core.NewDate(2026, 1, 15),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	paid, err := svc.MarkPaid(context.Background(), session, b.ID)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if paid.LastPaymentDate == nil || paid.LastPaymentDate.String() != "2026-03-14" {
		t.Errorf("last payment date = %v, want 2026-03-14", paid.LastPaymentDate)
	}
	if paid.NextPaymentDate == nil || paid.NextPaymentDate.String() != "2026-03-15" {
		t.Errorf("next payment date = %v, want 2026-03-15", paid.NextPaymentDate)
	}
}

func TestBillService_UpcomingFiltersByWindow(t *testing.T) {
	repo := newTestStorage(t)
	clock := fixedClock{today: core.NewDate(2026, 3, 10)}
	svc := NewBillService(repo, clock)
	session := testSession()

	mk := func(name string, startDay int, cycle core.BillingCycle, dueDay int) {
		t.Helper()
		_, err := svc.Create(context.Background(), session, core.Bill{
			Name:      name,
			Amount:    dec(t, "50"),
			Cycle:     cycle,
			DueDay:    dueDay,
			StartDate: core.NewDate(2026, 1, startDay),
		})
		if err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	mk("monthly soon", 15, core.Monthly, 15)  // next: 2026-03-15
	mk("yearly far", 20, core.Yearly, 20)     // next: 2027-01-20

	got, err := svc.Upcoming(context.Background(), session, 7)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(got) != 1 || got[0].Name != "monthly soon" {
		t.Fatalf("got %d bills %v, want only the monthly one", len(got), got)
	}
}

func TestBudgetService_EvaluateAgainstExpenses(t *testing.T) {
	repo := newTestStorage(t)
	clock := fixedClock{today: core.NewDate(2026, 3, 20)}
	budgets := NewBudgetService(repo, nil, clock)
	expenses := NewExpenseService(repo)
	categories := NewCategoryService(repo)
	session := testSession()
	ctx := context.Background()

	cat, err := categories.Create(ctx, session, core.Category{Name: "Groceries"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	b, err := budgets.Create(ctx, session, core.Budget{
		CategoryID:  &cat.ID,
		Name:        "Groceries March",
		AmountLimit: dec(t, "400"),
		Period:      core.PeriodMonthly,
		StartDate:   core.NewDate(2026, 3, 1),
		EndDate:     core.NewDate(2026, 3, 31),
	})
	if err != nil {
		t.Fatalf("create budget: %v", err)
	}
	if b.AlertThreshold != core.DefaultAlertThreshold {
		t.Errorf("threshold = %d, want default %d", b.AlertThreshold, core.DefaultAlertThreshold)
	}

	spend := func(amount string, day int) {
		t.Helper()
		_, err := expenses.Create(ctx, session, core.Expense{
			CategoryID: &cat.ID,
			Amount:     dec(t, amount),
			Date:       core.NewDate(2026, 3, day),
		})
		if err != nil {
			t.Fatalf("create expense: %v", err)
		}
	}
	spend("150", 5)
	spend("230", 12)

	overview, err := budgets.Evaluate(ctx, session, b.ID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !overview.Report.Spent.Equal(dec(t, "380")) {
		t.Errorf("spent = %s, want 380", overview.Report.Spent)
	}
	if !overview.Report.PercentageUsed.Equal(dec(t, "95")) {
		t.Errorf("percentage = %s, want 95", overview.Report.PercentageUsed)
	}
	if overview.Report.Status != core.StatusDanger {
		t.Errorf("status = %s, want DANGER", overview.Report.Status)
	}
}

func TestTransferService_LifecycleKeepsBalancesConsistent(t *testing.T) {
	repo := newTestStorage(t)
	accounts := NewAccountService(repo)
	transfers := NewTransferService(repo)
	session := testSession()
	ctx := context.Background()

	from, err := accounts.Create(ctx, session, core.Account{
		Name: "Checking", Type: core.Checking, Balance: dec(t, "500"),
	})
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	to, err := accounts.Create(ctx, session, core.Account{
		Name: "Savings", Type: core.Savings, Balance: dec(t, "200"),
	})
	if err != nil {
		t.Fatalf("create destination: %v", err)
	}

	balance := func(id uuid.UUID) decimal.Decimal {
		t.Helper()
		a, err := accounts.Get(ctx, session, id)
		if err != nil {
			t.Fatalf("get account: %v", err)
		}
		return a.Balance
	}

	tr, err := transfers.Create(ctx, session, core.Transfer{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        dec(t, "150"),
		Date:          core.NewDate(2026, 3, 10),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !balance(from.ID).Equal(dec(t, "350")) || !balance(to.ID).Equal(dec(t, "350")) {
		t.Fatalf("after create: %s / %s, want 350 / 350", balance(from.ID), balance(to.ID))
	}

	tr.Amount = dec(t, "50")
	if _, err := transfers.Update(ctx, session, *tr); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !balance(from.ID).Equal(dec(t, "450")) || !balance(to.ID).Equal(dec(t, "250")) {
		t.Fatalf("after update: %s / %s, want 450 / 250", balance(from.ID), balance(to.ID))
	}

	if err := transfers.Delete(ctx, session, tr.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !balance(from.ID).Equal(dec(t, "500")) || !balance(to.ID).Equal(dec(t, "200")) {
		t.Fatalf("after delete: %s / %s, want 500 / 200", balance(from.ID), balance(to.ID))
	}
}

func TestTransferService_RejectsForeignAccounts(t *testing.T) {
	repo := newTestStorage(t)
	accounts := NewAccountService(repo)
	transfers := NewTransferService(repo)
	ctx := context.Background()

	owner := testSession()
	from, err := accounts.Create(ctx, owner, core.Account{
		Name: "Checking", Type: core.Checking, Balance: dec(t, "500"),
	})
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	to, err := accounts.Create(ctx, owner, core.Account{
		Name: "Savings", Type: core.Savings, Balance: dec(t, "200"),
	})
	if err != nil {
		t.Fatalf("create destination: %v", err)
	}

	intruder := testSession()
	_, err = transfers.Create(ctx, intruder, core.Transfer{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        dec(t, "150"),
		Date:          core.NewDate(2026, 3, 10),
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign accounts, got %v", err)
	}
}

func TestTransferService_RejectsSameAccount(t *testing.T) {
	repo := newTestStorage(t)
	transfers := NewTransferService(repo)
	id := uuid.New()

	_, err := transfers.Create(context.Background(), testSession(), core.Transfer{
		FromAccountID: id,
		ToAccountID:   id,
		Amount:        dec(t, "10"),
		Date:          core.NewDate(2026, 3, 10),
	})
	if !errors.Is(err, core.ErrSameAccount) {
		t.Errorf("expected ErrSameAccount, got %v", err)
	}
}

func TestReminderProcessor_RefreshesStaleSchedules(t *testing.T) {
	repo := newTestStorage(t)
	ctx := context.Background()
	session := testSession()

	// Created in January, so the stored next date is stale by March.
	january := fixedClock{today: core.NewDate(2026, 1, 10)}
	bills := NewBillService(repo, january)
	b, err := bills.Create(ctx, session, core.Bill{
		Name:      "Rent",
		Amount:    dec(t, "900"),
		Cycle:     core.Monthly,
		DueDay:    15,
		StartDate: core.NewDate(2026, 1, 15),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	march := fixedClock{today: core.NewDate(2026, 3, 13)}
	processor := NewReminderProcessor(repo, nil, march)
	published, err := processor.ProcessBills(ctx)
	if err != nil {
		t.Fatalf("ProcessBills: %v", err)
	}

	// The refreshed next date (2026-03-15) is 2 days out, inside the
	// default 3 day reminder window.
	if published != 1 {
		t.Errorf("published = %d, want 1", published)
	}

	got, err := bills.Get(ctx, session, b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.NextPaymentDate == nil || got.NextPaymentDate.String() != "2026-03-15" {
		t.Errorf("next payment date = %v, want 2026-03-15", got.NextPaymentDate)
	}
}

func TestReminderProcessor_SkipsBillsOutsideWindow(t *testing.T) {
	repo := newTestStorage(t)
	ctx := context.Background()
	session := testSession()

	clock := fixedClock{today: core.NewDate(2026, 3, 1)}
	bills := NewBillService(repo, clock)
	if _, err := bills.Create(ctx, session, core.Bill{
		Name:      "Rent",
		Amount:    dec(t, "900"),
		Cycle:     core.Monthly,
		DueDay:    15,
		StartDate: core.NewDate(2026, 1, 15),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	processor := NewReminderProcessor(repo, nil, clock)
	published, err := processor.ProcessBills(ctx)
	if err != nil {
		t.Fatalf("ProcessBills: %v", err)
	}
	if published != 0 {
		t.Errorf("published = %d, want 0 for a bill due in 14 days", published)
	}
}

func TestDashboardService_SummaryAndCache(t *testing.T) {
	repo := newTestStorage(t)
	clock := fixedClock{today: core.NewDate(2026, 3, 10)}
	accounts := NewAccountService(repo)
	budgets := NewBudgetService(repo, nil, clock)
	dashboard := NewDashboardService(repo, budgets, clock, time.Minute)
	session := testSession()
	ctx := context.Background()

	if _, err := accounts.Create(ctx, session, core.Account{
		Name: "Checking", Type: core.Checking, Balance: dec(t, "1000"),
	}); err != nil {
		t.Fatalf("create account: %v", err)
	}

	summary, err := dashboard.Summary(ctx, session)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !summary.NetWorth.Equal(dec(t, "1000")) || summary.AccountCount != 1 {
		t.Errorf("summary = %+v", summary)
	}

	// A second account does not show up until the cache is invalidated.
	if _, err := accounts.Create(ctx, session, core.Account{
		Name: "Savings", Type: core.Savings, Balance: dec(t, "500"),
	}); err != nil {
		t.Fatalf("create account: %v", err)
	}

	cached, err := dashboard.Summary(ctx, session)
	if err != nil {
		t.Fatalf("Summary cached: %v", err)
	}
	if cached.AccountCount != 1 {
		t.Errorf("cached account count = %d, want 1", cached.AccountCount)
	}

	dashboard.Invalidate(session)
	fresh, err := dashboard.Summary(ctx, session)
	if err != nil {
		t.Fatalf("Summary fresh: %v", err)
	}
	if fresh.AccountCount != 2 || !fresh.NetWorth.Equal(dec(t, "1500")) {
		t.Errorf("fresh summary = %+v", fresh)
	}
}

func TestInvestmentService_SummaryTotalsHoldings(t *testing.T) {
	repo := newTestStorage(t)
	investments := NewInvestmentService(repo)
	session := testSession()
	ctx := context.Background()

	mk := func(name, qty, buy, cur string) {
		t.Helper()
		_, err := investments.Create(ctx, session, core.Investment{
			Name:          name,
			Quantity:      dec(t, qty),
			PurchasePrice: dec(t, buy),
			CurrentPrice:  dec(t, cur),
			PurchaseDate:  core.NewDate(2025, 6, 1),
		})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	mk("winner", "10", "100", "120")
	mk("loser", "5", "40", "36")

	summary, err := investments.Summary(ctx, session)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Holdings != 2 {
		t.Errorf("holdings = %d, want 2", summary.Holdings)
	}
	if !summary.TotalValue.Equal(dec(t, "1380")) {
		t.Errorf("total value = %s, want 1380", summary.TotalValue)
	}
	if !summary.TotalROI.Equal(dec(t, "180")) {
		t.Errorf("total ROI = %s, want 180", summary.TotalROI)
	}
}
