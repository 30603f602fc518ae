package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	clock := services.SystemClock()
	budgets := services.NewBudgetService(repo, nil, clock)
	deps := Services{
		Accounts:    services.NewAccountService(repo),
		Transfers:   services.NewTransferService(repo),
		Bills:       services.NewBillService(repo, clock),
		Budgets:     budgets,
		Expenses:    services.NewExpenseService(repo),
		Categories:  services.NewCategoryService(repo),
		Investments: services.NewInvestmentService(repo),
		Dashboard:   services.NewDashboardService(repo, budgets, clock, time.Minute),
	}

	srv := NewServer(":0", deps, repo)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	if rec := doJSON(t, srv, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Errorf("healthz = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, srv, http.MethodGet, "/readyz", "", nil); rec.Code != http.StatusOK {
		t.Errorf("readyz = %d, want 200", rec.Code)
	}
}

func TestMissingUserHeader(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/accounts", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/accounts", "not-a-uuid", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status with bad header = %d, want 401", rec.Code)
	}
}

func TestAccountLifecycle(t *testing.T) {
	srv := newTestServer(t)
	user := uuid.NewString()

	rec := doJSON(t, srv, http.MethodPost, "/api/accounts", user, map[string]any{
		"name":    "Checking",
		"type":    "CHECKING",
		"balance": "500.00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[accountResponse](t, rec)
	if created.Balance != "500.00" || created.Currency != "EUR" {
		t.Errorf("created = %+v", created)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/accounts", user, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d", rec.Code)
	}
	if accounts := decodeBody[[]accountResponse](t, rec); len(accounts) != 1 {
		t.Errorf("listed %d accounts, want 1", len(accounts))
	}

	// Another user sees nothing.
	rec = doJSON(t, srv, http.MethodGet, "/api/accounts", uuid.NewString(), nil)
	if accounts := decodeBody[[]accountResponse](t, rec); len(accounts) != 0 {
		t.Errorf("other user sees %d accounts, want 0", len(accounts))
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/accounts/"+created.ID.String(), user, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete = %d, want 204", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/accounts/"+created.ID.String(), user, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", rec.Code)
	}
}

func TestTransferMovesBalances(t *testing.T) {
	srv := newTestServer(t)
	user := uuid.NewString()

	mkAccount := func(name, balance string) accountResponse {
		t.Helper()
		rec := doJSON(t, srv, http.MethodPost, "/api/accounts", user, map[string]any{
			"name": name, "type": "CHECKING", "balance": balance,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create account = %d: %s", rec.Code, rec.Body.String())
		}
		return decodeBody[accountResponse](t, rec)
	}
	from := mkAccount("Checking", "500.00")
	to := mkAccount("Savings", "200.00")

	rec := doJSON(t, srv, http.MethodPost, "/api/transfers", user, map[string]any{
		"from_account_id": from.ID,
		"to_account_id":   to.ID,
		"amount":          "150.00",
		"date":            "2026-03-10",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transfer = %d: %s", rec.Code, rec.Body.String())
	}

	balance := func(id uuid.UUID) string {
		t.Helper()
		rec := doJSON(t, srv, http.MethodGet, "/api/accounts/"+id.String(), user, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("get account = %d", rec.Code)
		}
		return decodeBody[accountResponse](t, rec).Balance
	}
	if got := balance(from.ID); got != "350.00" {
		t.Errorf("source balance = %s, want 350.00", got)
	}
	if got := balance(to.ID); got != "350.00" {
		t.Errorf("destination balance = %s, want 350.00", got)
	}
}

func TestTransferValidation(t *testing.T) {
	srv := newTestServer(t)
	user := uuid.NewString()
	id := uuid.New()

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			"same account",
			map[string]any{
				"from_account_id": id, "to_account_id": id,
				"amount": "10.00", "date": "2026-03-10",
			},
			http.StatusUnprocessableEntity,
		},
		{
			"negative amount",
			map[string]any{
				"from_account_id": uuid.New(), "to_account_id": uuid.New(),
				"amount": "-10.00", "date": "2026-03-10",
			},
			http.StatusUnprocessableEntity,
		},
		{
			"missing date",
			map[string]any{
				"from_account_id": uuid.New(), "to_account_id": uuid.New(),
				"amount": "10.00",
			},
			http.StatusUnprocessableEntity,
		},
		{
			"unknown accounts",
			map[string]any{
				"from_account_id": uuid.New(), "to_account_id": uuid.New(),
				"amount": "10.00", "date": "2026-03-10",
			},
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/transfers", user, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestBillEndpoints(t *testing.T) {
	srv := newTestServer(t)
	user := uuid.NewString()

	rec := doJSON(t, srv, http.MethodPost, "/api/bills", user, map[string]any{
		"name":       "Rent",
		"amount":     "900.00",
		"cycle":      "MONTHLY",
		"due_day":    15,
		"start_date": "2026-01-15",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create bill = %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[billResponse](t, rec)
	if created.NextPaymentDate == nil {
		t.Error("next payment date not derived")
	}
	if created.ReminderDays != 3 {
		t.Errorf("reminder days = %d, want default 3", created.ReminderDays)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/bills", user, map[string]any{
		"name":       "Rent",
		"amount":     "900.00",
		"cycle":      "MONTHLY",
		"due_day":    31,
		"start_date": "2026-01-31",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("due_day 31 = %d, want 422", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/bills/upcoming?days=400", user, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("days=400 = %d, want 400", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/bills/"+created.ID.String()+"/deactivate", user, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody[billResponse](t, rec); got.Active {
		t.Error("bill still active after deactivate")
	}
}

func TestBudgetEvaluation(t *testing.T) {
	srv := newTestServer(t)
	user := uuid.NewString()

	rec := doJSON(t, srv, http.MethodPost, "/api/categories", user, map[string]any{"name": "Groceries"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category = %d: %s", rec.Code, rec.Body.String())
	}
	cat := decodeBody[categoryResponse](t, rec)

	rec = doJSON(t, srv, http.MethodPost, "/api/budgets", user, map[string]any{
		"category_id":  cat.ID,
		"name":         "Groceries March",
		"amount_limit": "400.00",
		"period":       "MONTHLY",
		"start_date":   "2026-03-01",
		"end_date":     "2026-03-31",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget = %d: %s", rec.Code, rec.Body.String())
	}
	budget := decodeBody[budgetResponse](t, rec)

	rec = doJSON(t, srv, http.MethodPost, "/api/expenses", user, map[string]any{
		"category_id": cat.ID,
		"amount":      "380.00",
		"date":        "2026-03-12",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/budgets/"+budget.ID.String(), user, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("evaluate = %d: %s", rec.Code, rec.Body.String())
	}
	overview := decodeBody[budgetOverviewResponse](t, rec)
	if overview.Report.Spent != "380.00" {
		t.Errorf("spent = %s, want 380.00", overview.Report.Spent)
	}
	if overview.Report.Status != "DANGER" {
		t.Errorf("status = %s, want DANGER", overview.Report.Status)
	}
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)
	user := uuid.NewString()

	rec := doJSON(t, srv, http.MethodPost, "/api/accounts", user, map[string]any{
		"name": "Checking", "type": "CHECKING", "balance": "1000.00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard", user, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard = %d: %s", rec.Code, rec.Body.String())
	}
	dash := decodeBody[dashboardResponse](t, rec)
	if dash.NetWorth != "1000.00" || dash.AccountCount != 1 {
		t.Errorf("dashboard = %+v", dash)
	}
}

func TestInvestmentSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t)
	user := uuid.NewString()

	rec := doJSON(t, srv, http.MethodPost, "/api/investments", user, map[string]any{
		"name":           "Index fund",
		"quantity":       "10",
		"purchase_price": "100",
		"current_price":  "120",
		"purchase_date":  "2025-06-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create investment = %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[holdingResponse](t, rec)
	if created.Metrics.ROIPercentage != "20.00" {
		t.Errorf("roi percentage = %s, want 20.00", created.Metrics.ROIPercentage)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/investments/summary", user, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary = %d", rec.Code)
	}
	summary := decodeBody[portfolioResponse](t, rec)
	if summary.TotalValue != "1200.00" || summary.Holdings != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	srv := newTestServer(t)
	user := uuid.NewString()

	rec := doJSON(t, srv, http.MethodPost, "/api/accounts", user, map[string]any{
		"name": "Checking", "type": "CHECKING", "balance": "0", "bogus": true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown field", rec.Code)
	}
}
