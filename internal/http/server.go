// Package http serves the JSON API. Every /api route runs behind the
// security middleware and resolves the acting user from the X-User-ID
// header.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/services"
	"fintrack/internal/storage"
)

type Server struct {
	http.Server

	accounts    *services.AccountService
	transfers   *services.TransferService
	bills       *services.BillService
	budgets     *services.BudgetService
	expenses    *services.ExpenseService
	categories  *services.CategoryService
	investments *services.InvestmentService
	dashboard   *services.DashboardService
	repo        *storage.SQLiteRepository

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// Services bundles the dependencies the server routes to.
type Services struct {
	Accounts    *services.AccountService
	Transfers   *services.TransferService
	Bills       *services.BillService
	Budgets     *services.BudgetService
	Expenses    *services.ExpenseService
	Categories  *services.CategoryService
	Investments *services.InvestmentService
	Dashboard   *services.DashboardService
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Services, repo *storage.SQLiteRepository) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		accounts:    deps.Accounts,
		transfers:   deps.Transfers,
		bills:       deps.Bills,
		budgets:     deps.Budgets,
		expenses:    deps.Expenses,
		categories:  deps.Categories,
		investments: deps.Investments,
		dashboard:   deps.Dashboard,
		repo:        repo,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, s.withSecurityHeaders(h))
	}

	route("GET /api/accounts", s.handleListAccounts)
	route("POST /api/accounts", s.handleCreateAccount)
	route("GET /api/accounts/{id}", s.handleGetAccount)
	route("PUT /api/accounts/{id}", s.handleUpdateAccount)
	route("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	route("GET /api/transfers", s.handleListTransfers)
	route("POST /api/transfers", s.handleCreateTransfer)
	route("GET /api/transfers/{id}", s.handleGetTransfer)
	route("PUT /api/transfers/{id}", s.handleUpdateTransfer)
	route("DELETE /api/transfers/{id}", s.handleDeleteTransfer)

	route("GET /api/bills", s.handleListBills)
	route("POST /api/bills", s.handleCreateBill)
	route("GET /api/bills/upcoming", s.handleUpcomingBills)
	route("GET /api/bills/{id}", s.handleGetBill)
	route("PUT /api/bills/{id}", s.handleUpdateBill)
	route("DELETE /api/bills/{id}", s.handleDeleteBill)
	route("POST /api/bills/{id}/pay", s.handlePayBill)
	route("POST /api/bills/{id}/deactivate", s.handleDeactivateBill)

	route("GET /api/budgets", s.handleListBudgets)
	route("POST /api/budgets", s.handleCreateBudget)
	route("GET /api/budgets/{id}", s.handleEvaluateBudget)
	route("PUT /api/budgets/{id}", s.handleUpdateBudget)
	route("DELETE /api/budgets/{id}", s.handleDeleteBudget)

	route("GET /api/expenses", s.handleListExpenses)
	route("POST /api/expenses", s.handleCreateExpense)
	route("GET /api/expenses/{id}", s.handleGetExpense)
	route("PUT /api/expenses/{id}", s.handleUpdateExpense)
	route("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	route("GET /api/categories", s.handleListCategories)
	route("POST /api/categories", s.handleCreateCategory)
	route("DELETE /api/categories/{id}", s.handleDeleteCategory)

	route("GET /api/investments", s.handleListInvestments)
	route("POST /api/investments", s.handleCreateInvestment)
	route("GET /api/investments/summary", s.handleInvestmentSummary)
	route("GET /api/investments/{id}", s.handleGetInvestment)
	route("PUT /api/investments/{id}", s.handleUpdateInvestment)
	route("DELETE /api/investments/{id}", s.handleDeleteInvestment)

	route("GET /api/notifications", s.handleListNotifications)

	route("GET /api/dashboard", s.handleDashboard)

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate limit writes only
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.repo != nil {
		if err := s.repo.Ping(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
