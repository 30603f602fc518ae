package http

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

// Wire types. Monetary amounts travel as decimal strings and dates as
// YYYY-MM-DD; both are parsed strictly on the way in.

type accountRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Balance     string `json:"balance"`
	Currency    string `json:"currency"`
	Institution string `json:"institution"`
	Active      *bool  `json:"active"`
}

func (req accountRequest) toDomain() (core.Account, error) {
	balance, err := core.ParseSignedAmount(req.Balance)
	if err != nil {
		return core.Account{}, fmt.Errorf("balance: %w", err)
	}
	a := core.Account{
		Name:        sanitizeInput(req.Name),
		Type:        core.AccountType(req.Type),
		Balance:     balance,
		Currency:    req.Currency,
		Institution: sanitizeInput(req.Institution),
		Active:      true,
	}
	if req.Active != nil {
		a.Active = *req.Active
	}
	return a, nil
}

type accountResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Balance     string    `json:"balance"`
	Currency    string    `json:"currency"`
	Institution string    `json:"institution"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toAccountResponse(a core.Account) accountResponse {
	return accountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Type:        string(a.Type),
		Balance:     core.FormatAmount(a.Balance),
		Currency:    a.Currency,
		Institution: a.Institution,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type transferRequest struct {
	FromAccountID uuid.UUID `json:"from_account_id"`
	ToAccountID   uuid.UUID `json:"to_account_id"`
	Amount        string    `json:"amount"`
	Date          string    `json:"date"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
}

func (req transferRequest) toDomain() (core.Transfer, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return core.Transfer{}, fmt.Errorf("amount: %w", err)
	}
	date, err := parseRequiredDate(req.Date)
	if err != nil {
		return core.Transfer{}, fmt.Errorf("date: %w", err)
	}
	return core.Transfer{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount,
		Date:          date,
		Description:   sanitizeInput(req.Description),
		Type:          core.TransferType(req.Type),
	}, nil
}

type transferResponse struct {
	ID            uuid.UUID `json:"id"`
	FromAccountID uuid.UUID `json:"from_account_id"`
	ToAccountID   uuid.UUID `json:"to_account_id"`
	Amount        string    `json:"amount"`
	Date          string    `json:"date"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"created_at"`
}

func toTransferResponse(t core.Transfer) transferResponse {
	return transferResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        core.FormatAmount(t.Amount),
		Date:          t.Date.String(),
		Description:   t.Description,
		Type:          string(t.Type),
		CreatedAt:     t.CreatedAt,
	}
}

type billRequest struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	Name         string     `json:"name"`
	Amount       string     `json:"amount"`
	Cycle        string     `json:"cycle"`
	DueDay       int        `json:"due_day"`
	StartDate    string     `json:"start_date"`
	EndDate      *string    `json:"end_date"`
	ReminderDays int        `json:"reminder_days"`
	Description  string     `json:"description"`
	Vendor       string     `json:"vendor"`
}

func (req billRequest) toDomain() (core.Bill, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return core.Bill{}, fmt.Errorf("amount: %w", err)
	}
	start, err := parseRequiredDate(req.StartDate)
	if err != nil {
		return core.Bill{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return core.Bill{}, fmt.Errorf("end_date: %w", err)
	}
	return core.Bill{
		CategoryID:   req.CategoryID,
		Name:         sanitizeInput(req.Name),
		Amount:       amount,
		Cycle:        core.BillingCycle(req.Cycle),
		DueDay:       req.DueDay,
		StartDate:    start,
		EndDate:      end,
		ReminderDays: req.ReminderDays,
		Description:  sanitizeInput(req.Description),
		Vendor:       sanitizeInput(req.Vendor),
	}, nil
}

type billResponse struct {
	ID              uuid.UUID  `json:"id"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	Name            string     `json:"name"`
	Amount          string     `json:"amount"`
	Cycle           string     `json:"cycle"`
	DueDay          int        `json:"due_day"`
	StartDate       string     `json:"start_date"`
	EndDate         *string    `json:"end_date,omitempty"`
	Active          bool       `json:"active"`
	ReminderDays    int        `json:"reminder_days"`
	LastPaymentDate *string    `json:"last_payment_date,omitempty"`
	NextPaymentDate *string    `json:"next_payment_date,omitempty"`
	Description     string     `json:"description"`
	Vendor          string     `json:"vendor"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toBillResponse(b core.Bill) billResponse {
	return billResponse{
		ID:              b.ID,
		CategoryID:      b.CategoryID,
		Name:            b.Name,
		Amount:          core.FormatAmount(b.Amount),
		Cycle:           string(b.Cycle),
		DueDay:          b.DueDay,
		StartDate:       b.StartDate.String(),
		EndDate:         dateString(b.EndDate),
		Active:          b.Active,
		ReminderDays:    b.ReminderDays,
		LastPaymentDate: dateString(b.LastPaymentDate),
		NextPaymentDate: dateString(b.NextPaymentDate),
		Description:     b.Description,
		Vendor:          b.Vendor,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

type budgetRequest struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	Name           string     `json:"name"`
	AmountLimit    string     `json:"amount_limit"`
	Period         string     `json:"period"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	AlertThreshold int        `json:"alert_threshold"`
	Active         *bool      `json:"active"`
}

func (req budgetRequest) toDomain() (core.Budget, error) {
	limit, err := core.ParseAmount(req.AmountLimit)
	if err != nil {
		return core.Budget{}, fmt.Errorf("amount_limit: %w", err)
	}
	start, err := parseRequiredDate(req.StartDate)
	if err != nil {
		return core.Budget{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := parseRequiredDate(req.EndDate)
	if err != nil {
		return core.Budget{}, fmt.Errorf("end_date: %w", err)
	}
	b := core.Budget{
		CategoryID:     req.CategoryID,
		Name:           sanitizeInput(req.Name),
		AmountLimit:    limit,
		Period:         core.BudgetPeriod(req.Period),
		StartDate:      start,
		EndDate:        end,
		AlertThreshold: req.AlertThreshold,
		Active:         true,
	}
	if req.Active != nil {
		b.Active = *req.Active
	}
	return b, nil
}

type budgetResponse struct {
	ID             uuid.UUID  `json:"id"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	Name           string     `json:"name"`
	AmountLimit    string     `json:"amount_limit"`
	Period         string     `json:"period"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	AlertThreshold int        `json:"alert_threshold"`
	Active         bool       `json:"active"`
}

func toBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		ID:             b.ID,
		CategoryID:     b.CategoryID,
		Name:           b.Name,
		AmountLimit:    core.FormatAmount(b.AmountLimit),
		Period:         string(b.Period),
		StartDate:      b.StartDate.String(),
		EndDate:        b.EndDate.String(),
		AlertThreshold: b.AlertThreshold,
		Active:         b.Active,
	}
}

type budgetReportResponse struct {
	Spent          string `json:"spent"`
	Remaining      string `json:"remaining"`
	PercentageUsed string `json:"percentage_used"`
	Status         string `json:"status"`
}

type budgetOverviewResponse struct {
	Budget budgetResponse       `json:"budget"`
	Report budgetReportResponse `json:"report"`
}

func toBudgetOverviewResponse(o core.BudgetOverview) budgetOverviewResponse {
	return budgetOverviewResponse{
		Budget: toBudgetResponse(o.Budget),
		Report: budgetReportResponse{
			Spent:          core.FormatAmount(o.Report.Spent),
			Remaining:      core.FormatAmount(o.Report.Remaining),
			PercentageUsed: o.Report.PercentageUsed.StringFixed(2),
			Status:         string(o.Report.Status),
		},
	}
}

type expenseRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Amount      string     `json:"amount"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
}

func (req expenseRequest) toDomain() (core.Expense, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount: %w", err)
	}
	date, err := parseRequiredDate(req.Date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("date: %w", err)
	}
	return core.Expense{
		CategoryID:  req.CategoryID,
		Amount:      amount,
		Date:        date,
		Description: sanitizeInput(req.Description),
	}, nil
}

type expenseResponse struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Amount      string     `json:"amount"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Amount:      core.FormatAmount(e.Amount),
		Date:        e.Date.String(),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type investmentRequest struct {
	AccountID     *uuid.UUID `json:"account_id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Symbol        string     `json:"symbol"`
	Quantity      string     `json:"quantity"`
	PurchasePrice string     `json:"purchase_price"`
	CurrentPrice  string     `json:"current_price"`
	PurchaseDate  string     `json:"purchase_date"`
	Description   string     `json:"description"`
}

func (req investmentRequest) toDomain() (core.Investment, error) {
	quantity, err := core.ParseSignedAmount(req.Quantity)
	if err != nil {
		return core.Investment{}, fmt.Errorf("quantity: %w", err)
	}
	purchase, err := core.ParseSignedAmount(req.PurchasePrice)
	if err != nil {
		return core.Investment{}, fmt.Errorf("purchase_price: %w", err)
	}
	current, err := core.ParseSignedAmount(req.CurrentPrice)
	if err != nil {
		return core.Investment{}, fmt.Errorf("current_price: %w", err)
	}
	date, err := parseRequiredDate(req.PurchaseDate)
	if err != nil {
		return core.Investment{}, fmt.Errorf("purchase_date: %w", err)
	}
	return core.Investment{
		AccountID:     req.AccountID,
		Name:          sanitizeInput(req.Name),
		Type:          req.Type,
		Symbol:        req.Symbol,
		Quantity:      quantity,
		PurchasePrice: purchase,
		CurrentPrice:  current,
		PurchaseDate:  date,
		Description:   sanitizeInput(req.Description),
	}, nil
}

type metricsResponse struct {
	TotalValue    string `json:"total_value"`
	ROI           string `json:"roi"`
	ROIPercentage string `json:"roi_percentage"`
}

type holdingResponse struct {
	ID            uuid.UUID       `json:"id"`
	AccountID     *uuid.UUID      `json:"account_id,omitempty"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Symbol        string          `json:"symbol"`
	Quantity      string          `json:"quantity"`
	PurchasePrice string          `json:"purchase_price"`
	CurrentPrice  string          `json:"current_price"`
	PurchaseDate  string          `json:"purchase_date"`
	Description   string          `json:"description"`
	Metrics       metricsResponse `json:"metrics"`
}

func holdingOf(inv core.Investment) services.Holding {
	return services.Holding{Investment: inv, Metrics: inv.Metrics()}
}

func toHoldingResponse(h services.Holding) holdingResponse {
	return holdingResponse{
		ID:            h.Investment.ID,
		AccountID:     h.Investment.AccountID,
		Name:          h.Investment.Name,
		Type:          h.Investment.Type,
		Symbol:        h.Investment.Symbol,
		Quantity:      h.Investment.Quantity.String(),
		PurchasePrice: core.FormatAmount(h.Investment.PurchasePrice),
		CurrentPrice:  core.FormatAmount(h.Investment.CurrentPrice),
		PurchaseDate:  h.Investment.PurchaseDate.String(),
		Description:   h.Investment.Description,
		Metrics: metricsResponse{
			TotalValue:    core.FormatAmount(h.Metrics.TotalValue),
			ROI:           core.FormatAmount(h.Metrics.ROI),
			ROIPercentage: h.Metrics.ROIPercentage.StringFixed(2),
		},
	}
}

type portfolioResponse struct {
	TotalValue string `json:"total_value"`
	TotalROI   string `json:"total_roi"`
	Holdings   int    `json:"holdings"`
}

func toPortfolioResponse(p core.PortfolioSummary) portfolioResponse {
	return portfolioResponse{
		TotalValue: core.FormatAmount(p.TotalValue),
		TotalROI:   core.FormatAmount(p.TotalROI),
		Holdings:   p.Holdings,
	}
}

type dashboardResponse struct {
	NetWorth      string                   `json:"net_worth"`
	AccountCount  int                      `json:"account_count"`
	UpcomingBills []billResponse           `json:"upcoming_bills"`
	Budgets       []budgetOverviewResponse `json:"budgets"`
	Portfolio     portfolioResponse        `json:"portfolio"`
}

func toDashboardResponse(s core.DashboardSummary) dashboardResponse {
	resp := dashboardResponse{
		NetWorth:      core.FormatAmount(s.NetWorth),
		AccountCount:  s.AccountCount,
		UpcomingBills: make([]billResponse, 0, len(s.UpcomingBills)),
		Budgets:       make([]budgetOverviewResponse, 0, len(s.Budgets)),
		Portfolio:     toPortfolioResponse(s.Portfolio),
	}
	for _, b := range s.UpcomingBills {
		resp.UpcomingBills = append(resp.UpcomingBills, toBillResponse(b))
	}
	for _, o := range s.Budgets {
		resp.Budgets = append(resp.Budgets, toBudgetOverviewResponse(o))
	}
	return resp
}

func parseRequiredDate(s string) (core.Date, error) {
	if s == "" {
		return core.Date{}, core.ErrMissingDate
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: %v", core.ErrMissingDate, err)
	}
	return d, nil
}

func parseOptionalDate(s *string) (*core.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := core.ParseDate(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMissingDate, err)
	}
	return &d, nil
}

func dateString(d *core.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
