package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Daily     BillingCycle = "DAILY"
	Weekly    BillingCycle = "WEEKLY"
	Monthly   BillingCycle = "MONTHLY"
	Quarterly BillingCycle = "QUARTERLY"
	Yearly    BillingCycle = "YEARLY"
)

const (
	PeriodWeekly    BudgetPeriod = "WEEKLY"
	PeriodMonthly   BudgetPeriod = "MONTHLY"
	PeriodQuarterly BudgetPeriod = "QUARTERLY"
	PeriodYearly    BudgetPeriod = "YEARLY"
)

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	CreditCard AccountType = "CREDIT_CARD"
	Cash       AccountType = "CASH"
	Brokerage  AccountType = "INVESTMENT"
	OtherAcct  AccountType = "OTHER"
)

const (
	Internal TransferType = "INTERNAL"
	External TransferType = "EXTERNAL"
)

// DefaultReminderDays is applied when a bill is created without a reminder window.
const DefaultReminderDays = 3

// DefaultAlertThreshold is the WARNING floor applied to budgets that do not set one.
const DefaultAlertThreshold = 80

type (
	BillingCycle string
	BudgetPeriod string
	AccountType  string
	TransferType string

	// Session identifies the user a service call acts on behalf of.
	// It is passed explicitly into every service method instead of living
	// in ambient global state.
	Session struct {
		UserID uuid.UUID
	}

	Account struct {
		ID          uuid.UUID
		UserID      uuid.UUID
		Name        string
		Type        AccountType
		Balance     decimal.Decimal
		Currency    string
		Institution string
		Active      bool
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	Transfer struct {
		ID            uuid.UUID
		UserID        uuid.UUID
		FromAccountID uuid.UUID
		ToAccountID   uuid.UUID
		Amount        decimal.Decimal
		Date          Date
		Description   string
		Type          TransferType
		CreatedAt     time.Time
	}

	Bill struct {
		ID              uuid.UUID
		UserID          uuid.UUID
		CategoryID      *uuid.UUID
		Name            string
		Amount          decimal.Decimal
		Cycle           BillingCycle
		DueDay          int
		StartDate       Date
		EndDate         *Date
		Active          bool
		ReminderDays    int
		LastPaymentDate *Date
		// NextPaymentDate is derived from the schedule, never user-set.
		// Nil means the schedule has lapsed.
		NextPaymentDate *Date
		Description     string
		Vendor          string
		CreatedAt       time.Time
		UpdatedAt       time.Time
	}

	Budget struct {
		ID             uuid.UUID
		UserID         uuid.UUID
		CategoryID     *uuid.UUID
		Name           string
		AmountLimit    decimal.Decimal
		Period         BudgetPeriod
		StartDate      Date
		EndDate        Date
		AlertThreshold int
		Active         bool
		CreatedAt      time.Time
		UpdatedAt      time.Time
	}

	Expense struct {
		ID          uuid.UUID
		UserID      uuid.UUID
		CategoryID  *uuid.UUID
		Amount      decimal.Decimal
		Date        Date
		Description string
		CreatedAt   time.Time
	}

	Category struct {
		ID     uuid.UUID
		UserID uuid.UUID
		Name   string
	}

	Investment struct {
		ID            uuid.UUID
		UserID        uuid.UUID
		AccountID     *uuid.UUID
		Name          string
		Type          string
		Symbol        string
		Quantity      decimal.Decimal
		PurchasePrice decimal.Decimal
		CurrentPrice  decimal.Decimal
		PurchaseDate  Date
		Description   string
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}

	NotificationKind string

	Notification struct {
		ID        uuid.UUID
		UserID    uuid.UUID
		Kind      NotificationKind
		Message   string
		CreatedAt time.Time
	}
)

const (
	KindBillReminder NotificationKind = "BILL_REMINDER"
	KindBudgetAlert  NotificationKind = "BUDGET_ALERT"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDueDay    = errors.New("due day must be between 1 and 28")
	ErrMissingDate      = errors.New("missing required date")
	ErrEndBeforeStart   = errors.New("end date before start date")
	ErrSameAccount      = errors.New("source and destination accounts must differ")
	ErrInvalidThreshold = errors.New("alert threshold must be between 0 and 100")
	ErrInvalidCycle     = errors.New("invalid billing cycle")
	ErrInvalidPeriod    = errors.New("invalid budget period")
	ErrEmptyName        = errors.New("empty name")
	ErrNegativeReminder = errors.New("reminder days cannot be negative")
)

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	switch a.Type {
	case Checking, Savings, CreditCard, Cash, Brokerage, OtherAcct:
	default:
		return errors.New("invalid account type")
	}
	return nil
}

func (t Transfer) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	switch t.Type {
	case Internal, External:
	default:
		return errors.New("invalid transfer type")
	}
	return nil
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if !b.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	switch b.Cycle {
	case Daily, Weekly, Monthly, Quarterly, Yearly:
	default:
		return ErrInvalidCycle
	}
	// Due days above 28 would need 29/30/31 handling inside the schedule
	// calculator, so they are rejected here instead.
	if b.DueDay < 1 || b.DueDay > 28 {
		return ErrInvalidDueDay
	}
	if b.StartDate.IsZero() {
		return ErrMissingDate
	}
	if b.EndDate != nil && b.EndDate.Before(b.StartDate.Time) {
		return ErrEndBeforeStart
	}
	if b.ReminderDays < 0 {
		return ErrNegativeReminder
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if !b.AmountLimit.IsPositive() {
		return ErrInvalidAmount
	}
	switch b.Period {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
	default:
		return ErrInvalidPeriod
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return ErrMissingDate
	}
	if b.EndDate.Before(b.StartDate.Time) {
		return ErrEndBeforeStart
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 100 {
		return ErrInvalidThreshold
	}
	return nil
}

func (e Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (i Investment) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Quantity.IsNegative() {
		return ErrInvalidAmount
	}
	if i.PurchasePrice.IsNegative() || i.CurrentPrice.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
