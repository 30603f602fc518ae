package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BillReminderMessage announces a bill whose next payment falls inside its
// reminder window. It carries display fields so the consumer does not need
// a database round trip to build the notification text.
type BillReminderMessage struct {
	BillID    uuid.UUID `json:"bill_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Amount    string    `json:"amount"`
	DueDate   string    `json:"due_date"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBillReminderMessage(billID, userID uuid.UUID, name, amount, dueDate string) *BillReminderMessage {
	return &BillReminderMessage{
		BillID:    billID,
		UserID:    userID,
		Name:      name,
		Amount:    amount,
		DueDate:   dueDate,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BillReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BillReminderMessageFromJSON creates a message from JSON bytes
func BillReminderMessageFromJSON(data []byte) (*BillReminderMessage, error) {
	var msg BillReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// BudgetAlertMessage announces a budget that crossed its warning threshold.
type BudgetAlertMessage struct {
	BudgetID       uuid.UUID `json:"budget_id"`
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	PercentageUsed string    `json:"percentage_used"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewBudgetAlertMessage(budgetID, userID uuid.UUID, name, status, percentageUsed string) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		BudgetID:       budgetID,
		UserID:         userID,
		Name:           name,
		Status:         status,
		PercentageUsed: percentageUsed,
		Timestamp:      time.Now(),
	}
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
