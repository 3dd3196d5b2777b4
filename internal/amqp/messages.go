package amqp

import (
	"encoding/json"
	"time"

	"wydatki/internal/core"
)

// ExpenseRecordedMessage announces a record that was appended to the
// primary store. It carries the full record so consumers need no access
// to that store.
type ExpenseRecordedMessage struct {
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseRecordedMessage creates a message for the given record.
func NewExpenseRecordedMessage(r core.Record) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		Date:        r.Date,
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		Timestamp:   time.Now(),
	}
}

// Record returns the record carried by the message.
func (m *ExpenseRecordedMessage) Record() core.Record {
	return core.Record{
		Date:        m.Date,
		Category:    m.Category,
		Description: m.Description,
		Amount:      m.Amount,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON creates a message from JSON bytes
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
