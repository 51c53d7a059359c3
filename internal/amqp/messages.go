package amqp

import (
	"encoding/json"
	"time"
)

// ExpenseEvent represents a lightweight change notification for an expense.
// Contains only the operation and ID, the worker will fetch the full
// collection from the persistence gateway.
type ExpenseEvent struct {
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEvent creates a change event for the given operation and expense ID.
func NewExpenseEvent(op, id string) *ExpenseEvent {
	return &ExpenseEvent{
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventFromJSON creates an event from JSON bytes
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var msg ExpenseEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
