package amqp

import (
	"encoding/json"
	"time"

	"spendlog/internal/core"
)

// RecordChangeMessage carries one repository mutation. The full record is
// embedded so consumers (the sheets mirror) need no access to the store.
type RecordChangeMessage struct {
	Op        string      `json:"op"` // add | update | remove
	Record    core.Record `json:"record"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewRecordChangeMessage creates a change message for the given operation.
func NewRecordChangeMessage(op string, rec core.Record) *RecordChangeMessage {
	return &RecordChangeMessage{
		Op:        op,
		Record:    rec,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangeMessageFromJSON creates a message from JSON bytes
func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
