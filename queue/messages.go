package queue

import (
	"encoding/json"
	"time"
)

// ContactCreatedMessage announces a newly created contact message.
// It carries only the row id; the notifier fetches the full record from
// the database before sending.
type ContactCreatedMessage struct {
	ID        uint      `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewContactCreatedMessage builds a message for the given row id.
func NewContactCreatedMessage(id uint) *ContactCreatedMessage {
	return &ContactCreatedMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ContactCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ContactCreatedMessageFromJSON parses a message from JSON bytes.
func ContactCreatedMessageFromJSON(data []byte) (*ContactCreatedMessage, error) {
	var msg ContactCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
