package model

import (
	"encoding/json"
	"time"
)

// Event is an audit-trail row recorded for every mutation.
type Event struct {
	ID        int64           `json:"id"`
	Topic     string          `json:"topic"`
	SubtaskID string          `json:"subtask_id,omitempty"`
	Actor     string          `json:"actor,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
