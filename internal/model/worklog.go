package model

import "time"

// WorkLog is a single append-only effort entry attributed to a subtask.
type WorkLog struct {
	ID         string    `json:"id"`
	SubtaskID  string    `json:"subtask_id"`
	HoursSpent float64   `json:"hours_spent"`
	Note       string    `json:"note,omitempty"`
	LoggedBy   string    `json:"logged_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SumHours adds up the hours of the given work logs.
func SumHours(logs []*WorkLog) float64 {
	var total float64
	for _, wl := range logs {
		total += wl.HoursSpent
	}
	return total
}
