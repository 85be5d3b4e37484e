package models

import "time"

// Event is one row of the activity log: who did what, and to which
// resource if any.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Actor     string    `json:"actor"`
	SubjectID *string   `json:"subjectId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
