package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"forum/internal/models"
)

// Activity event types.
const (
	EventUserRegistered  = "user.registered"
	EventUserLogin       = "user.login"
	EventQuestionCreated = "question.created"
	EventQuestionDeleted = "question.deleted"
	EventReplyCreated    = "reply.created"
	EventReplyDeleted    = "reply.deleted"
)

// EventServiceProvider defines the interface for the activity log.
type EventServiceProvider interface {
	Record(eventType, actor string, subjectID *string) error
	Recent(limit int) ([]models.Event, error)
	PruneOlderThan(cutoff time.Time) (int64, error)
}

// EventService keeps an append-only activity log of forum actions.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// Record logs a new activity event.
func (s *EventService) Record(eventType, actor string, subjectID *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Actor:     actor,
		SubjectID: subjectID,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, actor, subject_id, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Actor, event.SubjectID, event.CreatedAt)
	return err
}

// Recent retrieves the most recent activity events.
func (s *EventService) Recent(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, actor, subject_id, created_at FROM events ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Actor, &event.SubjectID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// PruneOlderThan deletes events created before the cutoff and reports
// how many were removed.
func (s *EventService) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
