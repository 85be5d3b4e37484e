package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"forum/internal/models"
)

const (
	// DefaultCategory is assigned when a question is created without one.
	DefaultCategory = "General"
	// AllCategories is the reserved filter value meaning "no filter".
	AllCategories = "All"
)

// QuestionServiceProvider defines the interface for question services.
type QuestionServiceProvider interface {
	List(category string) ([]models.Question, error)
	Create(author, text, category string) (models.Question, error)
	AddReply(questionID, author, text string) (models.Question, error)
	DeleteQuestion(questionID, requester string) error
	DeleteReply(questionID, replyID, requester string) error
}

// QuestionService provides business logic for questions and their
// replies. A question exclusively owns its replies; deleting the
// question removes them with it.
type QuestionService struct {
	db *sql.DB
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(db *sql.DB) *QuestionService {
	return &QuestionService{db: db}
}

// List retrieves questions newest first. An empty or "All" category
// returns everything; anything else is an exact, case-sensitive match.
func (s *QuestionService) List(category string) ([]models.Question, error) {
	query := "SELECT id, author, text, category, created_at FROM questions ORDER BY created_at DESC, id DESC"
	args := []interface{}{}
	if category != "" && category != AllCategories {
		query = "SELECT id, author, text, category, created_at FROM questions WHERE category = ? ORDER BY created_at DESC, id DESC"
		args = append(args, category)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Author, &q.Text, &q.Category, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		replies, err := s.loadReplies(questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Replies = replies
	}
	return questions, nil
}

// Create stores a new question with zero replies. Whitespace-only text
// fails with ErrInvalidInput; a missing category defaults.
func (s *QuestionService) Create(author, text, category string) (models.Question, error) {
	if strings.TrimSpace(text) == "" {
		return models.Question{}, fmt.Errorf("question text: %w", ErrInvalidInput)
	}
	if category == "" {
		category = DefaultCategory
	}

	q := models.Question{
		ID:        uuid.New().String(),
		Author:    author,
		Text:      text,
		Category:  category,
		Replies:   []models.Reply{},
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO questions(id, author, text, category, created_at) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.Question{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(q.ID, q.Author, q.Text, q.Category, q.CreatedAt); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// AddReply appends a reply to the end of a question's reply list and
// returns the updated question. The append is a single insert, so
// concurrent replies to the same question cannot overwrite each other.
func (s *QuestionService) AddReply(questionID, author, text string) (models.Question, error) {
	if _, err := s.getQuestion(questionID); err != nil {
		return models.Question{}, err
	}
	if strings.TrimSpace(text) == "" {
		return models.Question{}, fmt.Errorf("reply text: %w", ErrInvalidInput)
	}

	reply := models.Reply{
		ID:        uuid.New().String(),
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO replies(id, question_id, author, text, created_at) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.Question{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(reply.ID, questionID, reply.Author, reply.Text, reply.CreatedAt); err != nil {
		return models.Question{}, err
	}

	q, err := s.getQuestion(questionID)
	if err != nil {
		return models.Question{}, err
	}
	q.Replies, err = s.loadReplies(questionID)
	if err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// DeleteQuestion removes a question and all its replies. Only the
// question's author may delete it.
func (s *QuestionService) DeleteQuestion(questionID, requester string) error {
	q, err := s.getQuestion(questionID)
	if err != nil {
		return err
	}
	if q.Author != requester {
		return fmt.Errorf("question %s belongs to %s: %w", questionID, q.Author, ErrForbidden)
	}

	// Replies go with the question via the cascade.
	_, err = s.db.Exec("DELETE FROM questions WHERE id = ?", questionID)
	return err
}

// DeleteReply removes exactly one reply, preserving the order of the
// rest. Only the reply's author may delete it.
func (s *QuestionService) DeleteReply(questionID, replyID, requester string) error {
	var author string
	row := s.db.QueryRow("SELECT author FROM replies WHERE id = ? AND question_id = ?", replyID, questionID)
	if err := row.Scan(&author); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("reply %s on question %s: %w", replyID, questionID, ErrNotFound)
		}
		return err
	}
	if author != requester {
		return fmt.Errorf("reply %s belongs to %s: %w", replyID, author, ErrForbidden)
	}

	_, err := s.db.Exec("DELETE FROM replies WHERE id = ?", replyID)
	return err
}

func (s *QuestionService) getQuestion(id string) (models.Question, error) {
	var q models.Question
	row := s.db.QueryRow("SELECT id, author, text, category, created_at FROM questions WHERE id = ?", id)
	err := row.Scan(&q.ID, &q.Author, &q.Text, &q.Category, &q.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Question{}, fmt.Errorf("question %s: %w", id, ErrNotFound)
		}
		return models.Question{}, err
	}
	return q, nil
}

// loadReplies returns a question's replies in insertion order, never
// nil so an empty list serializes as [].
func (s *QuestionService) loadReplies(questionID string) ([]models.Reply, error) {
	rows, err := s.db.Query("SELECT id, author, text, created_at FROM replies WHERE question_id = ? ORDER BY created_at, id", questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := []models.Reply{}
	for rows.Next() {
		var r models.Reply
		if err := rows.Scan(&r.ID, &r.Author, &r.Text, &r.CreatedAt); err != nil {
			return nil, err
		}
		replies = append(replies, r)
	}
	return replies, rows.Err()
}
