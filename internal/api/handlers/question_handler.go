package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"forum/internal/auth"
	"forum/internal/services"
)

// QuestionHandler handles question and reply requests.
type QuestionHandler struct {
	service  services.QuestionServiceProvider
	eventSvc services.EventServiceProvider
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(service services.QuestionServiceProvider, eventSvc services.EventServiceProvider) *QuestionHandler {
	return &QuestionHandler{service: service, eventSvc: eventSvc}
}

// QuestionPayload defines the structure for question creation requests.
type QuestionPayload struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ReplyPayload defines the structure for reply requests.
type ReplyPayload struct {
	Text string `json:"text"`
}

// List handles the request to get questions, newest first, optionally
// filtered by the category query parameter.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	questions, err := h.service.List(category)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list questions")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

// Create handles the request to post a new question as the
// authenticated user.
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.Identity(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var payload QuestionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Question cannot be empty")
		return
	}

	question, err := h.service.Create(claims.Username, payload.Text, payload.Category)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "Question cannot be empty")
		return
	case err != nil:
		log.Error().Err(err).Str("author", claims.Username).Msg("Failed to create question")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.eventSvc.Record(services.EventQuestionCreated, claims.Username, &question.ID); err != nil {
		log.Warn().Err(err).Msg("Failed to record question event")
	}

	respondJSON(w, http.StatusOK, question)
}

// Reply handles the request to append a reply to a question.
func (h *QuestionHandler) Reply(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.Identity(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	id := chi.URLParam(r, "id")

	var payload ReplyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Reply cannot be empty")
		return
	}

	question, err := h.service.AddReply(id, claims.Username, payload.Text)
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Question not found", http.StatusNotFound)
		return
	case errors.Is(err, services.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "Reply cannot be empty")
		return
	case err != nil:
		log.Error().Err(err).Str("question_id", id).Msg("Failed to add reply")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.eventSvc.Record(services.EventReplyCreated, claims.Username, &id); err != nil {
		log.Warn().Err(err).Msg("Failed to record reply event")
	}

	respondJSON(w, http.StatusOK, question)
}

// Delete handles the request to delete a question. Only the author may
// do this.
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.Identity(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	id := chi.URLParam(r, "id")

	err := h.service.DeleteQuestion(id, claims.Username)
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Question not found", http.StatusNotFound)
		return
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	case err != nil:
		log.Error().Err(err).Str("question_id", id).Msg("Failed to delete question")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.eventSvc.Record(services.EventQuestionDeleted, claims.Username, &id); err != nil {
		log.Warn().Err(err).Msg("Failed to record delete event")
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Question deleted"})
}

// DeleteReply handles the request to delete a single reply. Only the
// reply's author may do this.
func (h *QuestionHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.Identity(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	questionID := chi.URLParam(r, "qid")
	replyID := chi.URLParam(r, "rid")

	err := h.service.DeleteReply(questionID, replyID, claims.Username)
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Reply not found", http.StatusNotFound)
		return
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	case err != nil:
		log.Error().Err(err).Str("question_id", questionID).Str("reply_id", replyID).Msg("Failed to delete reply")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.eventSvc.Record(services.EventReplyDeleted, claims.Username, &replyID); err != nil {
		log.Warn().Err(err).Msg("Failed to record delete event")
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Reply deleted"})
}
