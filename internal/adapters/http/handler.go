package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/finnmcm/philo-ai/internal/app/dialogue"
	"github.com/finnmcm/philo-ai/internal/app/discussion"
	"github.com/finnmcm/philo-ai/internal/app/gate"
	"github.com/finnmcm/philo-ai/internal/app/match"
	"github.com/finnmcm/philo-ai/internal/domain"
)

type Server struct {
	svc *discussion.Service
}

func NewServer(svc *discussion.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.handleHealth)

	// Two-phase discussion flow: match once, continue many.
	mux.HandleFunc("/api/discussions/match/", s.handleMatch)
	mux.HandleFunc("/api/discussions/continue/", s.handleContinue)

	mux.HandleFunc("/api/get/users/", s.handleGetProfile)
	mux.HandleFunc("/api/get/discussions/", s.handleGetDiscussions)
	mux.HandleFunc("/api/get/folder/", s.handleGetFolder)
	mux.HandleFunc("/api/users/profile/", s.handleSaveProfile)
	mux.HandleFunc("/api/upload/", s.handleUpload)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type messageRequest struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"type,omitempty"`
}

type matchRequest struct {
	UserID       string           `json:"user_id"`
	DiscussionID string           `json:"discussionId,omitempty"`
	Messages     []messageRequest `json:"messages"`
}

type continueRequest struct {
	UserID        string           `json:"user_id"`
	DiscussionID  string           `json:"discussionId"`
	PhilosopherID string           `json:"philosopher_id"`
	Messages      []messageRequest `json:"messages"`
	CreatedAt     time.Time        `json:"createdAt,omitempty"`
}

type resultsResponse struct {
	Results any `json:"results"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}
	if len(req.Messages) == 0 {
		badRequest(w, "no messages provided")
		return
	}

	out, err := s.svc.Start(r.Context(), discussion.StartInput{
		UserID:       domain.UserID(req.UserID),
		Text:         req.Messages[0].Text,
		DiscussionID: domain.ConversationID(req.DiscussionID),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req continueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}
	if req.DiscussionID == "" {
		badRequest(w, "discussionId is required")
		return
	}

	out, err := s.svc.Continue(r.Context(), dialogue.ContinueInput{
		ConversationID: domain.ConversationID(req.DiscussionID),
		UserID:         domain.UserID(req.UserID),
		PhilosopherID:  req.PhilosopherID,
		Messages:       toDomainMessages(req.Messages),
		CreatedAt:      req.CreatedAt,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		badRequest(w, "required id param")
		return
	}

	profile, err := s.svc.GetProfile(r.Context(), domain.UserID(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultsResponse{Results: profile})
}

func (s *Server) handleGetDiscussions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		badRequest(w, "required id param")
		return
	}

	results, err := s.svc.ListDiscussions(r.Context(), domain.UserID(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultsResponse{Results: results})
}

func (s *Server) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		badRequest(w, "required prefix param")
		return
	}

	results, err := s.svc.GetFolder(r.Context(), prefix)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultsResponse{Results: results})
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}

	var profile map[string]any
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil || profile == nil {
		badRequest(w, "invalid JSON body")
		return
	}
	id, _ := profile["id"].(string)
	if id == "" {
		badRequest(w, "user ID required")
		return
	}

	key, err := s.svc.SaveProfile(r.Context(), domain.UserID(id), profile)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "profile saved successfully",
		"key":     key,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data == nil {
		badRequest(w, "invalid JSON body")
		return
	}
	id, _ := data["id"].(string)
	if id == "" {
		badRequest(w, "id is required")
		return
	}

	key, err := s.svc.SavePhilosopherData(r.Context(), id, data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

// ─────────────────────────────────────────────
// Mapping helpers
// ─────────────────────────────────────────────

func toDomainMessages(msgs []messageRequest) []domain.Message {
	out := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, domain.Message{
			ID:        m.ID,
			Text:      m.Text,
			Sender:    domain.Sender(m.Sender),
			Timestamp: m.Timestamp,
			Kind:      m.Kind,
		})
	}
	return out
}

// writeServiceError maps service errors onto the outward taxonomy: caller
// errors and off-topic verdicts are 400, storage access denied is 403, not
// found is 404, everything else (generation failures, contract violations,
// storage faults) is 500 with the classified message.
func writeServiceError(w http.ResponseWriter, err error) {
	var offTopic *gate.OffTopicError
	if errors.As(err, &offTopic) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "input not related to philosophy",
			"reason": offTopic.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		badRequest(w, err.Error())
	case errors.Is(err, domain.ErrAccessDenied):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "storage access denied"})
	case errors.Is(err, domain.ErrObjectNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": errorMessage(err)})
	}
}

// errorMessage keeps the classified generation and contract errors verbatim
// but hides unexpected internals behind a generic message.
func errorMessage(err error) string {
	var missing *match.MissingFieldsError
	switch {
	case errors.Is(err, domain.ErrGenerationAuth),
		errors.Is(err, domain.ErrGenerationQuota),
		errors.Is(err, domain.ErrGenerationRateLimited),
		errors.Is(err, domain.ErrGeneration),
		errors.Is(err, domain.ErrEmptyGeneration),
		errors.Is(err, match.ErrUnknownPhilosopher),
		errors.As(err, &missing):
		return err.Error()
	default:
		return "internal server error"
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
