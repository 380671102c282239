package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/rhymebook-backend/internal/domain"
	"github.com/heartmarshall/rhymebook-backend/internal/service/session"
)

// notebookService is the slice of the session service that manages the
// saved-words list.
type notebookService interface {
	SaveWord(ctx context.Context, word string) (*session.SavedWords, error)
	Saved(ctx context.Context) (*session.SavedWords, error)
}

// NotebookHandler serves the saved-words REST endpoints.
type NotebookHandler struct {
	svc notebookService
	log *slog.Logger
}

// NewNotebookHandler creates a NotebookHandler.
func NewNotebookHandler(svc notebookService, logger *slog.Logger) *NotebookHandler {
	return &NotebookHandler{svc: svc, log: logger.With("handler", "notebook")}
}

type saveWordRequest struct {
	Word string `json:"word"`
}

type savedWordsResponse struct {
	Words  []string `json:"words"`
	Joined string   `json:"joined"`
}

// Save handles POST /api/notebook/words.
func (h *NotebookHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.svc.SaveWord(r.Context(), req.Word)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSavedWordsResponse(saved))
}

// List handles GET /api/notebook/words.
func (h *NotebookHandler) List(w http.ResponseWriter, r *http.Request) {
	saved, err := h.svc.Saved(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSavedWordsResponse(saved))
}

func (h *NotebookHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toSavedWordsResponse(saved *session.SavedWords) savedWordsResponse {
	words := saved.Words
	if words == nil {
		words = []string{}
	}
	return savedWordsResponse{Words: words, Joined: saved.Joined}
}
