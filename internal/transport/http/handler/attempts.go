package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-email-confirm/internal/domain"
)

// AttemptLister reads the confirmation-attempt audit trail.
type AttemptLister interface {
	ListByUser(ctx context.Context, userID string) ([]domain.ConfirmationAttempt, error)
}

// AttemptsHandler exposes the audit trail to administrators.
type AttemptsHandler struct {
	repo AttemptLister
}

func NewAttemptsHandler(repo AttemptLister) *AttemptsHandler {
	return &AttemptsHandler{repo: repo}
}

// AttemptsEnvelope wraps audit listing responses.
type AttemptsEnvelope struct {
	Data  []domain.ConfirmationAttempt `json:"data"`
	Error string                       `json:"error,omitempty"`
}

func (h *AttemptsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}
	attempts, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AttemptsEnvelope{Data: attempts})
}
