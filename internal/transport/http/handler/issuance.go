package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-email-confirm/internal/application/issuance"
	"github.com/go-email-confirm/internal/transport/http/middleware"
)

// IssuanceHandler handles token lifecycle endpoints: authenticated resend and
// admin revocation.
type IssuanceHandler struct {
	svc issuance.Service
}

func NewIssuanceHandler(svc issuance.Service) *IssuanceHandler {
	return &IssuanceHandler{svc: svc}
}

// Resend issues a fresh confirmation token for the calling user.
func (h *IssuanceHandler) Resend(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Request(r.Context(), claims.UserID); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "confirmation email sent"})
}

// Revoke invalidates the outstanding confirmation token of the given user.
func (h *IssuanceHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}
	if err := h.svc.Revoke(r.Context(), userID); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "confirmation token revoked"})
}
