package handler

import (
	"net/http"

	"github.com/go-email-confirm/internal/application/confirm"
	"github.com/go-email-confirm/internal/domain"
)

// ConfirmHandler serves the public confirmation link. Every path through it
// ends in a 302: success redirects to the confirmed page, everything else to
// the failed page with a machine-readable reason. No internal error detail
// ever reaches the Location header.
type ConfirmHandler struct {
	svc confirm.Service
}

func NewConfirmHandler(svc confirm.Service) *ConfirmHandler {
	return &ConfirmHandler{svc: svc}
}

// Confirm handles GET /email/confirm?email=...&user_id=...&token=...
func (h *ConfirmHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := domain.ConfirmationRequest{
		Email:  q.Get("email"),
		UserID: q.Get("user_id"),
		Token:  q.Get("token"),
	}

	outcome := h.svc.Confirm(r.Context(), req)
	http.Redirect(w, r, h.svc.Redirect(outcome), http.StatusFound)
}
