package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-email-confirm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockConfirmService struct{ mock.Mock }

func (m *mockConfirmService) Confirm(ctx context.Context, req domain.ConfirmationRequest) domain.Outcome {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Outcome)
}
func (m *mockConfirmService) Redirect(outcome domain.Outcome) string {
	if outcome.Success() {
		return "https://accounts.example.com/email/confirmed"
	}
	return "https://accounts.example.com/email/failed?reason=" + string(outcome)
}

func TestConfirm_Success_RedirectsToConfirmedPage(t *testing.T) {
	svc := &mockConfirmService{}
	svc.On("Confirm", mock.Anything, domain.ConfirmationRequest{
		Email:  "a@x.com",
		UserID: "u1",
		Token:  "T",
	}).Return(domain.OutcomeConfirmed)

	h := NewConfirmHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/email/confirm?email=a%40x.com&user_id=u1&token=T", nil)
	rr := httptest.NewRecorder()
	h.Confirm(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://accounts.example.com/email/confirmed", rr.Header().Get("Location"))
	svc.AssertExpectations(t)
}

func TestConfirm_Failure_RedirectsWithReason(t *testing.T) {
	svc := &mockConfirmService{}
	svc.On("Confirm", mock.Anything, mock.Anything).Return(domain.OutcomeExpired)

	h := NewConfirmHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/email/confirm?email=a%40x.com&user_id=u1&token=T", nil)
	rr := httptest.NewRecorder()
	h.Confirm(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://accounts.example.com/email/failed?reason=expired", rr.Header().Get("Location"))
}

func TestConfirm_MissingParams_StillRedirects(t *testing.T) {
	// Even a bare request gets a redirect, never an error body.
	svc := &mockConfirmService{}
	svc.On("Confirm", mock.Anything, domain.ConfirmationRequest{}).Return(domain.OutcomeDefault)

	h := NewConfirmHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/email/confirm", nil)
	rr := httptest.NewRecorder()
	h.Confirm(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://accounts.example.com/email/failed?reason=default", rr.Header().Get("Location"))
}
