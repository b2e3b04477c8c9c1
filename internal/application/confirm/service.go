package confirm

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-email-confirm/internal/domain"
	"github.com/go-email-confirm/internal/pkg/id"
	"github.com/go-email-confirm/internal/pkg/validate"
)

// UserStore is the minimal interface the engine requires from the identity
// backend. Any store satisfying it is substitutable.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	// ConfirmEmail performs the exactly-once transition as a conditional
	// write. Returns domain.ErrConflict when the account is already confirmed.
	ConfirmEmail(ctx context.Context, userID string) error
}

// AttemptRecorder persists the audit trail of confirmation attempts.
type AttemptRecorder interface {
	Put(ctx context.Context, a *domain.ConfirmationAttempt) error
}

// EventPublisher announces successful confirmations downstream.
type EventPublisher interface {
	PublishConfirmed(ctx context.Context, userID, email string) error
}

type Service interface {
	// Confirm runs the full verification pipeline for one inbound attempt and
	// returns its terminal outcome. It never returns an error: every failure
	// mode is folded into the outcome vocabulary.
	Confirm(ctx context.Context, req domain.ConfirmationRequest) domain.Outcome
	// Redirect maps an outcome to the Location of the 302 response.
	Redirect(outcome domain.Outcome) string
}

// ServiceDeps carries the engine's collaborators. AttemptRepo and Publisher
// are optional; the engine degrades to skipping audit/events when nil.
type ServiceDeps struct {
	UserRepo         UserStore
	AttemptRepo      AttemptRecorder
	Publisher        EventPublisher
	ConfirmedPageURL string
	FailedPageURL    string
	AttemptRetention time.Duration
	Now              func() time.Time
}

type service struct {
	userRepo         UserStore
	attemptRepo      AttemptRecorder
	publisher        EventPublisher
	confirmedPageURL string
	failedPageURL    string
	attemptRetention time.Duration
	now              func() time.Time
}

func NewService(deps ServiceDeps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.AttemptRetention == 0 {
		deps.AttemptRetention = 30 * 24 * time.Hour
	}
	return &service{
		userRepo:         deps.UserRepo,
		attemptRepo:      deps.AttemptRepo,
		publisher:        deps.Publisher,
		confirmedPageURL: deps.ConfirmedPageURL,
		failedPageURL:    deps.FailedPageURL,
		attemptRetention: deps.AttemptRetention,
		now:              deps.Now,
	}
}

func (s *service) Confirm(ctx context.Context, req domain.ConfirmationRequest) domain.Outcome {
	outcome := s.confirm(ctx, req)
	s.recordAttempt(ctx, req.UserID, outcome)
	return outcome
}

// confirm evaluates the checks in strict order; first match wins. Identity
// and match checks run before expiry and revocation so a wrongly-targeted
// link never learns whether a token exists or is merely stale. The
// already-confirmed check runs last so a resubmitted valid link reports the
// benign "already" instead of a spurious mismatch.
func (s *service) confirm(ctx context.Context, req domain.ConfirmationRequest) domain.Outcome {
	if err := validate.Struct(&req); err != nil {
		slog.Info("confirmation request rejected", "reason", "missing fields")
		return domain.OutcomeDefault
	}

	u, err := s.userRepo.Get(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.OutcomeNotFound
		}
		slog.Error("user store read failed", "user_id", req.UserID, "err", err)
		return domain.OutcomeStoreFail
	}

	if !strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(req.Email)) {
		return domain.OutcomeNoMatch
	}
	if u.ConfirmationToken == nil || *u.ConfirmationToken == "" {
		// A successful transition clears the token, so absence on a confirmed
		// record is the normal aftermath of consumption, not tampering.
		if u.Confirmed() {
			return domain.OutcomeAlready
		}
		return domain.OutcomeTampered
	}
	if *u.ConfirmationToken != req.Token {
		return domain.OutcomeNoMatch
	}
	if u.ConfirmationRevoked {
		return domain.OutcomeRevoked
	}
	// Expiry is a closed interval: a token presented exactly at its deadline
	// still confirms. A nil deadline never expires.
	if u.ConfirmationExpiresAt != nil && s.now().After(*u.ConfirmationExpiresAt) {
		return domain.OutcomeExpired
	}
	if u.Confirmed() {
		return domain.OutcomeAlready
	}

	if err := s.userRepo.ConfirmEmail(ctx, req.UserID); err != nil {
		// Lost a race against a concurrent attempt with the same token. The
		// store accepted exactly one transition; this one observes "already".
		if errors.Is(err, domain.ErrConflict) {
			return domain.OutcomeAlready
		}
		slog.Error("confirm transition failed", "user_id", req.UserID, "err", err)
		return domain.OutcomeStoreFail
	}

	if s.publisher != nil {
		if err := s.publisher.PublishConfirmed(ctx, u.UserID, u.Email); err != nil {
			slog.Warn("could not publish confirmation event", "user_id", u.UserID, "err", err)
		}
	}
	return domain.OutcomeConfirmed
}

// Redirect is a pure, total mapping from outcomes to redirect targets. Every
// non-success outcome lands on the failed page with a machine-readable reason.
func (s *service) Redirect(outcome domain.Outcome) string {
	if outcome.Success() {
		return s.confirmedPageURL
	}
	return s.failedPageURL + "?reason=" + url.QueryEscape(string(outcome))
}

func (s *service) recordAttempt(ctx context.Context, userID string, outcome domain.Outcome) {
	if s.attemptRepo == nil || userID == "" {
		return
	}
	now := s.now().UTC()
	a := &domain.ConfirmationAttempt{
		AttemptID: id.New(),
		UserID:    userID,
		Outcome:   outcome,
		At:        now.Format(time.RFC3339),
		ExpiresAt: now.Add(s.attemptRetention).Unix(),
	}
	if err := s.attemptRepo.Put(ctx, a); err != nil {
		slog.Warn("could not record confirmation attempt", "user_id", userID, "err", err)
	}
}
