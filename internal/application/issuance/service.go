package issuance

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-email-confirm/internal/domain"
	"github.com/go-email-confirm/internal/infrastructure/smtp"
	pkgtoken "github.com/go-email-confirm/internal/pkg/token"
)

// UserStore is what issuance needs from the identity backend.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	SetConfirmationToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	RevokeConfirmationToken(ctx context.Context, userID string) error
}

type Service interface {
	// Request issues a fresh confirmation token for the user and emails the
	// confirmation link. A reissue replaces any outstanding token, so older
	// links stop validating.
	Request(ctx context.Context, userID string) error
	// Revoke invalidates the outstanding token before its natural expiry.
	Revoke(ctx context.Context, userID string) error
}

type service struct {
	userRepo      UserStore
	mailer        smtp.Mailer
	publicBaseURL string
	tokenTTL      time.Duration
}

func NewService(userRepo UserStore, mailer smtp.Mailer, publicBaseURL string, tokenTTL time.Duration) Service {
	return &service{
		userRepo:      userRepo,
		mailer:        mailer,
		publicBaseURL: publicBaseURL,
		tokenTTL:      tokenTTL,
	}
}

func (s *service) Request(ctx context.Context, userID string) error {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if u.Confirmed() {
		return fmt.Errorf("email already confirmed: %w", domain.ErrConflict)
	}

	token, err := pkgtoken.NewConfirmationToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().UTC().Add(s.tokenTTL)
	if err := s.userRepo.SetConfirmationToken(ctx, userID, token, expiresAt); err != nil {
		return err
	}

	link := s.confirmationLink(u.Email, userID, token)
	body := "Confirm your email address by opening this link:\r\n\r\n" + link +
		"\r\n\r\nThe link expires in " + fmt.Sprintf("%.0f", s.tokenTTL.Hours()) + " hours."
	if err := s.mailer.SendEmail(u.Email, "Confirm your email", body); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	slog.Info("confirmation email sent", "user_id", userID)
	return nil
}

func (s *service) Revoke(ctx context.Context, userID string) error {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if u.ConfirmationToken == nil {
		return fmt.Errorf("no outstanding confirmation token: %w", domain.ErrNotFound)
	}
	if err := s.userRepo.RevokeConfirmationToken(ctx, userID); err != nil {
		return err
	}
	slog.Info("confirmation token revoked", "user_id", userID)
	return nil
}

func (s *service) confirmationLink(email, userID, token string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("user_id", userID)
	q.Set("token", token)
	return s.publicBaseURL + "/email/confirm?" + q.Encode()
}
