package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-email-confirm/internal/application/confirm"
	"github.com/go-email-confirm/internal/application/issuance"
	"github.com/go-email-confirm/internal/config"
	"github.com/go-email-confirm/internal/domain"
	"github.com/go-email-confirm/internal/transport/http/handler"
	appmiddleware "github.com/go-email-confirm/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — confirmation links are a guessing
	// surface, so the public endpoint is throttled per IP.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	confirmSvc := confirm.NewService(confirm.ServiceDeps{
		UserRepo:         deps.UserRepo,
		AttemptRepo:      deps.AttemptRepo,
		Publisher:        deps.Publisher,
		ConfirmedPageURL: cfg.ConfirmedPageURL,
		FailedPageURL:    cfg.FailedPageURL,
	})
	issuanceSvc := issuance.NewService(deps.UserRepo, deps.Mailer, cfg.PublicBaseURL, cfg.ConfirmationTokenTTL)

	healthH := handler.NewHealthHandler()
	confirmH := handler.NewConfirmHandler(confirmSvc)
	issuanceH := handler.NewIssuanceHandler(issuanceSvc)
	attemptsH := handler.NewAttemptsHandler(deps.AttemptRepo)

	// The confirmation link lives outside /v1: its URL is baked into sent
	// emails and must stay stable across API versions.
	r.With(sensitiveRL.Limit).Get("/email/confirm", confirmH.Confirm)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/email/confirmation/resend", issuanceH.Resend)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))
				r.Post("/email/confirmation/revoke/{id}", issuanceH.Revoke)
				r.Get("/email/confirmation/attempts/{id}", attemptsH.ListByUser)
			})
		})
	})

	return r
}
