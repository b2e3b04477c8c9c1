package http

import (
	"github.com/go-email-confirm/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-email-confirm/internal/infrastructure/jwt"
	"github.com/go-email-confirm/internal/infrastructure/smtp"
	"github.com/go-email-confirm/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router. Lifecycle is
// owned by the hosting process (cmd/api); the router and services only hold
// the handles they are given.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	AttemptRepo *dynamo.AttemptRepo
	Mailer      smtp.Mailer
	Publisher   sns.EventPublisher
	JWTProvider *jwtinfra.Provider
}
