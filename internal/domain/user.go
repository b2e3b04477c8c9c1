package domain

import "time"

type User struct {
	UserID                string     `json:"id" dynamodbav:"user_id"`
	Email                 string     `json:"email" dynamodbav:"email"`
	Role                  string     `json:"role" dynamodbav:"role"`
	EmailConfirmedAt      *time.Time `json:"email_confirmed_at,omitempty" dynamodbav:"email_confirmed_at,omitempty"`
	ConfirmationToken     *string    `json:"-" dynamodbav:"confirmation_token,omitempty"`
	ConfirmationExpiresAt *time.Time `json:"-" dynamodbav:"confirmation_expires_at,omitempty"`
	ConfirmationRevoked   bool       `json:"-" dynamodbav:"confirmation_revoked"`
	Enable                int        `json:"enable" dynamodbav:"enable"`
	CreatedAt             time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt             time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// Confirmed reports whether the user's email address has been confirmed.
// EmailConfirmedAt is monotonic: once set it is never cleared or rewritten.
func (u *User) Confirmed() bool {
	return u.EmailConfirmedAt != nil
}
