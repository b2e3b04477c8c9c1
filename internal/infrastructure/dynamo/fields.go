package dynamo

// DynamoDB attribute names used in update and condition expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldEmailConfirmedAt      = "email_confirmed_at"
	fieldConfirmationToken     = "confirmation_token"
	fieldConfirmationExpiresAt = "confirmation_expires_at"
	fieldConfirmationRevoked   = "confirmation_revoked"
	fieldUpdatedAt             = "updated_at"
)
