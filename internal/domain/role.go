package domain

// Role names carried in JWT claims. Revoking another user's confirmation
// token is restricted to RoleAdmin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
