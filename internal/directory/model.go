package directory

import "time"

const (
	// RoleInvestor marks a capital provider.
	RoleInvestor = "investor"
	// RoleEntrepreneur marks a capital seeker.
	RoleEntrepreneur = "entrepreneur"
)

// User is a registered platform member. The role steers navigation and
// display only; it is not an authorization boundary.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash []byte    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is a login request payload.
type Credentials struct {
	Email    string
	Password string
}
