package model

// Role is the access level attached to an account.
type Role string

const (
	// RoleUser can run classifications.
	RoleUser Role = "user"
	// RoleAdmin can additionally browse previously produced result files.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account represents a locally registered user of the portal.
type Account struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"` // SHA-256 digest, never the plaintext
	Role         Role   `json:"role"`
}
