package model

// Session is the currently active authenticated identity, if any.
// The zero value means no one is logged in. The role is copied from the
// account at login time and is not re-validated afterwards.
type Session struct {
	Username string
	Role     Role
}

// Authenticated reports whether the session belongs to a logged-in account.
func (s Session) Authenticated() bool {
	return s.Username != ""
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == RoleAdmin
}
