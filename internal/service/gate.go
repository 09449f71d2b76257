package service

import "cstdportal/internal/model"

// View identifies a navigable view of the portal.
type View string

const (
	ViewHome       View = "home"
	ViewAnalyze    View = "analyze"
	ViewAdminFiles View = "adminFiles"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allow permits the navigation.
	Allow Decision = iota
	// RequiresLogin means the visitor must authenticate first.
	RequiresLogin
	// RequiresAdminRole means the session lacks the admin role.
	RequiresAdminRole
)

// Authorize decides whether a session may navigate to a view. It is a pure
// function over the session value: it never touches the store or the network.
func Authorize(session model.Session, view View) Decision {
	switch view {
	case ViewAnalyze:
		if !session.Authenticated() {
			return RequiresLogin
		}
		return Allow
	case ViewAdminFiles:
		if !session.Authenticated() {
			return RequiresLogin
		}
		if session.Role != model.RoleAdmin {
			return RequiresAdminRole
		}
		return Allow
	default:
		// home and unknown views are public
		return Allow
	}
}
