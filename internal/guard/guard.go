// Package guard decides whether a navigation target may render for the
// current Principal. The decision is a pure function; the redirect itself is
// performed by the HTTP layer so the two can be tested apart.
package guard

import "github.com/Kotresh021/frontendLMS/internal/domain"

// Decision is the outcome of an access check.
type Decision int

const (
	// Allow renders the requested content.
	Allow Decision = iota
	// Redirect sends the request to the entry (login) view without detail.
	// Used both for missing Principals and role mismatches, so an outside
	// caller cannot distinguish "not logged in" from "wrong role".
	Redirect
	// Loading renders a neutral placeholder while session restoration is
	// still in flight, avoiding a flash of the login page on refresh.
	Loading
)

// Decide evaluates (principal, requiredRoles, restoring). An empty
// requiredRoles set means any authenticated role may render.
func Decide(p *domain.Principal, requiredRoles []domain.Role, restoring bool) Decision {
	if p != nil && restoring {
		return Loading
	}
	if p == nil {
		return Redirect
	}
	if len(requiredRoles) == 0 {
		return Allow
	}
	for _, role := range requiredRoles {
		if p.Role == role {
			return Allow
		}
	}
	return Redirect
}
