package domain

// Role is the closed set of roles the backend can assign to an account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// Roles lists every valid role in a fixed order.
var Roles = []Role{RoleAdmin, RoleStaff, RoleStudent}

// ParseRole returns the Role for a backend role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStaff, RoleStudent:
		return Role(s), nil
	}
	return "", ErrValidation("unknown role %q", s)
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// DashboardPath returns the landing page for the role.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleStaff:
		return "/staff"
	case RoleStudent:
		return "/student"
	}
	return "/login"
}

// Principal represents the authenticated user for the current tab session.
// A Principal exists only while a valid, server-acknowledged session is
// active; its absence means "not authenticated".
type Principal struct {
	SessionID   string
	UserID      string
	DisplayName string
	Role        Role
	Token       string // opaque backend bearer credential
}
