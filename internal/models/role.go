package models

// Role is the closed set of admin roles. Route gates check roles through
// Satisfies instead of comparing strings in handlers.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole maps a wire value onto a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	}
	return "", false
}

// Satisfies reports whether r grants at least the required role.
// super_admin satisfies every gate; admin satisfies only admin gates.
func (r Role) Satisfies(required Role) bool {
	if r == RoleSuperAdmin {
		return true
	}
	return r == required
}
