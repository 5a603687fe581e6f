package domain

// Role is the closed set of principal roles. Policyholders carry the
// synthetic "user" role; staff roles come from the staff_members table.
type Role string

const (
	RoleUser    Role = "user"
	RoleSupport Role = "support"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSupport, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether r is an internal staff role.
func (r Role) Staff() bool {
	return r == RoleSupport || r == RoleManager || r == RoleAdmin
}
