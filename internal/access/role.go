package access

import "strings"

// Role is the coarse identity category assigned to a user by the backend.
type Role string

const (
	// RoleNone is the explicit no-access role. Anything that fails to parse
	// ends up here and is granted nothing.
	RoleNone Role = ""

	RoleStudent     Role = "STUDENT"
	RoleStaff       Role = "STAFF"
	RoleAdmin       Role = "ADMIN"
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleHostelAdmin Role = "HOSTEL_ADMIN"
	RoleAccountant  Role = "ACCOUNTANT"
)

// Roles lists every assignable role.
func Roles() []Role {
	return []Role{
		RoleStudent,
		RoleStaff,
		RoleAdmin,
		RoleSuperAdmin,
		RoleHostelAdmin,
		RoleAccountant,
	}
}

// ParseRole maps a stored or user supplied value to a Role.
// Unknown values map to RoleNone.
func ParseRole(s string) Role {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Roles() {
		if r == known {
			return r
		}
	}
	return RoleNone
}

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	return r != RoleNone && ParseRole(string(r)) == r
}

func (r Role) String() string {
	if r == RoleNone {
		return "NONE"
	}
	return string(r)
}
