// Package access answers "may this role do that" questions.
//
// Every check is fail-closed: a role the table does not know is granted
// nothing, and no check ever returns an error.
package access

// Engine evaluates access checks against a fixed Table.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	table Table
}

func NewEngine(table Table) *Engine {
	return &Engine{table: table}
}

// NewDefaultEngine is NewEngine(DefaultTable()).
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultTable())
}

func (e *Engine) HasPermission(role Role, perm Permission) bool {
	return e.table.Has(role, perm)
}

// HasAnyPermission is false for an empty list.
func (e *Engine) HasAnyPermission(role Role, perms []Permission) bool {
	for _, p := range perms {
		if e.table.Has(role, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions is true for an empty list.
func (e *Engine) HasAllPermissions(role Role, perms []Permission) bool {
	for _, p := range perms {
		if !e.table.Has(role, p) {
			return false
		}
	}
	return true
}

// Permissions returns the sorted permissions granted to role.
func (e *Engine) Permissions(role Role) []Permission {
	return e.table.Permissions(role)
}

// HasRole reports whether role is a member of roles.
func HasRole(role Role, roles []Role) bool {
	if role == RoleNone {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
