package access

// Gate describes what a protected region requires.
// Nil fields are not checked; every non-nil field must be satisfied.
type Gate struct {
	Permissions []Permission
	RequireAll  bool
	Roles       []Role
}

// RequireAny builds a gate satisfied by any one of perms.
func RequireAny(perms ...Permission) Gate {
	return Gate{Permissions: perms}
}

// RequireAllOf builds a gate satisfied only by all of perms.
func RequireAllOf(perms ...Permission) Gate {
	return Gate{Permissions: perms, RequireAll: true}
}

// RequireRoles builds a gate satisfied by membership in roles.
func RequireRoles(roles ...Role) Gate {
	return Gate{Roles: roles}
}

// Allows decides whether role may see the region. It is evaluated on every
// call against the role passed in; nothing is cached. RoleNone is always
// refused, even by a gate with no requirements.
func (g Gate) Allows(e *Engine, role Role) bool {
	if role == RoleNone {
		return false
	}
	if g.Roles != nil && !HasRole(role, g.Roles) {
		return false
	}
	if g.Permissions != nil {
		if g.RequireAll {
			return e.HasAllPermissions(role, g.Permissions)
		}
		return e.HasAnyPermission(role, g.Permissions)
	}
	return true
}
