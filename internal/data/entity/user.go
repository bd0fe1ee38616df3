package entity

import "hostel-management/internal/access"

type User struct {
	Base
	FullName     string      `db:"full_name"`
	Email        string      `db:"email"`
	PasswordHash string      `db:"password"`
	Phone        *string     `db:"phone"`
	Role         access.Role `db:"role"`
	IsActive     bool        `db:"is_active"`
}

// EffectiveRole is the role used for access checks. Inactive users and
// unrecognised stored roles get no access.
func (u *User) EffectiveRole() access.Role {
	if u == nil || !u.IsActive {
		return access.RoleNone
	}
	return access.ParseRole(string(u.Role))
}
