package access

import (
	"sort"
	"sync"
)

type permissionSet map[Permission]struct{}

// Table is a read-only mapping from role to granted permissions.
// The zero value grants nothing.
type Table struct {
	grants map[Role]permissionSet
}

// NewTable copies the given grants into an immutable Table.
// RoleNone is never granted anything, whatever the input says.
func NewTable(grants map[Role][]Permission) Table {
	t := Table{grants: make(map[Role]permissionSet, len(grants))}
	for role, perms := range grants {
		if role == RoleNone {
			continue
		}
		set := make(permissionSet, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		t.grants[role] = set
	}
	return t
}

// Has reports whether role is granted perm. Unknown roles have no grants.
func (t Table) Has(role Role, perm Permission) bool {
	set, ok := t.grants[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// Permissions returns the sorted grants of role. Unknown roles return an empty slice.
func (t Table) Permissions(role Role) []Permission {
	set := t.grants[role]
	out := make([]Permission, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var defaultTable = sync.OnceValue(func() Table {
	return NewTable(rolePermissions())
})

// DefaultTable returns the process-wide role table.
func DefaultTable() Table {
	return defaultTable()
}

// rolePermissions is the single source of truth for what each role may do.
func rolePermissions() map[Role][]Permission {
	student := []Permission{
		PermHostelsRead,
		PermBookingsRead,
		PermBookingsCreate,
		PermBookingsCancel,
		PermPaymentsRead,
		PermPaymentsCreate,
		PermNotificationsRead,
		PermDocumentsRead,
		PermDocumentsUpload,
		PermMessagesRead,
		PermMessagesSend,
		PermSettingsRead,
	}

	staff := []Permission{
		PermHostelsRead,
		PermStudentsRead,
		PermBookingsRead,
		PermBookingsUpdate,
		PermBookingsCheckIn,
		PermBookingsCheckOut,
		PermBookingsManage,
		PermPaymentsRead,
		PermReportsRead,
		PermNotificationsRead,
		PermNotificationsSend,
		PermDocumentsRead,
		PermMessagesRead,
		PermMessagesSend,
		PermSettingsRead,
	}

	accountant := []Permission{
		PermStudentsRead,
		PermBookingsRead,
		PermBookingsManage,
		PermPaymentsRead,
		PermPaymentsCreate,
		PermPaymentsRefund,
		PermReportsRead,
		PermReportsExport,
		PermNotificationsRead,
		PermDocumentsRead,
		PermAuditRead,
		PermSettingsRead,
	}

	hostelAdmin := []Permission{
		PermAdminAccess,
		PermHostelsRead, PermHostelsUpdate,
		PermStudentsRead, PermStudentsCreate, PermStudentsUpdate, PermStudentsDelete,
		PermStaffRead, PermStaffCreate, PermStaffUpdate,
		PermBookingsRead, PermBookingsCreate, PermBookingsUpdate, PermBookingsCancel,
		PermBookingsApprove, PermBookingsCheckIn, PermBookingsCheckOut, PermBookingsManage,
		PermPaymentsRead, PermPaymentsCreate, PermPaymentsRefund,
		PermReportsRead, PermReportsExport,
		PermSettingsRead, PermSettingsUpdate,
		PermNotificationsRead, PermNotificationsSend,
		PermDocumentsRead, PermDocumentsUpload,
		PermAuditRead,
		PermMessagesRead, PermMessagesSend,
	}

	var admin []Permission
	for _, p := range AllPermissions() {
		if p != PermSecurityManage {
			admin = append(admin, p)
		}
	}

	return map[Role][]Permission{
		RoleStudent:     student,
		RoleStaff:       staff,
		RoleAccountant:  accountant,
		RoleHostelAdmin: hostelAdmin,
		RoleAdmin:       admin,
		RoleSuperAdmin:  AllPermissions(),
	}
}
