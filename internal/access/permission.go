package access

import "strings"

// Permission is a fine-grained capability of the form resource:action.
type Permission string

const (
	PermHostelsRead   Permission = "hostels:read"
	PermHostelsCreate Permission = "hostels:create"
	PermHostelsUpdate Permission = "hostels:update"
	PermHostelsDelete Permission = "hostels:delete"

	PermStudentsRead   Permission = "students:read"
	PermStudentsCreate Permission = "students:create"
	PermStudentsUpdate Permission = "students:update"
	PermStudentsDelete Permission = "students:delete"

	PermStaffRead   Permission = "staff:read"
	PermStaffCreate Permission = "staff:create"
	PermStaffUpdate Permission = "staff:update"
	PermStaffDelete Permission = "staff:delete"

	PermBookingsRead     Permission = "bookings:read"
	PermBookingsCreate   Permission = "bookings:create"
	PermBookingsUpdate   Permission = "bookings:update"
	PermBookingsCancel   Permission = "bookings:cancel"
	PermBookingsApprove  Permission = "bookings:approve"
	PermBookingsCheckIn  Permission = "bookings:checkin"
	PermBookingsCheckOut Permission = "bookings:checkout"
	PermBookingsManage   Permission = "bookings:manage" // act on bookings of other users

	PermPaymentsRead   Permission = "payments:read"
	PermPaymentsCreate Permission = "payments:create"
	PermPaymentsRefund Permission = "payments:refund"

	PermReportsRead   Permission = "reports:read"
	PermReportsExport Permission = "reports:export"

	PermAdminAccess Permission = "admin:access"
	PermAdminUsers  Permission = "admin:users"

	PermSettingsRead   Permission = "settings:read"
	PermSettingsUpdate Permission = "settings:update"

	PermNotificationsRead Permission = "notifications:read"
	PermNotificationsSend Permission = "notifications:send"

	PermDocumentsRead   Permission = "documents:read"
	PermDocumentsUpload Permission = "documents:upload"

	PermSecurityManage Permission = "security:manage"

	PermAuditRead Permission = "audit:read"

	PermMessagesRead Permission = "messages:read"
	PermMessagesSend Permission = "messages:send"
)

// AllPermissions returns the closed permission set in declaration order.
func AllPermissions() []Permission {
	return []Permission{
		PermHostelsRead, PermHostelsCreate, PermHostelsUpdate, PermHostelsDelete,
		PermStudentsRead, PermStudentsCreate, PermStudentsUpdate, PermStudentsDelete,
		PermStaffRead, PermStaffCreate, PermStaffUpdate, PermStaffDelete,
		PermBookingsRead, PermBookingsCreate, PermBookingsUpdate, PermBookingsCancel,
		PermBookingsApprove, PermBookingsCheckIn, PermBookingsCheckOut, PermBookingsManage,
		PermPaymentsRead, PermPaymentsCreate, PermPaymentsRefund,
		PermReportsRead, PermReportsExport,
		PermAdminAccess, PermAdminUsers,
		PermSettingsRead, PermSettingsUpdate,
		PermNotificationsRead, PermNotificationsSend,
		PermDocumentsRead, PermDocumentsUpload,
		PermSecurityManage,
		PermAuditRead,
		PermMessagesRead, PermMessagesSend,
	}
}

// Resource returns the part before the colon.
func (p Permission) Resource() string {
	resource, _, _ := strings.Cut(string(p), ":")
	return resource
}

// Action returns the part after the colon.
func (p Permission) Action() string {
	_, action, _ := strings.Cut(string(p), ":")
	return action
}
