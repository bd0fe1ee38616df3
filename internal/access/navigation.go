package access

import "slices"

// NavItem is one entry of a dashboard navigation tree.
//
// A nil Permissions or Roles slice means the requirement is absent. A non-nil
// empty slice is an explicit, empty requirement and is evaluated as such.
type NavItem struct {
	Title       string       `json:"title"`
	Href        string       `json:"href"`
	Icon        string       `json:"icon,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
	Roles       []Role       `json:"roles,omitempty"`
	Children    []NavItem    `json:"children,omitempty"`
}

type filterOptions struct {
	matchAll bool
}

// FilterOption tunes FilterNavigation.
type FilterOption func(*filterOptions)

// MatchAll requires every listed permission instead of any one of them.
func MatchAll() FilterOption {
	return func(o *filterOptions) { o.matchAll = true }
}

// FilterNavigation returns the subset of items visible to role, keeping order.
// The input tree is not modified and the result shares no slices with it.
//
// An item is visible when it has no requirements, when role is in its Roles,
// or when its Permissions match. A parent whose children are all hidden is
// hidden as well.
func (e *Engine) FilterNavigation(items []NavItem, role Role, opts ...FilterOption) []NavItem {
	var o filterOptions
	for _, opt := range opts {
		opt(&o)
	}
	return e.filterNav(items, role, o)
}

func (e *Engine) filterNav(items []NavItem, role Role, o filterOptions) []NavItem {
	out := make([]NavItem, 0, len(items))
	for _, item := range items {
		var children []NavItem
		if item.Children != nil {
			children = e.filterNav(item.Children, role, o)
			if len(item.Children) > 0 && len(children) == 0 {
				continue
			}
		}

		if !e.itemVisible(item, role, o) {
			continue
		}

		out = append(out, NavItem{
			Title:       item.Title,
			Href:        item.Href,
			Icon:        item.Icon,
			Permissions: slices.Clone(item.Permissions),
			Roles:       slices.Clone(item.Roles),
			Children:    children,
		})
	}
	return out
}

func (e *Engine) itemVisible(item NavItem, role Role, o filterOptions) bool {
	if item.Permissions == nil && item.Roles == nil {
		return true
	}
	if item.Roles != nil && HasRole(role, item.Roles) {
		return true
	}
	if item.Permissions == nil {
		return false
	}
	if o.matchAll {
		return e.HasAllPermissions(role, item.Permissions)
	}
	return e.HasAnyPermission(role, item.Permissions)
}

// DefaultNavigation is the dashboard tree served to every role before filtering.
func DefaultNavigation() []NavItem {
	return []NavItem{
		{Title: "Dashboard", Href: "/dashboard", Icon: "home"},
		{
			Title:       "Bookings",
			Href:        "/bookings",
			Icon:        "calendar",
			Permissions: []Permission{PermBookingsRead},
			Children: []NavItem{
				{Title: "My Bookings", Href: "/bookings", Icon: "list", Permissions: []Permission{PermBookingsRead}},
				{Title: "New Booking", Href: "/bookings/new", Icon: "plus", Permissions: []Permission{PermBookingsCreate}},
				{Title: "Approvals", Href: "/bookings/approvals", Icon: "check", Permissions: []Permission{PermBookingsApprove}},
				{Title: "Check-in / Check-out", Href: "/bookings/front-desk", Icon: "key", Permissions: []Permission{PermBookingsCheckIn, PermBookingsCheckOut}},
			},
		},
		{
			Title:       "Payments",
			Href:        "/payments",
			Icon:        "credit-card",
			Permissions: []Permission{PermPaymentsRead},
			Children: []NavItem{
				{Title: "History", Href: "/payments", Icon: "list", Permissions: []Permission{PermPaymentsRead}},
				{Title: "Refunds", Href: "/payments/refunds", Icon: "rotate-ccw", Permissions: []Permission{PermPaymentsRefund}},
			},
		},
		{Title: "Hostels", Href: "/hostels", Icon: "building", Permissions: []Permission{PermHostelsRead}},
		{Title: "Students", Href: "/students", Icon: "users", Permissions: []Permission{PermStudentsRead}},
		{Title: "Staff", Href: "/staff", Icon: "briefcase", Permissions: []Permission{PermStaffRead}},
		{Title: "Reports", Href: "/reports", Icon: "bar-chart", Permissions: []Permission{PermReportsRead}},
		{
			Title: "Administration",
			Href:  "/admin",
			Icon:  "shield",
			Roles: []Role{RoleAdmin, RoleSuperAdmin, RoleHostelAdmin},
			Children: []NavItem{
				{Title: "Users", Href: "/admin/users", Icon: "user-cog", Permissions: []Permission{PermAdminUsers}},
				{Title: "Security", Href: "/admin/security", Icon: "lock", Permissions: []Permission{PermSecurityManage}},
				{Title: "Audit Log", Href: "/admin/audit", Icon: "file-text", Permissions: []Permission{PermAuditRead}},
			},
		},
		{Title: "Messages", Href: "/messages", Icon: "message-square", Permissions: []Permission{PermMessagesRead}},
		{Title: "Notifications", Href: "/notifications", Icon: "bell", Permissions: []Permission{PermNotificationsRead}},
		{Title: "Settings", Href: "/settings", Icon: "settings", Permissions: []Permission{PermSettingsRead}},
	}
}
