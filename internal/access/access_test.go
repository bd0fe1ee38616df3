package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleStudent, ParseRole("student"))
	assert.Equal(t, RoleHostelAdmin, ParseRole(" HOSTEL_ADMIN "))
	assert.Equal(t, RoleNone, ParseRole("janitor"))
	assert.Equal(t, RoleNone, ParseRole(""))
	assert.False(t, RoleNone.Valid())
	assert.True(t, RoleAccountant.Valid())
	assert.False(t, Role("janitor").Valid())
}

func TestPermission_Parts(t *testing.T) {
	assert.Equal(t, "bookings", PermBookingsApprove.Resource())
	assert.Equal(t, "approve", PermBookingsApprove.Action())
}

func TestDefaultTable_EveryRoleHasGrants(t *testing.T) {
	table := DefaultTable()
	for _, role := range Roles() {
		assert.NotEmpty(t, table.Permissions(role), "role %s", role)
	}
	assert.Empty(t, table.Permissions(RoleNone))
	assert.Empty(t, table.Permissions(Role("GHOST")))
}

func TestDefaultTable_OnlyKnownPermissions(t *testing.T) {
	known := make(map[Permission]bool)
	for _, p := range AllPermissions() {
		known[p] = true
	}
	for _, role := range Roles() {
		for _, p := range DefaultTable().Permissions(role) {
			assert.True(t, known[p], "role %s has unknown permission %s", role, p)
		}
	}
}

func TestNewTable_IgnoresRoleNone(t *testing.T) {
	table := NewTable(map[Role][]Permission{
		RoleNone:    {PermAdminAccess},
		RoleStudent: {PermBookingsRead},
	})
	assert.False(t, table.Has(RoleNone, PermAdminAccess))
	assert.True(t, table.Has(RoleStudent, PermBookingsRead))
}

func TestEngine_HasPermissionMatchesTable(t *testing.T) {
	e := NewDefaultEngine()
	table := DefaultTable()

	for _, role := range append(Roles(), RoleNone, Role("UNKNOWN")) {
		granted := make(map[Permission]bool)
		for _, p := range table.Permissions(role) {
			granted[p] = true
		}
		for _, p := range AllPermissions() {
			assert.Equal(t, granted[p], e.HasPermission(role, p), "role %s permission %s", role, p)
		}
	}
}

func TestEngine_UnknownRoleIsDenied(t *testing.T) {
	e := NewDefaultEngine()
	for _, p := range AllPermissions() {
		assert.False(t, e.HasPermission(Role("HACKER"), p))
		assert.False(t, e.HasPermission(RoleNone, p))
	}
	assert.False(t, e.HasAnyPermission(RoleNone, AllPermissions()))
}

func TestEngine_EmptyLists(t *testing.T) {
	e := NewDefaultEngine()
	for _, role := range Roles() {
		assert.False(t, e.HasAnyPermission(role, nil))
		assert.False(t, e.HasAnyPermission(role, []Permission{}))
		assert.True(t, e.HasAllPermissions(role, nil))
		assert.True(t, e.HasAllPermissions(role, []Permission{}))
	}
}

func TestEngine_StaffBookings(t *testing.T) {
	e := NewDefaultEngine()

	assert.False(t, e.HasAnyPermission(RoleStaff, []Permission{PermBookingsApprove}))
	assert.True(t, e.HasAnyPermission(RoleStaff, []Permission{PermBookingsRead}))
	assert.True(t, e.HasAnyPermission(RoleStaff, []Permission{PermBookingsApprove, PermBookingsRead}))
	assert.False(t, e.HasAllPermissions(RoleStaff, []Permission{PermBookingsApprove, PermBookingsRead}))
}

func TestEngine_AdminVersusSuperAdmin(t *testing.T) {
	e := NewDefaultEngine()

	assert.False(t, e.HasPermission(RoleAdmin, PermSecurityManage))
	assert.True(t, e.HasPermission(RoleSuperAdmin, PermSecurityManage))
	assert.True(t, e.HasAllPermissions(RoleSuperAdmin, AllPermissions()))
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole(RoleStaff, []Role{RoleAdmin, RoleStaff}))
	assert.False(t, HasRole(RoleStudent, []Role{RoleAdmin}))
	assert.False(t, HasRole(RoleNone, []Role{RoleNone}))
}

func TestGate_Allows(t *testing.T) {
	e := NewDefaultEngine()

	tests := []struct {
		name string
		gate Gate
		role Role
		want bool
	}{
		{"no requirements", Gate{}, RoleStudent, true},
		{"no requirements, no role", Gate{}, RoleNone, false},
		{"any satisfied", RequireAny(PermBookingsApprove, PermBookingsRead), RoleStaff, true},
		{"any unsatisfied", RequireAny(PermBookingsApprove), RoleStaff, false},
		{"all unsatisfied", RequireAllOf(PermBookingsApprove, PermBookingsRead), RoleStaff, false},
		{"all satisfied", RequireAllOf(PermBookingsApprove, PermBookingsRead), RoleHostelAdmin, true},
		{"role member", RequireRoles(RoleAdmin, RoleSuperAdmin), RoleAdmin, true},
		{"role outsider", RequireRoles(RoleAdmin), RoleAccountant, false},
		{"role and permission both needed", Gate{Roles: []Role{RoleStaff}, Permissions: []Permission{PermBookingsApprove}}, RoleStaff, false},
		{"explicit empty any list", Gate{Permissions: []Permission{}}, RoleSuperAdmin, false},
		{"explicit empty all list", Gate{Permissions: []Permission{}, RequireAll: true}, RoleStudent, true},
		{"unknown role", RequireAny(PermHostelsRead), Role("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.gate.Allows(e, tt.role))
		})
	}
}

func TestGate_ReevaluatesOnRoleChange(t *testing.T) {
	e := NewDefaultEngine()
	gate := RequireAny(PermBookingsApprove)

	role := RoleStaff
	assert.False(t, gate.Allows(e, role))

	role = RoleHostelAdmin
	assert.True(t, gate.Allows(e, role))

	role = RoleNone
	assert.False(t, gate.Allows(e, role))
}

func titles(items []NavItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestFilterNavigation_AbsentVersusEmptyRequirement(t *testing.T) {
	e := NewDefaultEngine()
	tree := []NavItem{
		{Title: "open", Href: "/open"},
		{Title: "explicit-empty", Href: "/empty", Permissions: []Permission{}},
		{Title: "empty-roles", Href: "/empty-roles", Roles: []Role{}},
	}

	got := e.FilterNavigation(tree, RoleSuperAdmin)
	assert.Equal(t, []string{"open"}, titles(got))

	got = e.FilterNavigation(tree, RoleNone)
	assert.Equal(t, []string{"open"}, titles(got))
}

func TestFilterNavigation_RoleOrPermission(t *testing.T) {
	e := NewDefaultEngine()
	tree := []NavItem{
		{Title: "by-role", Href: "/a", Roles: []Role{RoleAccountant}, Permissions: []Permission{PermSecurityManage}},
		{Title: "by-perm", Href: "/b", Roles: []Role{RoleAdmin}, Permissions: []Permission{PermPaymentsRefund}},
		{Title: "neither", Href: "/c", Roles: []Role{RoleAdmin}, Permissions: []Permission{PermSecurityManage}},
	}

	got := e.FilterNavigation(tree, RoleAccountant)
	assert.Equal(t, []string{"by-role", "by-perm"}, titles(got))
}

func TestFilterNavigation_MatchAll(t *testing.T) {
	e := NewDefaultEngine()
	tree := []NavItem{
		{Title: "front-desk", Href: "/fd", Permissions: []Permission{PermBookingsCheckIn, PermBookingsApprove}},
	}

	assert.Len(t, e.FilterNavigation(tree, RoleStaff), 1)
	assert.Empty(t, e.FilterNavigation(tree, RoleStaff, MatchAll()))
	assert.Len(t, e.FilterNavigation(tree, RoleHostelAdmin, MatchAll()), 1)
}

func TestFilterNavigation_PreservesOrderAndRecurses(t *testing.T) {
	e := NewDefaultEngine()

	got := e.FilterNavigation(DefaultNavigation(), RoleStudent)
	assert.Equal(t, []string{"Dashboard", "Bookings", "Payments", "Hostels", "Messages", "Notifications", "Settings"}, titles(got))

	require.Len(t, got[1].Children, 2)
	assert.Equal(t, []string{"My Bookings", "New Booking"}, titles(got[1].Children))
	assert.Equal(t, []string{"History"}, titles(got[2].Children))
}

func TestFilterNavigation_HidesParentWithoutVisibleChildren(t *testing.T) {
	e := NewDefaultEngine()
	tree := []NavItem{
		{
			Title: "Administration",
			Href:  "/admin",
			Children: []NavItem{
				{Title: "Security", Href: "/admin/security", Permissions: []Permission{PermSecurityManage}},
			},
		},
		{Title: "Leaf parent", Href: "/leaf", Children: []NavItem{}},
	}

	got := e.FilterNavigation(tree, RoleStudent)
	assert.Equal(t, []string{"Leaf parent"}, titles(got))

	got = e.FilterNavigation(tree, RoleSuperAdmin)
	assert.Equal(t, []string{"Administration", "Leaf parent"}, titles(got))
}

func TestFilterNavigation_Idempotent(t *testing.T) {
	e := NewDefaultEngine()
	for _, role := range append(Roles(), RoleNone) {
		once := e.FilterNavigation(DefaultNavigation(), role)
		twice := e.FilterNavigation(once, role)
		assert.Equal(t, once, twice, "role %s", role)

		onceAll := e.FilterNavigation(DefaultNavigation(), role, MatchAll())
		assert.Equal(t, onceAll, e.FilterNavigation(onceAll, role, MatchAll()), "role %s", role)
	}
}

func TestFilterNavigation_DoesNotMutateInput(t *testing.T) {
	e := NewDefaultEngine()
	tree := DefaultNavigation()
	before := DefaultNavigation()

	got := e.FilterNavigation(tree, RoleStaff)
	assert.Equal(t, before, tree)

	require.NotEmpty(t, got)
	got[0].Title = "changed"
	for i := range got {
		if len(got[i].Children) > 0 {
			got[i].Children[0].Title = "changed"
		}
		if len(got[i].Permissions) > 0 {
			got[i].Permissions[0] = "changed:changed"
		}
	}
	assert.Equal(t, before, tree)
}
