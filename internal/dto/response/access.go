package response

import "hostel-management/internal/access"

type PermissionsResponse struct {
	Role        access.Role         `json:"role"`
	Permissions []access.Permission `json:"permissions"`
}

type MeResponse struct {
	User        UserResponse        `json:"user"`
	Permissions []access.Permission `json:"permissions"`
}

type NavigationResponse struct {
	Role  access.Role      `json:"role"`
	Items []access.NavItem `json:"items"`
}
