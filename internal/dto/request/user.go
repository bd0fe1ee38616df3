package request

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=STUDENT STAFF ADMIN SUPER_ADMIN HOSTEL_ADMIN ACCOUNTANT"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
