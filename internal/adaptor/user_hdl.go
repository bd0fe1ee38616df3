package adaptor

import (
	"net/http"
	"strings"

	"hostel-management/internal/access"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/usecase"
	"hostel-management/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetUsers handles GET /api/admin/users?role=STAFF,ADMIN
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	var roles []access.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			role := access.ParseRole(part)
			if role == access.RoleNone {
				utils.ResponseBadRequest(w, "Unknown role "+strings.TrimSpace(part), nil)
				return
			}
			roles = append(roles, role)
		}
	}
	h.list(w, r, roles, "get users")
}

// GetStudents handles GET /api/students
func (h *UserHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, []access.Role{access.RoleStudent}, "get students")
}

// GetStaff handles GET /api/staff
func (h *UserHandler) GetStaff(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, usecase.StaffRoles, "get staff")
}

// GetUserByID handles GET /api/admin/users/{id}
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// UpdateRole handles PATCH /api/admin/users/{id}/role
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req request.UpdateRoleRequest
	if !decodeJSON(w, r, &req) || !validate(w, req) {
		return
	}

	user, err := h.service.UpdateRole(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update role")
		return
	}

	utils.ResponseSuccess(w, "Role updated", user)
}

// UpdateStatus handles PATCH /api/admin/users/{id}/status
func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if !decodeJSON(w, r, &req) || !validate(w, req) {
		return
	}

	user, err := h.service.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update status")
		return
	}

	utils.ResponseSuccess(w, "Status updated", user)
}

// DeleteUser handles DELETE /api/admin/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted", nil)
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request, roles []access.Role, operation string) {
	users, err := h.service.List(r.Context(), paginationFrom(r), roles)
	if err != nil {
		handleServiceError(w, h.log, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", users)
}
