package wire

import (
	"net/http"

	"hostel-management/internal/access"
	"hostel-management/internal/adaptor"
	"hostel-management/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes with permission-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	authn func(http.Handler) http.Handler,
	engine *access.Engine,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.With(
		authn,
		middleware.RequirePermission(engine, log, access.PermAdminUsers),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetUsers)                  // GET /api/admin/users?page=1&limit=10&role=STAFF
		r.Get("/{id}", userHandler.GetUserByID)           // GET /api/admin/users/{id}
		r.Patch("/{id}/role", userHandler.UpdateRole)     // PATCH /api/admin/users/{id}/role
		r.Patch("/{id}/status", userHandler.UpdateStatus) // PATCH /api/admin/users/{id}/status
		r.Delete("/{id}", userHandler.DeleteUser)         // DELETE /api/admin/users/{id}
	})

	// ==================== DIRECTORY ROUTES ====================
	r.With(authn, middleware.RequirePermission(engine, log, access.PermStudentsRead)).
		Get("/api/students", userHandler.GetStudents)
	r.With(authn, middleware.RequirePermission(engine, log, access.PermStaffRead)).
		Get("/api/staff", userHandler.GetStaff)
}
