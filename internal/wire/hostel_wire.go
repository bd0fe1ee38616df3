package wire

import (
	"net/http"

	"hostel-management/internal/access"
	"hostel-management/internal/adaptor"
	"hostel-management/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireHostel(
	r chi.Router,
	hostelHandler *adaptor.HostelHandler,
	authn func(http.Handler) http.Handler,
	engine *access.Engine,
	log *zap.Logger,
) {
	perm := func(p access.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(engine, log, p)
	}

	r.With(authn).Route("/api/hostels", func(r chi.Router) {
		r.With(perm(access.PermHostelsRead)).Get("/", hostelHandler.GetHostels)
		r.With(perm(access.PermHostelsCreate)).Post("/", hostelHandler.CreateHostel)

		r.Route("/{id}", func(r chi.Router) {
			r.With(perm(access.PermHostelsRead)).Get("/", hostelHandler.GetHostelByID)
			r.With(perm(access.PermHostelsUpdate)).Put("/", hostelHandler.UpdateHostel)
			r.With(perm(access.PermHostelsDelete)).Delete("/", hostelHandler.DeleteHostel)

			// rooms are part of the hostel's inventory
			r.With(perm(access.PermHostelsRead)).Get("/rooms", hostelHandler.GetRooms)
			r.With(perm(access.PermHostelsUpdate)).Post("/rooms", hostelHandler.CreateRoom)
			r.With(perm(access.PermHostelsUpdate)).Put("/rooms/{roomId}", hostelHandler.UpdateRoom)
		})
	})
}
