package wire

import (
	"net/http"

	"hostel-management/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAccess exposes the caller's profile, permission set and filtered navigation.
func wireAccess(r chi.Router, accessHandler *adaptor.AccessHandler, authn func(http.Handler) http.Handler) {
	r.With(authn).Route("/api/me", func(r chi.Router) {
		r.Get("/", accessHandler.Me)
		r.Get("/permissions", accessHandler.Permissions)
		r.Get("/navigation", accessHandler.Navigation)
	})
}
