package wire

import (
	"net/http"

	"hostel-management/internal/access"
	"hostel-management/internal/adaptor"
	"hostel-management/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireBooking mounts the booking lifecycle. The service re-checks every gate
// and the ownership rules; the router only rejects early.
func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	authn func(http.Handler) http.Handler,
	engine *access.Engine,
	log *zap.Logger,
) {
	perm := func(perms ...access.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(engine, log, perms...)
	}

	r.With(authn).Route("/api/bookings", func(r chi.Router) {
		r.With(perm(access.PermBookingsCreate)).Post("/", bookingHandler.CreateBooking)
		r.With(perm(access.PermBookingsRead)).Get("/", bookingHandler.GetBookings)

		r.Route("/{id}", func(r chi.Router) {
			r.With(perm(access.PermBookingsRead)).Get("/", bookingHandler.GetBookingByID)
			r.With(perm(access.PermBookingsUpdate)).Put("/", bookingHandler.UpdateBooking)

			// ==================== LIFECYCLE ROUTES ====================
			r.With(perm(access.PermBookingsApprove)).Post("/approve", bookingHandler.ApproveBooking)
			r.With(perm(access.PermBookingsCancel)).Post("/cancel", bookingHandler.CancelBooking)
			r.With(perm(access.PermBookingsCheckIn)).Post("/check-in", bookingHandler.CheckIn)
			r.With(perm(access.PermBookingsCheckOut)).Post("/check-out", bookingHandler.CheckOut)
			r.With(perm(access.PermPaymentsCreate)).Post("/payments", bookingHandler.AddPayment)
			r.With(perm(access.PermPaymentsRefund)).Post("/refund", bookingHandler.CompleteRefund)
			r.With(perm(access.PermBookingsCreate, access.PermBookingsUpdate)).Post("/special-requests", bookingHandler.AddSpecialRequest)
			r.With(perm(access.PermBookingsCreate)).Post("/terms", bookingHandler.AcceptTerms)
		})
	})
}
