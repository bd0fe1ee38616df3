package adaptor

import (
	"net/http"

	"hostel-management/internal/data/entity"
	"hostel-management/internal/data/repository"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/dto/response"
	"hostel-management/internal/usecase"
	"hostel-management/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// GetBookings handles GET /api/bookings?status=&studentId=&hostelId=
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	var filter repository.BookingFilter

	if raw := query.Get("status"); raw != "" {
		status := entity.BookingStatus(raw)
		if !validBookingStatus(status) {
			utils.ResponseBadRequest(w, "Unknown booking status "+raw, nil)
			return
		}
		filter.Status = &status
	}
	for key, dst := range map[string]**uuid.UUID{"studentId": &filter.StudentID, "hostelId": &filter.HostelID} {
		raw := query.Get(key)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid "+key, nil)
			return
		}
		*dst = &id
	}

	bookings, err := h.service.GetBookings(r.Context(), actor, paginationFrom(r), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdateBooking handles PUT /api/bookings/{id}
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBookingRequest
	h.mutate(w, r, &req, "update booking", "Booking updated", func(actor usecase.Actor, id string) (*response.BookingResponse, error) {
		return h.service.UpdateBooking(r.Context(), actor, id, &req)
	})
}

// ==================== LIFECYCLE METHODS ====================

// ApproveBooking handles POST /api/bookings/{id}/approve
func (h *BookingHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, nil, "approve booking", "Booking approved", func(actor usecase.Actor, id string) (*response.BookingResponse, error) {
		return h.service.ApproveBooking(r.Context(), actor, id)
	})
}

// CancelBooking handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CancelBookingRequest
	h.mutate(w, r, &req, "cancel booking", "Booking cancelled", func(actor usecase.Actor, id string) (*response.BookingResponse, error) {
		return h.service.CancelBooking(r.Context(), actor, id, &req)
	})
}

// CheckIn handles POST /api/bookings/{id}/check-in
func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req request.CheckInRequest
	h.mutate(w, r, &req, "check in", "Checked in", func(actor usecase.Actor, id string) (*response.BookingResponse, error) {
		return h.service.CheckIn(r.Context(), actor, id, &req)
	})
}

// CheckOut handles POST /api/bookings/{id}/check-out
func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req request.CheckOutRequest
	h.mutate(w, r, &req, "check out", "Checked out", func(actor usecase.Actor, id string) (*response.BookingResponse, error) {
		return h.service.CheckOut(r.Context(), actor, id, &req)
	})
}

// AddPayment handles POST /api/bookings/{id}/payments
func (h *BookingHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req request.AddPaymentRequest
	h.mutate(w, r, &req, "add payment", "Payment recorded", func(actor usecase.Actor, id string) (*response.BookingResponse, error) {
		return h.service.AddPayment(r.Context(), actor, id, &req)
	})
}

// CompleteRefund handles POST /api/bookings/{id}/refund
func (h *BookingHandler) CompleteRefund(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, nil, "complete refund", "Refund completed", func(actor usecase.Actor, id string) (*response.BookingResponse, error) {
		return h.service.CompleteRefund(r.Context(), actor, id)
	})
}

// AddSpecialRequest handles POST /api/bookings/{id}/special-requests
func (h *BookingHandler) AddSpecialRequest(w http.ResponseWriter, r *http.Request) {
	var req request.SpecialRequestRequest
	h.mutate(w, r, &req, "add special request", "Special request added", func(actor usecase.Actor, id string) (*response.BookingResponse, error) {
		return h.service.AddSpecialRequest(r.Context(), actor, id, &req)
	})
}

// AcceptTerms handles POST /api/bookings/{id}/terms
func (h *BookingHandler) AcceptTerms(w http.ResponseWriter, r *http.Request) {
	var req request.AcceptTermsRequest
	h.mutate(w, r, &req, "accept terms", "Terms accepted", func(actor usecase.Actor, id string) (*response.BookingResponse, error) {
		return h.service.AcceptTerms(r.Context(), actor, id, &req)
	})
}

// ==================== HELPER METHODS ====================

// mutate decodes body (when non-nil) and writes the updated booking.
func (h *BookingHandler) mutate(w http.ResponseWriter, r *http.Request, body any, operation, message string, call func(actor usecase.Actor, id string) (*response.BookingResponse, error)) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if body != nil && r.ContentLength != 0 && !decodeJSON(w, r, body) {
		return
	}

	booking, err := call(actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, operation)
		return
	}

	utils.ResponseSuccess(w, message, booking)
}

func validBookingStatus(status entity.BookingStatus) bool {
	for _, s := range entity.BookingStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
