package response

import (
	"time"

	"hostel-management/internal/data/entity"
)

// BookingActions are the lifecycle predicates evaluated at response time.
// Clients use them to decide which actions to offer.
type BookingActions struct {
	IsActive      bool `json:"isActive"`
	IsOverdue     bool `json:"isOverdue"`
	CanCancel     bool `json:"canCancel"`
	CanCheckIn    bool `json:"canCheckIn"`
	CanCheckOut   bool `json:"canCheckOut"`
	CanAddPayment bool `json:"canAddPayment"`
}

type BookingResponse struct {
	*entity.Booking
	Actions BookingActions `json:"actions"`
}

func ActionsFor(b *entity.Booking, now time.Time) BookingActions {
	return BookingActions{
		IsActive:      b.IsActive(),
		IsOverdue:     b.IsOverdue(now),
		CanCancel:     b.CanCancel(),
		CanCheckIn:    b.CanCheckIn(),
		CanCheckOut:   b.CanCheckOut(),
		CanAddPayment: b.CanAddPayment(),
	}
}

func BookingToResponse(b *entity.Booking, now time.Time) BookingResponse {
	return BookingResponse{Booking: b, Actions: ActionsFor(b, now)}
}

func BookingsToResponse(bookings []*entity.Booking, now time.Time) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b, now))
	}
	return out
}
