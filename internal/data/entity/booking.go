package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusHold           BookingStatus = "HOLD"
	BookingStatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingStatusConfirmed      BookingStatus = "CONFIRMED"
	BookingStatusCancelled      BookingStatus = "CANCELLED"
	BookingStatusCheckedIn      BookingStatus = "CHECKED_IN"
	BookingStatusCheckedOut     BookingStatus = "CHECKED_OUT"
)

// BookingStatuses lists every status in lifecycle order.
func BookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusHold,
		BookingStatusPendingPayment,
		BookingStatusConfirmed,
		BookingStatusCancelled,
		BookingStatusCheckedIn,
		BookingStatusCheckedOut,
	}
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPartial   PaymentStatus = "PARTIAL"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusPartial,
		PaymentStatusCompleted,
		PaymentStatusFailed,
		PaymentStatusRefunded,
	}
}

type SpecialRequestType string

const (
	SpecialRequestRoomChange   SpecialRequestType = "ROOM_CHANGE"
	SpecialRequestMaintenance  SpecialRequestType = "MAINTENANCE"
	SpecialRequestExtraBedding SpecialRequestType = "EXTRA_BEDDING"
	SpecialRequestDietary      SpecialRequestType = "DIETARY"
	SpecialRequestOther        SpecialRequestType = "OTHER"
)

type SpecialRequestStatus string

const (
	SpecialRequestOpen       SpecialRequestStatus = "OPEN"
	SpecialRequestInProgress SpecialRequestStatus = "IN_PROGRESS"
	SpecialRequestResolved   SpecialRequestStatus = "RESOLVED"
	SpecialRequestRejected   SpecialRequestStatus = "REJECTED"
)

type RefundStatus string

const (
	RefundStatusNotApplicable RefundStatus = "NOT_APPLICABLE"
	RefundStatusPending       RefundStatus = "PENDING"
	RefundStatusCompleted     RefundStatus = "COMPLETED"
)

type RoomCondition string

const (
	RoomConditionExcellent RoomCondition = "EXCELLENT"
	RoomConditionGood      RoomCondition = "GOOD"
	RoomConditionFair      RoomCondition = "FAIR"
	RoomConditionPoor      RoomCondition = "POOR"
	RoomConditionDamaged   RoomCondition = "DAMAGED"
)

type SpecialRequest struct {
	ID          uuid.UUID            `db:"id" json:"id"`
	BookingID   uuid.UUID            `db:"booking_id" json:"bookingId"`
	Type        SpecialRequestType   `db:"type" json:"type"`
	Description string               `db:"description" json:"description"`
	Status      SpecialRequestStatus `db:"status" json:"status"`
	RequestedBy uuid.UUID            `db:"requested_by" json:"requestedBy"`
	RequestedAt time.Time            `db:"requested_at" json:"requestedAt"`
}

type Cancellation struct {
	CancelledAt  time.Time       `json:"cancelledAt"`
	CancelledBy  uuid.UUID       `json:"cancelledBy"`
	Reason       string          `json:"reason"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
	RefundStatus RefundStatus    `json:"refundStatus"`
	RefundedAt   *time.Time      `json:"refundedAt,omitempty"`
}

type CheckInRecord struct {
	At            time.Time     `json:"at"`
	By            uuid.UUID     `json:"by"`
	RoomCondition RoomCondition `json:"roomCondition"`
	Notes         string        `json:"notes,omitempty"`
}

type Damage struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

type CheckOutRecord struct {
	At            time.Time     `json:"at"`
	By            uuid.UUID     `json:"by"`
	RoomCondition RoomCondition `json:"roomCondition"`
	Damages       []Damage      `json:"damages"`
	Notes         string        `json:"notes,omitempty"`
}

type TermsAcceptance struct {
	Accepted   bool       `json:"accepted"`
	Version    string     `json:"version,omitempty"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
}

// Booking is a reservation of a room (and optionally a bed) by a student.
// AmountDue always equals TotalAmount minus AmountPaid.
type Booking struct {
	Base
	BookingCode     string           `db:"booking_code" json:"bookingCode"`
	StudentID       uuid.UUID        `db:"student_id" json:"studentId"`
	HostelID        uuid.UUID        `db:"hostel_id" json:"hostelId"`
	RoomID          uuid.UUID        `db:"room_id" json:"roomId"`
	BedID           *uuid.UUID       `db:"bed_id" json:"bedId,omitempty"`
	Status          BookingStatus    `db:"status" json:"status"`
	PaymentStatus   PaymentStatus    `db:"payment_status" json:"paymentStatus"`
	Currency        string           `db:"currency" json:"currency"`
	TotalAmount     decimal.Decimal  `db:"total_amount" json:"totalAmount"`
	AmountPaid      decimal.Decimal  `db:"amount_paid" json:"amountPaid"`
	AmountDue       decimal.Decimal  `db:"amount_due" json:"amountDue"`
	StartDate       time.Time        `db:"start_date" json:"startDate"`
	EndDate         time.Time        `db:"end_date" json:"endDate"`
	DueDate         time.Time        `db:"due_date" json:"dueDate"`
	Notes           *string          `db:"notes" json:"notes,omitempty"`
	PaymentHistory  []PaymentRecord  `json:"paymentHistory"`
	SpecialRequests []SpecialRequest `json:"specialRequests"`
	Cancellation    *Cancellation    `db:"cancellation" json:"cancellation,omitempty"`
	CheckIn         *CheckInRecord   `db:"check_in" json:"checkIn,omitempty"`
	CheckOut        *CheckOutRecord  `db:"check_out" json:"checkOut,omitempty"`
	Terms           TermsAcceptance  `db:"terms" json:"terms"`
}

type NewBookingParams struct {
	BookingCode string
	StudentID   uuid.UUID
	HostelID    uuid.UUID
	RoomID      uuid.UUID
	BedID       *uuid.UUID
	Currency    string
	TotalAmount decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
	DueDate     time.Time
	Notes       *string
}

// NewBooking creates a booking in HOLD with nothing paid. A booking with
// nothing to pay starts with its payment COMPLETED.
func NewBooking(p NewBookingParams, now time.Time) *Booking {
	paymentStatus := PaymentStatusPending
	if !p.TotalAmount.IsPositive() {
		paymentStatus = PaymentStatusCompleted
	}
	return &Booking{
		Base:            NewBase(now),
		BookingCode:     p.BookingCode,
		StudentID:       p.StudentID,
		HostelID:        p.HostelID,
		RoomID:          p.RoomID,
		BedID:           p.BedID,
		Status:          BookingStatusHold,
		PaymentStatus:   paymentStatus,
		Currency:        p.Currency,
		TotalAmount:     p.TotalAmount,
		AmountPaid:      decimal.Zero,
		AmountDue:       p.TotalAmount,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		DueDate:         p.DueDate,
		Notes:           p.Notes,
		PaymentHistory:  []PaymentRecord{},
		SpecialRequests: []SpecialRequest{},
	}
}
