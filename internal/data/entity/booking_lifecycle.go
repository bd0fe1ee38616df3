package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTransition    = errors.New("booking cannot move to that status")
	ErrBookingClosed        = errors.New("booking is closed")
	ErrNothingDue           = errors.New("booking has no amount due")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrOverpayment          = errors.New("payment exceeds amount due")
	ErrCannotCancel         = errors.New("booking cannot be cancelled")
	ErrCannotCheckIn        = errors.New("booking cannot be checked in")
	ErrCannotCheckOut       = errors.New("booking cannot be checked out")
	ErrRefundExceedsPaid    = errors.New("refund exceeds amount paid")
	ErrNoPendingRefund      = errors.New("booking has no pending refund")
	ErrEmptyRequest         = errors.New("special request needs a description")
	ErrTermsVersionRequired = errors.New("terms version is required")
	ErrInvalidDates         = errors.New("end date must be after start date")
	ErrAmountPrecision      = errors.New("amount has more than two decimal places")
)

var lifecycleErrors = []error{
	ErrInvalidTransition,
	ErrBookingClosed,
	ErrNothingDue,
	ErrInvalidAmount,
	ErrOverpayment,
	ErrCannotCancel,
	ErrCannotCheckIn,
	ErrCannotCheckOut,
	ErrRefundExceedsPaid,
	ErrNoPendingRefund,
	ErrEmptyRequest,
	ErrTermsVersionRequired,
	ErrInvalidDates,
	ErrAmountPrecision,
}

// IsLifecycleError reports whether err is a booking rule violation rather
// than an infrastructure failure.
func IsLifecycleError(err error) bool {
	for _, target := range lifecycleErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingStatusHold:           {BookingStatusPendingPayment: true, BookingStatusConfirmed: true, BookingStatusCancelled: true},
	BookingStatusPendingPayment: {BookingStatusConfirmed: true, BookingStatusCancelled: true},
	BookingStatusConfirmed:      {BookingStatusCheckedIn: true, BookingStatusCancelled: true},
	BookingStatusCheckedIn:      {BookingStatusCheckedOut: true},
	BookingStatusCancelled:      {},
	BookingStatusCheckedOut:     {},
}

// CanTransition reports whether the lifecycle allows from -> to.
func CanTransition(from, to BookingStatus) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

func (b *Booking) transition(to BookingStatus) error {
	if !CanTransition(b.Status, to) {
		return ErrInvalidTransition
	}
	b.Status = to
	return nil
}

// ==================== PREDICATES ====================

func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCheckedOut
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusCheckedIn
}

func (b *Booking) IsOverdue(now time.Time) bool {
	return b.PaymentStatus != PaymentStatusCompleted && now.After(b.DueDate)
}

func (b *Booking) CanCancel() bool {
	if b.Cancellation != nil {
		return false
	}
	switch b.Status {
	case BookingStatusHold, BookingStatusPendingPayment, BookingStatusConfirmed:
		return true
	}
	return false
}

func (b *Booking) CanCheckIn() bool {
	return b.Status == BookingStatusConfirmed && b.PaymentStatus == PaymentStatusCompleted
}

func (b *Booking) CanCheckOut() bool {
	return b.Status == BookingStatusCheckedIn
}

func (b *Booking) CanAddPayment() bool {
	return b.AmountDue.IsPositive()
}

// HoldsRoom reports whether the booking still occupies its room or bed.
func (b *Booking) HoldsRoom() bool {
	return !b.IsTerminal()
}

// ==================== MUTATIONS ====================
// Every mutation validates first and leaves the booking untouched on error.

// AddPayment appends rec to the history and recomputes balances. A FAILED
// record moves no money, so it is not capped by the amount due.
func (b *Booking) AddPayment(rec PaymentRecord) error {
	if b.Status == BookingStatusCancelled {
		return ErrBookingClosed
	}
	if rec.Status == "" {
		rec.Status = PaymentRecordCompleted
	}
	failed := rec.Status == PaymentRecordFailed

	if !failed && !b.CanAddPayment() {
		return ErrNothingDue
	}
	if !rec.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !ValidMoney(rec.Amount) {
		return ErrAmountPrecision
	}
	if !failed && rec.Amount.GreaterThan(b.AmountDue) {
		return ErrOverpayment
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.BookingID = b.ID
	b.PaymentHistory = append(b.PaymentHistory, rec)

	if failed {
		if b.AmountPaid.IsZero() && b.AmountDue.IsPositive() {
			b.PaymentStatus = PaymentStatusFailed
		}
		return nil
	}

	b.AmountPaid = b.AmountPaid.Add(rec.Amount)
	b.AmountDue = b.TotalAmount.Sub(b.AmountPaid)

	if b.AmountDue.IsZero() {
		b.PaymentStatus = PaymentStatusCompleted
		if b.Status == BookingStatusHold || b.Status == BookingStatusPendingPayment {
			b.Status = BookingStatusConfirmed
		}
		return nil
	}

	b.PaymentStatus = PaymentStatusPartial
	if b.Status == BookingStatusHold {
		b.Status = BookingStatusPendingPayment
	}
	return nil
}

// Approve confirms a held or pending booking ahead of full payment.
func (b *Booking) Approve() error {
	if b.Status != BookingStatusHold && b.Status != BookingStatusPendingPayment {
		return ErrInvalidTransition
	}
	return b.transition(BookingStatusConfirmed)
}

func (b *Booking) CheckInGuest(rec CheckInRecord) error {
	if !b.CanCheckIn() {
		return ErrCannotCheckIn
	}
	if err := b.transition(BookingStatusCheckedIn); err != nil {
		return err
	}
	b.CheckIn = &rec
	return nil
}

func (b *Booking) CheckOutGuest(rec CheckOutRecord) error {
	if !b.CanCheckOut() {
		return ErrCannotCheckOut
	}
	for _, d := range rec.Damages {
		if d.Cost.IsNegative() {
			return ErrInvalidAmount
		}
		if !ValidMoney(d.Cost) {
			return ErrAmountPrecision
		}
	}
	if err := b.transition(BookingStatusCheckedOut); err != nil {
		return err
	}
	if rec.Damages == nil {
		rec.Damages = []Damage{}
	}
	b.CheckOut = &rec
	return nil
}

// Cancel records the cancellation. A positive refund is left PENDING until
// CompleteRefund is called.
func (b *Booking) Cancel(rec Cancellation) error {
	if !b.CanCancel() {
		return ErrCannotCancel
	}
	if rec.RefundAmount.IsNegative() {
		return ErrInvalidAmount
	}
	if !ValidMoney(rec.RefundAmount) {
		return ErrAmountPrecision
	}
	if rec.RefundAmount.GreaterThan(b.AmountPaid) {
		return ErrRefundExceedsPaid
	}
	if err := b.transition(BookingStatusCancelled); err != nil {
		return err
	}

	rec.RefundStatus = RefundStatusNotApplicable
	if rec.RefundAmount.IsPositive() {
		rec.RefundStatus = RefundStatusPending
	}
	rec.RefundedAt = nil
	b.Cancellation = &rec
	return nil
}

func (b *Booking) CompleteRefund(at time.Time) error {
	if b.Cancellation == nil || b.Cancellation.RefundStatus != RefundStatusPending {
		return ErrNoPendingRefund
	}
	b.Cancellation.RefundStatus = RefundStatusCompleted
	b.Cancellation.RefundedAt = &at
	b.PaymentStatus = PaymentStatusRefunded
	return nil
}

func (b *Booking) AddSpecialRequest(reqType SpecialRequestType, description string, by uuid.UUID, at time.Time) (SpecialRequest, error) {
	if description == "" {
		return SpecialRequest{}, ErrEmptyRequest
	}
	req := SpecialRequest{
		ID:          uuid.New(),
		BookingID:   b.ID,
		Type:        reqType,
		Description: description,
		Status:      SpecialRequestOpen,
		RequestedBy: by,
		RequestedAt: at,
	}
	b.SpecialRequests = append(b.SpecialRequests, req)
	return req, nil
}

func (b *Booking) AcceptTerms(version string, at time.Time) error {
	if version == "" {
		return ErrTermsVersionRequired
	}
	b.Terms = TermsAcceptance{Accepted: true, Version: version, AcceptedAt: &at}
	return nil
}

// BookingDetails holds the editable fields of a booking. Nil fields are left as they are.
type BookingDetails struct {
	RoomID    *uuid.UUID
	BedID     *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	DueDate   *time.Time
	Notes     *string
}

func (b *Booking) UpdateDetails(d BookingDetails) error {
	if b.IsTerminal() {
		return ErrBookingClosed
	}

	start, end := b.StartDate, b.EndDate
	if d.StartDate != nil {
		start = *d.StartDate
	}
	if d.EndDate != nil {
		end = *d.EndDate
	}
	if !end.After(start) {
		return ErrInvalidDates
	}

	b.StartDate, b.EndDate = start, end
	if d.RoomID != nil {
		b.RoomID = *d.RoomID
	}
	if d.BedID != nil {
		bed := *d.BedID
		b.BedID = &bed
	}
	if d.DueDate != nil {
		b.DueDate = *d.DueDate
	}
	if d.Notes != nil {
		notes := *d.Notes
		b.Notes = &notes
	}
	return nil
}

// TotalDamages sums the damage costs recorded at check-out.
func (b *Booking) TotalDamages() decimal.Decimal {
	total := decimal.Zero
	if b.CheckOut == nil {
		return total
	}
	for _, d := range b.CheckOut.Damages {
		total = total.Add(d.Cost)
	}
	return total
}
