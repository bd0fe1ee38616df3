package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestBooking(total int64) *Booking {
	return NewBooking(NewBookingParams{
		BookingCode: "HST-TEST",
		StudentID:   uuid.New(),
		HostelID:    uuid.New(),
		RoomID:      uuid.New(),
		Currency:    "KES",
		TotalAmount: decimal.NewFromInt(total),
		StartDate:   testNow.AddDate(0, 1, 0),
		EndDate:     testNow.AddDate(0, 5, 0),
		DueDate:     testNow.AddDate(0, 0, 7),
	}, testNow)
}

func payment(amount int64) PaymentRecord {
	return PaymentRecord{
		Amount:     decimal.NewFromInt(amount),
		Method:     PaymentMethodMobileMoney,
		RecordedBy: uuid.New(),
		PaidAt:     testNow,
	}
}

func assertBalanced(t *testing.T, b *Booking) {
	t.Helper()
	assert.True(t, b.AmountDue.Equal(b.TotalAmount.Sub(b.AmountPaid)),
		"amountDue %s != total %s - paid %s", b.AmountDue, b.TotalAmount, b.AmountPaid)
	assert.False(t, b.AmountDue.IsNegative())
	assert.False(t, b.AmountPaid.IsNegative())
}

func TestNewBooking(t *testing.T) {
	b := newTestBooking(12000)

	assert.Equal(t, BookingStatusHold, b.Status)
	assert.Equal(t, PaymentStatusPending, b.PaymentStatus)
	assert.True(t, b.AmountDue.Equal(decimal.NewFromInt(12000)))
	assert.True(t, b.AmountPaid.IsZero())
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.NotNil(t, b.PaymentHistory)
	assert.NotNil(t, b.SpecialRequests)
	assertBalanced(t, b)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(BookingStatusHold, BookingStatusPendingPayment))
	assert.True(t, CanTransition(BookingStatusPendingPayment, BookingStatusConfirmed))
	assert.True(t, CanTransition(BookingStatusConfirmed, BookingStatusCheckedIn))
	assert.True(t, CanTransition(BookingStatusCheckedIn, BookingStatusCheckedOut))
	assert.False(t, CanTransition(BookingStatusCheckedIn, BookingStatusCancelled))
	assert.False(t, CanTransition(BookingStatus("BOGUS"), BookingStatusHold))

	for _, terminal := range []BookingStatus{BookingStatusCancelled, BookingStatusCheckedOut} {
		for _, to := range BookingStatuses() {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestCanCheckIn_AllCombinations(t *testing.T) {
	for _, status := range BookingStatuses() {
		for _, ps := range PaymentStatuses() {
			b := &Booking{Status: status, PaymentStatus: ps}
			want := status == BookingStatusConfirmed && ps == PaymentStatusCompleted
			assert.Equal(t, want, b.CanCheckIn(), "status %s payment %s", status, ps)
		}
	}
}

func TestCanCancel(t *testing.T) {
	for _, status := range BookingStatuses() {
		b := &Booking{Status: status}
		want := status == BookingStatusHold || status == BookingStatusPendingPayment || status == BookingStatusConfirmed
		assert.Equal(t, want, b.CanCancel(), "status %s", status)

		b.Cancellation = &Cancellation{Reason: "already"}
		assert.False(t, b.CanCancel(), "status %s with cancellation", status)
	}
}

func TestPredicates(t *testing.T) {
	b := &Booking{Status: BookingStatusCheckedIn, PaymentStatus: PaymentStatusCompleted}
	assert.True(t, b.IsActive())
	assert.True(t, b.CanCheckOut())
	assert.False(t, b.IsTerminal())

	b.Status = BookingStatusHold
	assert.False(t, b.IsActive())
	assert.False(t, b.CanCheckOut())

	b.Status = BookingStatusCheckedOut
	assert.True(t, b.IsTerminal())
	assert.False(t, b.HoldsRoom())
}

func TestIsOverdue(t *testing.T) {
	b := newTestBooking(1000)

	assert.False(t, b.IsOverdue(b.DueDate))
	assert.True(t, b.IsOverdue(b.DueDate.Add(time.Second)))

	b.PaymentStatus = PaymentStatusCompleted
	assert.False(t, b.IsOverdue(b.DueDate.Add(time.Hour)))

	b.PaymentStatus = PaymentStatusPartial
	assert.True(t, b.IsOverdue(b.DueDate.Add(time.Hour)))
}

func TestAddPayment_PartialThenComplete(t *testing.T) {
	b := newTestBooking(10000)

	require.NoError(t, b.AddPayment(payment(4000)))
	assert.Equal(t, PaymentStatusPartial, b.PaymentStatus)
	assert.Equal(t, BookingStatusPendingPayment, b.Status)
	assert.True(t, b.AmountDue.Equal(decimal.NewFromInt(6000)))
	assertBalanced(t, b)

	require.NoError(t, b.AddPayment(payment(6000)))
	assert.Equal(t, PaymentStatusCompleted, b.PaymentStatus)
	assert.Equal(t, BookingStatusConfirmed, b.Status)
	assert.True(t, b.AmountDue.IsZero())
	assert.Len(t, b.PaymentHistory, 2)
	assertBalanced(t, b)

	for _, rec := range b.PaymentHistory {
		assert.Equal(t, b.ID, rec.BookingID)
		assert.NotEqual(t, uuid.Nil, rec.ID)
		assert.Equal(t, PaymentRecordCompleted, rec.Status)
	}

	assert.ErrorIs(t, b.AddPayment(payment(1)), ErrNothingDue)
}

func TestAddPayment_ConfirmedPartialScenario(t *testing.T) {
	b := newTestBooking(10000)
	require.NoError(t, b.AddPayment(payment(5000)))
	require.NoError(t, b.Approve())

	assert.Equal(t, BookingStatusConfirmed, b.Status)
	assert.Equal(t, PaymentStatusPartial, b.PaymentStatus)
	assert.True(t, b.AmountDue.Equal(decimal.NewFromInt(5000)))
	assert.False(t, b.CanCheckIn())

	require.NoError(t, b.AddPayment(payment(5000)))
	assert.Equal(t, PaymentStatusCompleted, b.PaymentStatus)
	assert.True(t, b.AmountDue.IsZero())
	assert.True(t, b.CanCheckIn())
	assert.Equal(t, BookingStatusConfirmed, b.Status)
}

func TestAddPayment_Rejections(t *testing.T) {
	b := newTestBooking(3000)

	assert.ErrorIs(t, b.AddPayment(payment(3001)), ErrOverpayment)
	assert.ErrorIs(t, b.AddPayment(payment(0)), ErrInvalidAmount)
	assert.ErrorIs(t, b.AddPayment(payment(-5)), ErrInvalidAmount)
	assert.Empty(t, b.PaymentHistory)
	assert.Equal(t, PaymentStatusPending, b.PaymentStatus)
	assertBalanced(t, b)

	require.NoError(t, b.Cancel(Cancellation{Reason: "changed plans"}))
	assert.ErrorIs(t, b.AddPayment(payment(100)), ErrBookingClosed)
}

func TestAddPayment_DecimalAmounts(t *testing.T) {
	b := newTestBooking(1)
	third := PaymentRecord{Amount: decimal.RequireFromString("0.1")}

	for i := 0; i < 10; i++ {
		require.NoError(t, b.AddPayment(third))
		assertBalanced(t, b)
	}
	assert.True(t, b.AmountDue.IsZero())
	assert.Equal(t, PaymentStatusCompleted, b.PaymentStatus)
}

func TestAddPayment_Failed(t *testing.T) {
	b := newTestBooking(2000)

	failed := payment(2000)
	failed.Status = PaymentRecordFailed
	require.NoError(t, b.AddPayment(failed))
	assert.Equal(t, PaymentStatusFailed, b.PaymentStatus)
	assert.True(t, b.AmountPaid.IsZero())
	assert.Len(t, b.PaymentHistory, 1)
	assertBalanced(t, b)

	require.NoError(t, b.AddPayment(payment(500)))
	assert.Equal(t, PaymentStatusPartial, b.PaymentStatus)

	failed = payment(100)
	failed.Status = PaymentRecordFailed
	require.NoError(t, b.AddPayment(failed))
	assert.Equal(t, PaymentStatusPartial, b.PaymentStatus)
	assertBalanced(t, b)
}

func TestCheckInAndOut(t *testing.T) {
	b := newTestBooking(1000)
	staff := uuid.New()

	err := b.CheckInGuest(CheckInRecord{At: testNow, By: staff, RoomCondition: RoomConditionGood})
	assert.ErrorIs(t, err, ErrCannotCheckIn)
	assert.Nil(t, b.CheckIn)

	assert.ErrorIs(t, b.CheckOutGuest(CheckOutRecord{}), ErrCannotCheckOut)

	require.NoError(t, b.AddPayment(payment(1000)))
	require.NoError(t, b.CheckInGuest(CheckInRecord{At: testNow, By: staff, RoomCondition: RoomConditionGood, Notes: "keys handed over"}))
	assert.Equal(t, BookingStatusCheckedIn, b.Status)
	require.NotNil(t, b.CheckIn)
	assert.Equal(t, staff, b.CheckIn.By)
	assert.False(t, b.CanCancel())

	out := CheckOutRecord{
		At:            testNow.AddDate(0, 4, 0),
		By:            staff,
		RoomCondition: RoomConditionFair,
		Damages: []Damage{
			{Description: "broken lamp", Cost: decimal.NewFromInt(150)},
			{Description: "stained mattress", Cost: decimal.NewFromInt(300)},
		},
	}
	require.NoError(t, b.CheckOutGuest(out))
	assert.Equal(t, BookingStatusCheckedOut, b.Status)
	assert.True(t, b.TotalDamages().Equal(decimal.NewFromInt(450)))
	assert.True(t, b.IsTerminal())
	assert.False(t, b.CanCancel())
}

func TestCheckOut_DefaultsDamages(t *testing.T) {
	b := &Booking{Status: BookingStatusCheckedIn}
	require.NoError(t, b.CheckOutGuest(CheckOutRecord{At: testNow}))
	assert.NotNil(t, b.CheckOut.Damages)
	assert.True(t, b.TotalDamages().IsZero())
}

func TestCancel(t *testing.T) {
	t.Run("without refund", func(t *testing.T) {
		b := newTestBooking(1000)
		require.NoError(t, b.Cancel(Cancellation{CancelledAt: testNow, Reason: "moved out of town"}))
		assert.Equal(t, BookingStatusCancelled, b.Status)
		assert.Equal(t, RefundStatusNotApplicable, b.Cancellation.RefundStatus)
		assert.False(t, b.CanCancel())
		assert.ErrorIs(t, b.Cancel(Cancellation{}), ErrCannotCancel)
		assert.ErrorIs(t, b.CompleteRefund(testNow), ErrNoPendingRefund)
	})

	t.Run("refund capped at amount paid", func(t *testing.T) {
		b := newTestBooking(1000)
		require.NoError(t, b.AddPayment(payment(400)))

		err := b.Cancel(Cancellation{RefundAmount: decimal.NewFromInt(401)})
		assert.ErrorIs(t, err, ErrRefundExceedsPaid)
		assert.Nil(t, b.Cancellation)
		assert.Equal(t, BookingStatusPendingPayment, b.Status)

		assert.ErrorIs(t, b.Cancel(Cancellation{RefundAmount: decimal.NewFromInt(-1)}), ErrInvalidAmount)

		require.NoError(t, b.Cancel(Cancellation{RefundAmount: decimal.NewFromInt(400), Reason: "unwell"}))
		assert.Equal(t, RefundStatusPending, b.Cancellation.RefundStatus)

		require.NoError(t, b.CompleteRefund(testNow))
		assert.Equal(t, RefundStatusCompleted, b.Cancellation.RefundStatus)
		assert.Equal(t, PaymentStatusRefunded, b.PaymentStatus)
		require.NotNil(t, b.Cancellation.RefundedAt)
		assert.ErrorIs(t, b.CompleteRefund(testNow), ErrNoPendingRefund)
	})

	t.Run("checked out booking", func(t *testing.T) {
		b := &Booking{Status: BookingStatusCheckedOut}
		assert.False(t, b.CanCancel())
		assert.ErrorIs(t, b.Cancel(Cancellation{}), ErrCannotCancel)
		assert.Equal(t, BookingStatusCheckedOut, b.Status)
	})
}

func TestApprove(t *testing.T) {
	b := newTestBooking(1000)
	require.NoError(t, b.Approve())
	assert.Equal(t, BookingStatusConfirmed, b.Status)
	assert.ErrorIs(t, b.Approve(), ErrInvalidTransition)
}

func TestAddSpecialRequest(t *testing.T) {
	b := &Booking{Base: Base{ID: uuid.New()}, Status: BookingStatusCheckedOut}
	by := uuid.New()

	req, err := b.AddSpecialRequest(SpecialRequestMaintenance, "leaking tap", by, testNow)
	require.NoError(t, err)
	assert.Equal(t, SpecialRequestOpen, req.Status)
	assert.Equal(t, b.ID, req.BookingID)
	assert.Len(t, b.SpecialRequests, 1)

	_, err = b.AddSpecialRequest(SpecialRequestOther, "", by, testNow)
	assert.ErrorIs(t, err, ErrEmptyRequest)
	assert.Len(t, b.SpecialRequests, 1)
}

func TestAcceptTerms(t *testing.T) {
	b := newTestBooking(1000)

	assert.ErrorIs(t, b.AcceptTerms("", testNow), ErrTermsVersionRequired)
	assert.False(t, b.Terms.Accepted)

	require.NoError(t, b.AcceptTerms("2026-01", testNow))
	assert.True(t, b.Terms.Accepted)
	assert.Equal(t, "2026-01", b.Terms.Version)
}

func TestUpdateDetails(t *testing.T) {
	b := newTestBooking(1000)
	room := uuid.New()
	bed := uuid.New()
	notes := "near the stairs"

	require.NoError(t, b.UpdateDetails(BookingDetails{RoomID: &room, BedID: &bed, Notes: &notes}))
	assert.Equal(t, room, b.RoomID)
	assert.Equal(t, bed, *b.BedID)
	assert.Equal(t, notes, *b.Notes)

	badEnd := b.StartDate.Add(-time.Hour)
	assert.ErrorIs(t, b.UpdateDetails(BookingDetails{EndDate: &badEnd}), ErrInvalidDates)

	b.Status = BookingStatusCancelled
	assert.ErrorIs(t, b.UpdateDetails(BookingDetails{Notes: &notes}), ErrBookingClosed)
}

func TestNewBooking_NothingToPay(t *testing.T) {
	b := newTestBooking(0)

	assert.Equal(t, BookingStatusHold, b.Status)
	assert.Equal(t, PaymentStatusCompleted, b.PaymentStatus)
	assert.False(t, b.CanAddPayment())
	assert.False(t, b.IsOverdue(testNow.AddDate(1, 0, 0)))

	require.NoError(t, b.Approve())
	assert.True(t, b.CanCheckIn())
	require.NoError(t, b.CheckInGuest(CheckInRecord{At: testNow, RoomCondition: RoomConditionGood}))
	assert.Equal(t, BookingStatusCheckedIn, b.Status)
}

func TestMoneyPrecision(t *testing.T) {
	assert.True(t, ValidMoney(decimal.RequireFromString("33.30")))
	assert.True(t, ValidMoney(decimal.RequireFromString("33.300")))
	assert.True(t, ValidMoney(decimal.NewFromInt(12)))
	assert.False(t, ValidMoney(decimal.RequireFromString("33.335")))
	assert.False(t, ValidMoney(decimal.RequireFromString("0.001")))

	t.Run("payment", func(t *testing.T) {
		b := newTestBooking(100)
		rec := payment(0)

		rec.Amount = decimal.RequireFromString("33.335")
		assert.ErrorIs(t, b.AddPayment(rec), ErrAmountPrecision)
		rec.Amount = decimal.RequireFromString("0.001")
		assert.ErrorIs(t, b.AddPayment(rec), ErrAmountPrecision)
		assert.True(t, IsLifecycleError(ErrAmountPrecision))

		assert.Empty(t, b.PaymentHistory)
		assert.True(t, b.AmountPaid.IsZero())
		assertBalanced(t, b)
	})

	t.Run("refund", func(t *testing.T) {
		b := newTestBooking(100)
		require.NoError(t, b.AddPayment(payment(50)))

		err := b.Cancel(Cancellation{Reason: "moving", RefundAmount: decimal.RequireFromString("10.005")})

		assert.ErrorIs(t, err, ErrAmountPrecision)
		assert.Nil(t, b.Cancellation)
		assert.Equal(t, BookingStatusPendingPayment, b.Status)
	})

	t.Run("damage cost", func(t *testing.T) {
		b := &Booking{Status: BookingStatusCheckedIn}

		err := b.CheckOutGuest(CheckOutRecord{At: testNow, Damages: []Damage{
			{Description: "broken lamp", Cost: decimal.RequireFromString("12.499")},
		}})

		assert.ErrorIs(t, err, ErrAmountPrecision)
		assert.Equal(t, BookingStatusCheckedIn, b.Status)
		assert.Nil(t, b.CheckOut)
	})
}

func TestAddPayment_FailedRecordNotCapped(t *testing.T) {
	b := newTestBooking(1000)

	failed := payment(1500)
	failed.Status = PaymentRecordFailed
	require.NoError(t, b.AddPayment(failed))
	assert.Len(t, b.PaymentHistory, 1)
	assert.True(t, b.AmountDue.Equal(decimal.NewFromInt(1000)))

	require.NoError(t, b.AddPayment(payment(1000)))
	assert.Equal(t, PaymentStatusCompleted, b.PaymentStatus)

	failed = payment(200)
	failed.Status = PaymentRecordFailed
	require.NoError(t, b.AddPayment(failed))
	assert.Equal(t, PaymentStatusCompleted, b.PaymentStatus)
	assert.Len(t, b.PaymentHistory, 3)
	assertBalanced(t, b)

	completed := payment(1)
	assert.ErrorIs(t, b.AddPayment(completed), ErrNothingDue)
}
