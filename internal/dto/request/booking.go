package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	// StudentID lets staff book on behalf of a student; students omit it.
	StudentID *string   `json:"studentId,omitempty" validate:"omitempty,uuid"`
	HostelID  string    `json:"hostelId" validate:"required,uuid"`
	RoomID    string    `json:"roomId" validate:"required,uuid"`
	BedID     *string   `json:"bedId,omitempty" validate:"omitempty,uuid"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	Notes     *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateBookingRequest struct {
	RoomID    *string    `json:"roomId,omitempty" validate:"omitempty,uuid"`
	BedID     *string    `json:"bedId,omitempty" validate:"omitempty,uuid"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Notes     *string    `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type AddPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	Method        string          `json:"method" validate:"required,oneof=CASH CARD BANK_TRANSFER MOBILE_MONEY"`
	Status        string          `json:"status,omitempty" validate:"omitempty,oneof=COMPLETED FAILED"`
	TransactionID *string         `json:"transactionId,omitempty" validate:"omitempty,max=100"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
}

type CancelBookingRequest struct {
	Reason       string          `json:"reason" validate:"required,min=3,max=500"`
	RefundAmount decimal.Decimal `json:"refundAmount" validate:"gte=0"`
}

type CheckInRequest struct {
	RoomCondition string `json:"roomCondition" validate:"required,oneof=EXCELLENT GOOD FAIR POOR DAMAGED"`
	Notes         string `json:"notes,omitempty" validate:"max=500"`
}

type DamageRequest struct {
	Description string          `json:"description" validate:"required,max=300"`
	Cost        decimal.Decimal `json:"cost" validate:"gte=0"`
}

type CheckOutRequest struct {
	RoomCondition string          `json:"roomCondition" validate:"required,oneof=EXCELLENT GOOD FAIR POOR DAMAGED"`
	Damages       []DamageRequest `json:"damages,omitempty" validate:"omitempty,dive"`
	Notes         string          `json:"notes,omitempty" validate:"max=500"`
}

type SpecialRequestRequest struct {
	Type        string `json:"type" validate:"required,oneof=ROOM_CHANGE MAINTENANCE EXTRA_BEDDING DIETARY OTHER"`
	Description string `json:"description" validate:"required,min=3,max=1000"`
}

// AcceptTermsRequest defaults Version to the current terms version when empty.
type AcceptTermsRequest struct {
	Version string `json:"version,omitempty" validate:"max=20"`
}
