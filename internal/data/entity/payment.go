package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
)

// MoneyScale is the number of decimal places stored for every amount.
const MoneyScale = 2

// ValidMoney reports whether d is stored without rounding.
func ValidMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

// PaymentRecordStatus is the recorded outcome of one payment attempt.
type PaymentRecordStatus string

const (
	PaymentRecordCompleted PaymentRecordStatus = "COMPLETED"
	PaymentRecordFailed    PaymentRecordStatus = "FAILED"
)

// PaymentRecord is one entry of a booking's payment history.
type PaymentRecord struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	BookingID     uuid.UUID           `db:"booking_id" json:"bookingId"`
	Amount        decimal.Decimal     `db:"amount" json:"amount"`
	Method        PaymentMethod       `db:"method" json:"method"`
	Status        PaymentRecordStatus `db:"status" json:"status"`
	TransactionID *string             `db:"transaction_id" json:"transactionId,omitempty"`
	RecordedBy    uuid.UUID           `db:"recorded_by" json:"recordedBy"`
	PaidAt        time.Time           `db:"paid_at" json:"paidAt"`
}
