package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Room struct {
	Base
	HostelID    uuid.UUID       `db:"hostel_id" json:"hostelId"`
	RoomNumber  string          `db:"room_number" json:"roomNumber"`
	Floor       int             `db:"floor" json:"floor"`
	Capacity    int             `db:"capacity" json:"capacity"`
	MonthlyRate decimal.Decimal `db:"monthly_rate" json:"monthlyRate"`
}
