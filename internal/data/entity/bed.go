package entity

import "github.com/google/uuid"

type Bed struct {
	Base
	RoomID      uuid.UUID `db:"room_id" json:"roomId"`
	Label       string    `db:"label" json:"label"` // A, B, C...
	IsAvailable bool      `db:"is_available" json:"isAvailable"`
}
