package repository

import (
	"errors"

	"hostel-management/pkg/database"

	"go.uber.org/zap"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrActiveBookingExists = errors.New("student already has an active booking")
	ErrBedUnavailable      = errors.New("bed is already held by another booking")
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Hostel  HostelRepository
	Room    RoomRepository
	Bed     BedRepository
	Booking BookingRepository
	Payment PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Hostel:  NewHostelRepository(db, log),
		Room:    NewRoomRepository(db, log),
		Bed:     NewBedRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Payment: NewPaymentRepository(db, log),
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
