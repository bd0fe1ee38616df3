package testutil

import (
	"time"

	"hostel-management/internal/access"
	"hostel-management/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Now is the fixed instant tests run at.
var Now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func Clock() time.Time { return Now }

func NewUser(role access.Role) *entity.User {
	return &entity.User{
		Base:     entity.NewBase(Now),
		FullName: "Test " + string(role),
		Email:    uuid.NewString()[:8] + "@example.com",
		Role:     role,
		IsActive: true,
	}
}

func NewHostel() *entity.Hostel {
	return &entity.Hostel{
		Base:     entity.NewBase(Now),
		Name:     "Riverside Hall",
		Address:  "12 River Rd",
		City:     "Nairobi",
		Gender:   entity.HostelGenderMixed,
		IsActive: true,
	}
}

func NewRoom(hostelID uuid.UUID, rate string) *entity.Room {
	return &entity.Room{
		Base:        entity.NewBase(Now),
		HostelID:    hostelID,
		RoomNumber:  "101",
		Floor:       1,
		Capacity:    2,
		MonthlyRate: decimal.RequireFromString(rate),
	}
}

// NewBooking returns a HOLD booking for studentID with the given total.
func NewBooking(studentID uuid.UUID, total string) *entity.Booking {
	return entity.NewBooking(entity.NewBookingParams{
		BookingCode: "HB-TEST0001",
		StudentID:   studentID,
		HostelID:    uuid.New(),
		RoomID:      uuid.New(),
		Currency:    "KES",
		TotalAmount: decimal.RequireFromString(total),
		StartDate:   Now.AddDate(0, 0, 7),
		EndDate:     Now.AddDate(0, 4, 7),
		DueDate:     Now.AddDate(0, 0, 7),
	}, Now)
}
