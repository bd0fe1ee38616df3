package request

import "github.com/shopspring/decimal"

type HostelRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=150"`
	Address string `json:"address" validate:"required,min=1,max=300"`
	City    string `json:"city" validate:"required,min=1,max=100"`
	Gender  string `json:"gender" validate:"required,oneof=MALE FEMALE MIXED"`
}

type HostelUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Address  *string `json:"address,omitempty" validate:"omitempty,min=1,max=300"`
	City     *string `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Gender   *string `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE MIXED"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type RoomRequest struct {
	RoomNumber  string          `json:"roomNumber" validate:"required,min=1,max=20"`
	Floor       int             `json:"floor" validate:"min=0,max=200"`
	Capacity    int             `json:"capacity" validate:"required,min=1,max=26"`
	MonthlyRate decimal.Decimal `json:"monthlyRate" validate:"gt=0"`
}

type RoomUpdateRequest struct {
	RoomNumber  *string          `json:"roomNumber,omitempty" validate:"omitempty,min=1,max=20"`
	Floor       *int             `json:"floor,omitempty" validate:"omitempty,min=0,max=200"`
	MonthlyRate *decimal.Decimal `json:"monthlyRate,omitempty" validate:"omitempty,gt=0"`
}
