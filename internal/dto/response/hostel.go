package response

import (
	"time"

	"hostel-management/internal/data/entity"

	"github.com/shopspring/decimal"
)

type HostelResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Address   string              `json:"address"`
	City      string              `json:"city"`
	Gender    entity.HostelGender `json:"gender"`
	IsActive  bool                `json:"isActive"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type HostelDetailResponse struct {
	HostelResponse
	Rooms []RoomResponse `json:"rooms"`
}

type RoomResponse struct {
	ID          string          `json:"id"`
	HostelID    string          `json:"hostelId"`
	RoomNumber  string          `json:"roomNumber"`
	Floor       int             `json:"floor"`
	Capacity    int             `json:"capacity"`
	MonthlyRate decimal.Decimal `json:"monthlyRate"`
	Beds        []BedResponse   `json:"beds,omitempty"`
}

type BedResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	IsAvailable bool   `json:"isAvailable"`
}

func HostelToResponse(hostel *entity.Hostel) HostelResponse {
	return HostelResponse{
		ID:        hostel.ID.String(),
		Name:      hostel.Name,
		Address:   hostel.Address,
		City:      hostel.City,
		Gender:    hostel.Gender,
		IsActive:  hostel.IsActive,
		CreatedAt: hostel.CreatedAt,
		UpdatedAt: hostel.UpdatedAt,
	}
}

func RoomToResponse(room *entity.Room, beds []*entity.Bed) RoomResponse {
	resp := RoomResponse{
		ID:          room.ID.String(),
		HostelID:    room.HostelID.String(),
		RoomNumber:  room.RoomNumber,
		Floor:       room.Floor,
		Capacity:    room.Capacity,
		MonthlyRate: room.MonthlyRate,
	}
	for _, bed := range beds {
		resp.Beds = append(resp.Beds, BedToResponse(bed))
	}
	return resp
}

func BedToResponse(bed *entity.Bed) BedResponse {
	return BedResponse{
		ID:          bed.ID.String(),
		Label:       bed.Label,
		IsAvailable: bed.IsAvailable,
	}
}
