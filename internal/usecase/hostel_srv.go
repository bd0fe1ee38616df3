package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hostel-management/internal/data/entity"
	"hostel-management/internal/data/repository"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/dto/response"
	"hostel-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HostelService interface {
	GetHostels(ctx context.Context, req request.PaginatedRequest, filter repository.HostelFilter) (*response.PaginatedResponse[response.HostelResponse], error)
	GetHostelByID(ctx context.Context, hostelID string) (*response.HostelDetailResponse, error)
	CreateHostel(ctx context.Context, req *request.HostelRequest) (*response.HostelResponse, error)
	UpdateHostel(ctx context.Context, hostelID string, req *request.HostelUpdateRequest) (*response.HostelResponse, error)
	DeleteHostel(ctx context.Context, hostelID string) error

	GetRooms(ctx context.Context, hostelID string) ([]response.RoomResponse, error)
	CreateRoom(ctx context.Context, hostelID string, req *request.RoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error)
}

type hostelService struct {
	repo *repository.Repository
	now  Clock
	log  *zap.Logger
}

func NewHostelService(repo *repository.Repository, now Clock, log *zap.Logger) HostelService {
	return &hostelService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "hostel")),
	}
}

func (s *hostelService) GetHostels(ctx context.Context, req request.PaginatedRequest, filter repository.HostelFilter) (*response.PaginatedResponse[response.HostelResponse], error) {
	hostels, err := s.repo.Hostel.FindAll(ctx, req.Limit, req.Offset(), filter)
	if err != nil {
		return nil, fmt.Errorf("get hostels: %w", err)
	}

	total, err := s.repo.Hostel.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count hostels: %w", err)
	}

	items := make([]response.HostelResponse, len(hostels))
	for i, hostel := range hostels {
		items[i] = response.HostelToResponse(hostel)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit, total), nil
}

func (s *hostelService) GetHostelByID(ctx context.Context, hostelID string) (*response.HostelDetailResponse, error) {
	hostel, err := s.findHostel(ctx, hostelID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomsWithBeds(ctx, hostel.ID)
	if err != nil {
		return nil, err
	}

	return &response.HostelDetailResponse{
		HostelResponse: response.HostelToResponse(hostel),
		Rooms:          rooms,
	}, nil
}

func (s *hostelService) CreateHostel(ctx context.Context, req *request.HostelRequest) (*response.HostelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hostel validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	hostel := &entity.Hostel{
		Base:     entity.NewBase(s.now()),
		Name:     strings.TrimSpace(req.Name),
		Address:  strings.TrimSpace(req.Address),
		City:     strings.TrimSpace(req.City),
		Gender:   entity.HostelGender(req.Gender),
		IsActive: true,
	}

	if err := s.repo.Hostel.Create(ctx, hostel); err != nil {
		return nil, fmt.Errorf("create hostel: %w", err)
	}

	s.log.Info("Hostel created", zap.String("hostel_id", hostel.ID.String()), zap.String("name", hostel.Name))

	resp := response.HostelToResponse(hostel)
	return &resp, nil
}

func (s *hostelService) UpdateHostel(ctx context.Context, hostelID string, req *request.HostelUpdateRequest) (*response.HostelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	hostel, err := s.findHostel(ctx, hostelID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		hostel.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		hostel.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		hostel.City = strings.TrimSpace(*req.City)
	}
	if req.Gender != nil {
		hostel.Gender = entity.HostelGender(*req.Gender)
	}
	if req.IsActive != nil {
		hostel.IsActive = *req.IsActive
	}
	hostel.UpdatedAt = s.now()

	if err := s.repo.Hostel.Update(ctx, hostel); err != nil {
		return nil, notFoundOr(err, "update hostel")
	}

	resp := response.HostelToResponse(hostel)
	return &resp, nil
}

func (s *hostelService) DeleteHostel(ctx context.Context, hostelID string) error {
	id, err := uuid.Parse(hostelID)
	if err != nil {
		return invalidID("hostel", hostelID)
	}

	active, err := s.repo.Booking.CountAll(ctx, repository.BookingFilter{HostelID: &id})
	if err != nil {
		return fmt.Errorf("count hostel bookings: %w", err)
	}
	if active > 0 {
		return fmt.Errorf("%w: hostel has bookings, deactivate it instead", ErrConflict)
	}

	if err := s.repo.Hostel.Delete(ctx, id); err != nil {
		return notFoundOr(err, "delete hostel")
	}
	return nil
}

func (s *hostelService) GetRooms(ctx context.Context, hostelID string) ([]response.RoomResponse, error) {
	hostel, err := s.findHostel(ctx, hostelID)
	if err != nil {
		return nil, err
	}
	return s.roomsWithBeds(ctx, hostel.ID)
}

// CreateRoom adds a room and one bed per unit of capacity, labelled A, B, C...
func (s *hostelService) CreateRoom(ctx context.Context, hostelID string, req *request.RoomRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if err := checkMoney("monthlyRate", req.MonthlyRate); err != nil {
		return nil, err
	}

	hostel, err := s.findHostel(ctx, hostelID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	room := &entity.Room{
		Base:        entity.NewBase(now),
		HostelID:    hostel.ID,
		RoomNumber:  strings.TrimSpace(req.RoomNumber),
		Floor:       req.Floor,
		Capacity:    req.Capacity,
		MonthlyRate: req.MonthlyRate,
	}

	beds := make([]*entity.Bed, req.Capacity)
	for i := range beds {
		beds[i] = &entity.Bed{
			Base:        entity.NewBase(now),
			RoomID:      room.ID,
			Label:       string(rune('A' + i)),
			IsAvailable: true,
		}
	}

	if err := s.repo.Room.Create(ctx, room, beds); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("Room created",
		zap.String("hostel_id", hostel.ID.String()),
		zap.String("room_number", room.RoomNumber),
		zap.Int("beds", len(beds)),
	)

	resp := response.RoomToResponse(room, beds)
	return &resp, nil
}

func (s *hostelService) UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if req.MonthlyRate != nil {
		if err := checkMoney("monthlyRate", *req.MonthlyRate); err != nil {
			return nil, err
		}
	}

	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, invalidID("room", roomID)
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomID)
	}

	if req.RoomNumber != nil {
		room.RoomNumber = strings.TrimSpace(*req.RoomNumber)
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.MonthlyRate != nil {
		room.MonthlyRate = *req.MonthlyRate
	}
	room.UpdatedAt = s.now()

	if err := s.repo.Room.Update(ctx, room); err != nil {
		return nil, notFoundOr(err, "update room")
	}

	beds, err := s.repo.Bed.FindByRoomID(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("find beds: %w", err)
	}

	resp := response.RoomToResponse(room, beds)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *hostelService) findHostel(ctx context.Context, hostelID string) (*entity.Hostel, error) {
	id, err := uuid.Parse(hostelID)
	if err != nil {
		return nil, invalidID("hostel", hostelID)
	}

	hostel, err := s.repo.Hostel.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hostel %s: %w", hostelID, err)
	}
	if hostel == nil {
		return nil, fmt.Errorf("%w: hostel %s", ErrNotFound, hostelID)
	}
	return hostel, nil
}

func (s *hostelService) roomsWithBeds(ctx context.Context, hostelID uuid.UUID) ([]response.RoomResponse, error) {
	rooms, err := s.repo.Room.FindByHostelID(ctx, hostelID)
	if err != nil {
		return nil, fmt.Errorf("get rooms: %w", err)
	}

	out := make([]response.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		beds, err := s.repo.Bed.FindByRoomID(ctx, room.ID)
		if err != nil {
			return nil, fmt.Errorf("get beds of room %s: %w", room.ID, err)
		}
		out = append(out, response.RoomToResponse(room, beds))
	}
	return out, nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
