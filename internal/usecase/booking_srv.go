package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hostel-management/internal/access"
	"hostel-management/internal/data/entity"
	"hostel-management/internal/data/repository"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/dto/response"
	"hostel-management/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookings(ctx context.Context, actor Actor, req request.PaginatedRequest, filter repository.BookingFilter) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, actor Actor, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)

	ApproveBooking(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, actor Actor, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)
	CheckIn(ctx context.Context, actor Actor, bookingID string, req *request.CheckInRequest) (*response.BookingResponse, error)
	CheckOut(ctx context.Context, actor Actor, bookingID string, req *request.CheckOutRequest) (*response.BookingResponse, error)
	AddPayment(ctx context.Context, actor Actor, bookingID string, req *request.AddPaymentRequest) (*response.BookingResponse, error)
	CompleteRefund(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error)
	AddSpecialRequest(ctx context.Context, actor Actor, bookingID string, req *request.SpecialRequestRequest) (*response.BookingResponse, error)
	AcceptTerms(ctx context.Context, actor Actor, bookingID string, req *request.AcceptTermsRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	engine *access.Engine
	config utils.BookingConfig
	now    Clock
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, engine *access.Engine, config utils.BookingConfig, now Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		engine: engine,
		config: config,
		now:    now,
		log:    log.With(zap.String("service", "booking")),
	}
}

// gates per operation; the same checks the router applies, repeated here so
// the service is safe to call from anywhere
var (
	gateRead           = access.RequireAny(access.PermBookingsRead)
	gateCreate         = access.RequireAny(access.PermBookingsCreate)
	gateUpdate         = access.RequireAny(access.PermBookingsUpdate)
	gateApprove        = access.RequireAny(access.PermBookingsApprove)
	gateCancel         = access.RequireAny(access.PermBookingsCancel)
	gateCheckIn        = access.RequireAny(access.PermBookingsCheckIn)
	gateCheckOut       = access.RequireAny(access.PermBookingsCheckOut)
	gatePay            = access.RequireAny(access.PermPaymentsCreate)
	gateRefund         = access.RequireAny(access.PermPaymentsRefund)
	gateSpecialRequest = access.RequireAny(access.PermBookingsCreate, access.PermBookingsUpdate)
)

func (s *bookingService) CreateBooking(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := s.require(actor, gateCreate); err != nil {
		return nil, err
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	now := s.now()
	if req.StartDate.Before(startOfDay(now)) {
		return nil, fmt.Errorf("%w: start date is in the past", ErrValidation)
	}

	studentID := actor.UserID
	if req.StudentID != nil {
		id, err := uuid.Parse(*req.StudentID)
		if err != nil {
			return nil, invalidID("student", *req.StudentID)
		}
		if id != actor.UserID && !s.manages(actor) {
			return nil, fmt.Errorf("%w: cannot book for another student", ErrForbidden)
		}
		studentID = id
	}

	student, err := s.repo.User.FindByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	if student == nil || student.EffectiveRole() != access.RoleStudent {
		return nil, fmt.Errorf("%w: bookings can only be made for active students", ErrValidation)
	}

	hostel, room, bedID, err := s.resolvePlacement(ctx, req.HostelID, req.RoomID, req.BedID)
	if err != nil {
		return nil, err
	}

	total := room.MonthlyRate.Mul(decimal.NewFromInt(int64(billableMonths(req.StartDate, req.EndDate))))

	booking := entity.NewBooking(entity.NewBookingParams{
		BookingCode: utils.GenerateBookingCode(now),
		StudentID:   student.ID,
		HostelID:    hostel.ID,
		RoomID:      room.ID,
		BedID:       bedID,
		Currency:    s.config.Currency,
		TotalAmount: total,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DueDate:     now.AddDate(0, 0, s.config.PaymentDueDays),
		Notes:       req.Notes,
	}, now)

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, s.mapError(err, "create booking")
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_code", booking.BookingCode),
		zap.String("student_id", booking.StudentID.String()),
		zap.String("actor_id", actor.UserID.String()),
		zap.String("total", booking.TotalAmount.String()),
	)

	resp := response.BookingToResponse(booking, now)
	return &resp, nil
}

func (s *bookingService) GetBookings(ctx context.Context, actor Actor, req request.PaginatedRequest, filter repository.BookingFilter) (*response.PaginatedResponse[response.BookingResponse], error) {
	if err := s.require(actor, gateRead); err != nil {
		return nil, err
	}

	// callers without bookings:manage only ever see their own bookings
	if !s.manages(actor) {
		own := actor.UserID
		filter.StudentID = &own
	}

	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit, req.Offset(), filter)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings, s.now()), req.Page, req.Limit, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error) {
	if err := s.require(actor, gateRead); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, invalidID("booking", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}
	if err := s.owns(actor, booking); err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking, s.now())
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, actor Actor, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	details := entity.BookingDetails{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		DueDate:   req.DueDate,
		Notes:     req.Notes,
	}

	var room *entity.Room
	if req.BedID != nil {
		bedID, err := uuid.Parse(*req.BedID)
		if err != nil {
			return nil, invalidID("bed", *req.BedID)
		}
		bed, err := s.repo.Bed.FindByID(ctx, bedID)
		if err != nil {
			return nil, fmt.Errorf("find bed: %w", err)
		}
		if bed == nil {
			return nil, fmt.Errorf("%w: bed %s", ErrNotFound, *req.BedID)
		}
		details.BedID = &bed.ID
		details.RoomID = &bed.RoomID
	}

	if req.RoomID != nil {
		roomID, err := uuid.Parse(*req.RoomID)
		if err != nil {
			return nil, invalidID("room", *req.RoomID)
		}
		if details.RoomID != nil && *details.RoomID != roomID {
			return nil, fmt.Errorf("%w: bed is not in the selected room", ErrValidation)
		}
		details.RoomID = &roomID
	}

	if details.RoomID != nil {
		var err error
		room, err = s.repo.Room.FindByID(ctx, *details.RoomID)
		if err != nil {
			return nil, fmt.Errorf("find room: %w", err)
		}
		if room == nil {
			return nil, fmt.Errorf("%w: room %s", ErrNotFound, details.RoomID)
		}
	}

	return s.mutate(ctx, actor, bookingID, gateUpdate, "update", func(b *entity.Booking, _ time.Time) error {
		if room != nil && room.HostelID != b.HostelID {
			return fmt.Errorf("%w: room belongs to another hostel", ErrValidation)
		}
		return b.UpdateDetails(details)
	})
}

func (s *bookingService) ApproveBooking(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error) {
	return s.mutate(ctx, actor, bookingID, gateApprove, "approve", func(b *entity.Booking, _ time.Time) error {
		return b.Approve()
	})
}

func (s *bookingService) CancelBooking(ctx context.Context, actor Actor, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := checkMoney("refundAmount", req.RefundAmount); err != nil {
		return nil, err
	}
	if req.RefundAmount.IsPositive() && !s.engine.HasPermission(actor.Role, access.PermPaymentsRefund) {
		return nil, fmt.Errorf("%w: granting a refund requires %s", ErrForbidden, access.PermPaymentsRefund)
	}

	return s.mutate(ctx, actor, bookingID, gateCancel, "cancel", func(b *entity.Booking, now time.Time) error {
		return b.Cancel(entity.Cancellation{
			CancelledAt:  now,
			CancelledBy:  actor.UserID,
			Reason:       strings.TrimSpace(req.Reason),
			RefundAmount: req.RefundAmount,
		})
	})
}

func (s *bookingService) CheckIn(ctx context.Context, actor Actor, bookingID string, req *request.CheckInRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	return s.mutate(ctx, actor, bookingID, gateCheckIn, "check in", func(b *entity.Booking, now time.Time) error {
		return b.CheckInGuest(entity.CheckInRecord{
			At:            now,
			By:            actor.UserID,
			RoomCondition: entity.RoomCondition(req.RoomCondition),
			Notes:         req.Notes,
		})
	})
}

func (s *bookingService) CheckOut(ctx context.Context, actor Actor, bookingID string, req *request.CheckOutRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	damages := make([]entity.Damage, 0, len(req.Damages))
	for i, d := range req.Damages {
		if err := checkMoney(fmt.Sprintf("damages[%d].cost", i), d.Cost); err != nil {
			return nil, err
		}
		damages = append(damages, entity.Damage{Description: d.Description, Cost: d.Cost})
	}

	return s.mutate(ctx, actor, bookingID, gateCheckOut, "check out", func(b *entity.Booking, now time.Time) error {
		return b.CheckOutGuest(entity.CheckOutRecord{
			At:            now,
			By:            actor.UserID,
			RoomCondition: entity.RoomCondition(req.RoomCondition),
			Damages:       damages,
			Notes:         req.Notes,
		})
	})
}

func (s *bookingService) AddPayment(ctx context.Context, actor Actor, bookingID string, req *request.AddPaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if err := checkMoney("amount", req.Amount); err != nil {
		return nil, err
	}

	status := entity.PaymentRecordCompleted
	if req.Status != "" {
		status = entity.PaymentRecordStatus(req.Status)
	}
	// a settled payment recorded by the student needs the gateway's reference
	if status == entity.PaymentRecordCompleted && !s.manages(actor) &&
		(req.TransactionID == nil || strings.TrimSpace(*req.TransactionID) == "") {
		return nil, fmt.Errorf("%w: completed payments need a transaction reference", ErrForbidden)
	}

	return s.mutate(ctx, actor, bookingID, gatePay, "add payment", func(b *entity.Booking, now time.Time) error {
		paidAt := now
		if req.PaidAt != nil {
			paidAt = *req.PaidAt
		}
		return b.AddPayment(entity.PaymentRecord{
			Amount:        req.Amount,
			Method:        entity.PaymentMethod(req.Method),
			Status:        status,
			TransactionID: req.TransactionID,
			RecordedBy:    actor.UserID,
			PaidAt:        paidAt,
		})
	})
}

func (s *bookingService) CompleteRefund(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error) {
	return s.mutate(ctx, actor, bookingID, gateRefund, "complete refund", func(b *entity.Booking, now time.Time) error {
		return b.CompleteRefund(now)
	})
}

func (s *bookingService) AddSpecialRequest(ctx context.Context, actor Actor, bookingID string, req *request.SpecialRequestRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	return s.mutate(ctx, actor, bookingID, gateSpecialRequest, "add special request", func(b *entity.Booking, now time.Time) error {
		_, err := b.AddSpecialRequest(entity.SpecialRequestType(req.Type), strings.TrimSpace(req.Description), actor.UserID, now)
		return err
	})
}

func (s *bookingService) AcceptTerms(ctx context.Context, actor Actor, bookingID string, req *request.AcceptTermsRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	version := req.Version
	if version == "" {
		version = s.config.TermsVersion
	}

	return s.mutate(ctx, actor, bookingID, gateCreate, "accept terms", func(b *entity.Booking, now time.Time) error {
		// only the student can accept on their own behalf
		if b.StudentID != actor.UserID {
			return fmt.Errorf("%w: only the booking's student can accept the terms", ErrForbidden)
		}
		return b.AcceptTerms(version, now)
	})
}

// ==================== HELPER METHODS ====================

// mutate runs fn against the locked booking and persists the result. fn sees
// the booking only after the gate and ownership checks pass.
func (s *bookingService) mutate(ctx context.Context, actor Actor, bookingID string, gate access.Gate, op string, fn func(b *entity.Booking, now time.Time) error) (*response.BookingResponse, error) {
	if err := s.require(actor, gate); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, invalidID("booking", bookingID)
	}

	now := s.now()
	booking, err := s.repo.Booking.Mutate(ctx, id, func(b *entity.Booking) error {
		if err := s.owns(actor, b); err != nil {
			return err
		}
		if err := fn(b, now); err != nil {
			return err
		}
		b.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.log.Warn("Booking "+op+" rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("actor_id", actor.UserID.String()),
		)
		return nil, s.mapError(err, op)
	}

	s.log.Info("Booking "+op,
		zap.String("booking_id", booking.ID.String()),
		zap.String("actor_id", actor.UserID.String()),
		zap.String("status", string(booking.Status)),
		zap.String("payment_status", string(booking.PaymentStatus)),
	)

	resp := response.BookingToResponse(booking, now)
	return &resp, nil
}

func (s *bookingService) require(actor Actor, gate access.Gate) error {
	if !gate.Allows(s.engine, actor.Role) {
		return fmt.Errorf("%w: insufficient permissions", ErrForbidden)
	}
	return nil
}

func (s *bookingService) manages(actor Actor) bool {
	return s.engine.HasPermission(actor.Role, access.PermBookingsManage)
}

func (s *bookingService) owns(actor Actor, b *entity.Booking) error {
	if b.StudentID == actor.UserID || s.manages(actor) {
		return nil
	}
	return fmt.Errorf("%w: booking belongs to another student", ErrForbidden)
}

func (s *bookingService) mapError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: booking", ErrNotFound)
	case errors.Is(err, repository.ErrActiveBookingExists), errors.Is(err, repository.ErrBedUnavailable):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case entity.IsLifecycleError(err),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrNotFound):
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *bookingService) resolvePlacement(ctx context.Context, hostelRaw, roomRaw string, bedRaw *string) (*entity.Hostel, *entity.Room, *uuid.UUID, error) {
	hostelID, err := uuid.Parse(hostelRaw)
	if err != nil {
		return nil, nil, nil, invalidID("hostel", hostelRaw)
	}
	roomID, err := uuid.Parse(roomRaw)
	if err != nil {
		return nil, nil, nil, invalidID("room", roomRaw)
	}

	hostel, err := s.repo.Hostel.FindByID(ctx, hostelID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("find hostel: %w", err)
	}
	if hostel == nil || !hostel.IsActive {
		return nil, nil, nil, fmt.Errorf("%w: hostel %s", ErrNotFound, hostelRaw)
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil || room.HostelID != hostel.ID {
		return nil, nil, nil, fmt.Errorf("%w: room %s in hostel %s", ErrNotFound, roomRaw, hostelRaw)
	}

	if bedRaw == nil {
		return hostel, room, nil, nil
	}

	bedID, err := uuid.Parse(*bedRaw)
	if err != nil {
		return nil, nil, nil, invalidID("bed", *bedRaw)
	}
	bed, err := s.repo.Bed.FindByID(ctx, bedID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("find bed: %w", err)
	}
	if bed == nil || bed.RoomID != room.ID {
		return nil, nil, nil, fmt.Errorf("%w: bed %s in room %s", ErrNotFound, *bedRaw, roomRaw)
	}
	return hostel, room, &bed.ID, nil
}

// billableMonths counts started calendar months between start and end, at least one.
func billableMonths(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
	anchor := start.AddDate(0, months, 0)
	if end.After(anchor) {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
