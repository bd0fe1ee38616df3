package usecase

import (
	"context"
	"fmt"

	"hostel-management/internal/access"
	"hostel-management/internal/data/entity"
	"hostel-management/internal/data/repository"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/dto/response"

	"go.uber.org/zap"
)

type PaymentService interface {
	GetPayments(ctx context.Context, actor Actor, req request.PaginatedRequest, status *entity.PaymentRecordStatus) (*response.PaginatedResponse[entity.PaymentRecord], error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	engine      *access.Engine
	log         *zap.Logger
}

func NewPaymentService(paymentRepo repository.PaymentRepository, engine *access.Engine, log *zap.Logger) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		engine:      engine,
		log:         log.With(zap.String("service", "payment")),
	}
}

// GetPayments lists the payment ledger. Students see only their own payments;
// roles that manage bookings or issue refunds see everything.
func (s *paymentService) GetPayments(ctx context.Context, actor Actor, req request.PaginatedRequest, status *entity.PaymentRecordStatus) (*response.PaginatedResponse[entity.PaymentRecord], error) {
	if !s.engine.HasPermission(actor.Role, access.PermPaymentsRead) {
		return nil, fmt.Errorf("%w: insufficient permissions", ErrForbidden)
	}

	filter := repository.PaymentFilter{Status: status}
	if !s.engine.HasAnyPermission(actor.Role, []access.Permission{access.PermBookingsManage, access.PermPaymentsRefund}) {
		own := actor.UserID
		filter.StudentID = &own
	}

	payments, err := s.paymentRepo.FindAll(ctx, req.Limit, req.Offset(), filter)
	if err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}

	total, err := s.paymentRepo.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	s.log.Debug("Payments listed",
		zap.String("actor_id", actor.UserID.String()),
		zap.Int("count", len(payments)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(payments, req.Page, req.Limit, total), nil
}
