package usecase

import (
	"time"

	"hostel-management/internal/access"
	"hostel-management/internal/data/repository"
	"hostel-management/pkg/utils"

	"go.uber.org/zap"
)

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

type Service struct {
	Auth    AuthService
	User    UserService
	Access  AccessService
	Hostel  HostelService
	Booking BookingService
	Payment PaymentService
}

func NewService(repo *repository.Repository, engine *access.Engine, config *utils.Config, log *zap.Logger) *Service {
	clock := Clock(time.Now)
	return &Service{
		Auth:    NewAuthService(repo, config, clock, log),
		User:    NewUserService(repo.User, repo.Session, engine, log),
		Access:  NewAccessService(repo.User, engine, log),
		Hostel:  NewHostelService(repo, clock, log),
		Booking: NewBookingService(repo, engine, config.Booking, clock, log),
		Payment: NewPaymentService(repo.Payment, engine, log),
	}
}
