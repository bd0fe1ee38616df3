package usecase

import (
	"context"
	"fmt"

	"hostel-management/internal/access"
	"hostel-management/internal/data/repository"
	"hostel-management/internal/dto/response"

	"go.uber.org/zap"
)

// AccessService answers "what may I do" for the authenticated caller.
type AccessService interface {
	Me(ctx context.Context, actor Actor) (*response.MeResponse, error)
	Permissions(actor Actor) *response.PermissionsResponse
	Navigation(actor Actor) *response.NavigationResponse
}

type accessService struct {
	userRepo repository.UserRepository
	engine   *access.Engine
	nav      []access.NavItem
	log      *zap.Logger
}

func NewAccessService(userRepo repository.UserRepository, engine *access.Engine, log *zap.Logger) AccessService {
	return &accessService{
		userRepo: userRepo,
		engine:   engine,
		nav:      access.DefaultNavigation(),
		log:      log.With(zap.String("service", "access")),
	}
}

func (s *accessService) Me(ctx context.Context, actor Actor) (*response.MeResponse, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("find current user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: current user", ErrNotFound)
	}

	return &response.MeResponse{
		User:        response.UserToResponse(user),
		Permissions: s.engine.Permissions(user.EffectiveRole()),
	}, nil
}

func (s *accessService) Permissions(actor Actor) *response.PermissionsResponse {
	return &response.PermissionsResponse{
		Role:        actor.Role,
		Permissions: s.engine.Permissions(actor.Role),
	}
}

func (s *accessService) Navigation(actor Actor) *response.NavigationResponse {
	return &response.NavigationResponse{
		Role:  actor.Role,
		Items: s.engine.FilterNavigation(s.nav, actor.Role),
	}
}
