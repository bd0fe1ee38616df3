package usecase

import (
	"context"
	"fmt"

	"hostel-management/internal/access"
	"hostel-management/internal/data/entity"
	"hostel-management/internal/data/repository"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/dto/response"
	"hostel-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StaffRoles are the roles listed by the staff directory.
var StaffRoles = []access.Role{access.RoleStaff, access.RoleHostelAdmin, access.RoleAccountant}

type UserService interface {
	List(ctx context.Context, req request.PaginatedRequest, roles []access.Role) (*response.PaginatedResponse[response.UserResponse], error)
	GetByID(ctx context.Context, id string) (*response.UserResponse, error)
	UpdateRole(ctx context.Context, actor Actor, id string, req *request.UpdateRoleRequest) (*response.UserResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, req *request.UpdateStatusRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	engine      *access.Engine
	log         *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, engine *access.Engine, log *zap.Logger) UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		engine:      engine,
		log:         log.With(zap.String("service", "user")),
	}
}

func (s *userService) List(ctx context.Context, req request.PaginatedRequest, roles []access.Role) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.userRepo.FindAll(ctx, req.Limit, req.Offset(), roles)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.userRepo.CountAll(ctx, roles)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	return response.NewPaginatedResponse(response.UsersToResponse(users), req.Page, req.Limit, total), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*response.UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateRole(ctx context.Context, actor Actor, id string, req *request.UpdateRoleRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ID == actor.UserID {
		return nil, fmt.Errorf("%w: you cannot change your own role", ErrForbidden)
	}

	role := access.ParseRole(req.Role)
	if isPrivileged(role) || isPrivileged(user.Role) {
		if !s.engine.HasPermission(actor.Role, access.PermSecurityManage) {
			return nil, fmt.Errorf("%w: changing administrator roles requires %s", ErrForbidden, access.PermSecurityManage)
		}
	}

	if err := s.userRepo.UpdateRole(ctx, user.ID, role); err != nil {
		return nil, notFoundOr(err, "update role")
	}

	s.log.Info("Role assigned",
		zap.String("actor_id", actor.UserID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("from", user.Role.String()),
		zap.String("to", role.String()),
	)

	user.Role = role
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateStatus(ctx context.Context, actor Actor, id string, req *request.UpdateStatusRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ID == actor.UserID {
		return nil, fmt.Errorf("%w: you cannot change your own status", ErrForbidden)
	}

	if err := s.userRepo.UpdateStatus(ctx, user.ID, *req.IsActive); err != nil {
		return nil, notFoundOr(err, "update status")
	}

	if !*req.IsActive {
		if err := s.sessionRepo.RevokeAllUserSessions(ctx, user.ID); err != nil {
			s.log.Warn("Failed to revoke sessions of deactivated user",
				zap.Error(err), zap.String("user_id", user.ID.String()))
		}
	}

	user.IsActive = *req.IsActive
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, actor Actor, id string) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if user.ID == actor.UserID {
		return fmt.Errorf("%w: you cannot delete your own account", ErrForbidden)
	}
	if isPrivileged(user.Role) && !s.engine.HasPermission(actor.Role, access.PermSecurityManage) {
		return fmt.Errorf("%w: deleting administrators requires %s", ErrForbidden, access.PermSecurityManage)
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return notFoundOr(err, "delete user")
	}
	if err := s.sessionRepo.RevokeAllUserSessions(ctx, user.ID); err != nil {
		s.log.Warn("Failed to revoke sessions of deleted user",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *userService) find(ctx context.Context, id string) (*entity.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, invalidID("user", id)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return user, nil
}

func isPrivileged(role access.Role) bool {
	return role == access.RoleAdmin || role == access.RoleSuperAdmin
}
