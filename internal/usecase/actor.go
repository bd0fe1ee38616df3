package usecase

import (
	"context"

	"hostel-management/internal/access"
	"hostel-management/pkg/utils"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uuid.UUID
	Role   access.Role
}

// ActorFromContext reads the caller set by the session middleware.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return Actor{}, false
	}
	return Actor{UserID: userID, Role: utils.GetRoleFromContext(ctx)}, true
}
