package adaptor

import (
	"net/http"

	"hostel-management/internal/usecase"
	"hostel-management/pkg/utils"

	"go.uber.org/zap"
)

type AccessHandler struct {
	service usecase.AccessService
	log     *zap.Logger
}

func NewAccessHandler(service usecase.AccessService, log *zap.Logger) *AccessHandler {
	return &AccessHandler{
		service: service,
		log:     log.With(zap.String("handler", "access")),
	}
}

// Me handles GET /api/me
func (h *AccessHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	me, err := h.service.Me(r.Context(), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", me)
}

// Permissions handles GET /api/me/permissions
func (h *AccessHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	utils.ResponseSuccess(w, "success", h.service.Permissions(actor))
}

// Navigation handles GET /api/me/navigation
func (h *AccessHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	utils.ResponseSuccess(w, "success", h.service.Navigation(actor))
}
