package adaptor

import (
	"net/http"
	"strings"

	"hostel-management/internal/data/repository"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/usecase"
	"hostel-management/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HostelHandler struct {
	service usecase.HostelService
	log     *zap.Logger
}

func NewHostelHandler(service usecase.HostelService, log *zap.Logger) *HostelHandler {
	return &HostelHandler{
		service: service,
		log:     log.With(zap.String("handler", "hostel")),
	}
}

// GetHostels handles GET /api/hostels?city=&includeInactive=true
func (h *HostelHandler) GetHostels(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.HostelFilter{ActiveOnly: query.Get("includeInactive") != "true"}
	if city := strings.TrimSpace(query.Get("city")); city != "" {
		filter.City = &city
	}

	hostels, err := h.service.GetHostels(r.Context(), paginationFrom(r), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "get hostels")
		return
	}

	utils.ResponseSuccess(w, "success", hostels)
}

// GetHostelByID handles GET /api/hostels/{id}
func (h *HostelHandler) GetHostelByID(w http.ResponseWriter, r *http.Request) {
	hostel, err := h.service.GetHostelByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get hostel")
		return
	}

	utils.ResponseSuccess(w, "success", hostel)
}

// CreateHostel handles POST /api/hostels
func (h *HostelHandler) CreateHostel(w http.ResponseWriter, r *http.Request) {
	var req request.HostelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hostel, err := h.service.CreateHostel(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create hostel")
		return
	}

	utils.ResponseCreated(w, "Hostel created", hostel)
}

// UpdateHostel handles PUT /api/hostels/{id}
func (h *HostelHandler) UpdateHostel(w http.ResponseWriter, r *http.Request) {
	var req request.HostelUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hostel, err := h.service.UpdateHostel(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update hostel")
		return
	}

	utils.ResponseSuccess(w, "Hostel updated", hostel)
}

// DeleteHostel handles DELETE /api/hostels/{id}
func (h *HostelHandler) DeleteHostel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHostel(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete hostel")
		return
	}

	utils.ResponseSuccess(w, "Hostel deleted", nil)
}

// ==================== ROOMS ====================

// GetRooms handles GET /api/hostels/{id}/rooms
func (h *HostelHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.GetRooms(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// CreateRoom handles POST /api/hostels/{id}/rooms
func (h *HostelHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created", room)
}

// UpdateRoom handles PUT /api/hostels/{id}/rooms/{roomId}
func (h *HostelHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), chi.URLParam(r, "roomId"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated", room)
}
