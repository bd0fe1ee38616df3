package adaptor

import (
	"net/http"

	"hostel-management/internal/data/entity"
	"hostel-management/internal/usecase"
	"hostel-management/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// GetPayments handles GET /api/payments?status=COMPLETED
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var status *entity.PaymentRecordStatus
	switch raw := entity.PaymentRecordStatus(r.URL.Query().Get("status")); raw {
	case "":
	case entity.PaymentRecordCompleted, entity.PaymentRecordFailed:
		status = &raw
	default:
		utils.ResponseBadRequest(w, "Unknown payment status "+string(raw), nil)
		return
	}

	payments, err := h.service.GetPayments(r.Context(), actor, paginationFrom(r), status)
	if err != nil {
		handleServiceError(w, h.log, err, "get payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}
