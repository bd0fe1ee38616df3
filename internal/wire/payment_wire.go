package wire

import (
	"net/http"

	"hostel-management/internal/access"
	"hostel-management/internal/adaptor"
	"hostel-management/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	authn func(http.Handler) http.Handler,
	engine *access.Engine,
	log *zap.Logger,
) {
	r.With(authn, middleware.RequirePermission(engine, log, access.PermPaymentsRead)).
		Get("/api/payments", paymentHandler.GetPayments)
}
