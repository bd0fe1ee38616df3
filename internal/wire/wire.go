package wire

import (
	"net/http"

	"hostel-management/internal/access"
	"hostel-management/internal/adaptor"
	"hostel-management/internal/data/repository"
	"hostel-management/internal/usecase"
	"hostel-management/pkg/database"
	"hostel-management/pkg/middleware"
	"hostel-management/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes over repo.
func Wiring(db database.PgxIface, repo *repository.Repository, engine *access.Engine, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, engine, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(db, handler, service, engine, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	db database.PgxIface,
	handler *adaptor.Handler,
	service *usecase.Service,
	engine *access.Engine,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS))

	authn := middleware.AuthSession(service.Auth, logger)

	wireAuth(r, handler.Auth, authn)
	wireAccess(r, handler.Access, authn)
	wireUser(r, handler.User, authn, engine, logger)
	wireHostel(r, handler.Hostel, authn, engine, logger)
	wireBooking(r, handler.Booking, authn, engine, logger)
	wirePayment(r, handler.Payment, authn, engine, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "database unavailable", nil, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}
