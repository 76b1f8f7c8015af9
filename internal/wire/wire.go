// internal/wire/wire.go
package wire

import (
	"hotel-reservations/internal/adaptor"
	"hotel-reservations/internal/data/repository"
	"hotel-reservations/internal/usecase"
	"hotel-reservations/pkg/middleware"
	"hotel-reservations/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers, and routes.
func Wiring(repo *repository.Repository, config *utils.Config, notify usecase.NotificationSender, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, notify, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireReservation(r, handler.Reservation, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
