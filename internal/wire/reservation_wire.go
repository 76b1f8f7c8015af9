package wire

import (
	"hotel-reservations/internal/adaptor"
	"hotel-reservations/internal/data/repository"
	"hotel-reservations/pkg/middleware"
	"hotel-reservations/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/availability - Check whether a room is free for a date range
	r.Get("/api/availability", reservationHandler.CheckAvailability)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/reservations", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/reservations - Create reservation (guest self-service or staff)
		r.Post("/", reservationHandler.CreateReservation)

		// GET /api/reservations - List reservations within the caller's scope
		r.Get("/", reservationHandler.ListReservations)

		// GET /api/reservations/{id} - Reservation details
		r.Get("/{id}", reservationHandler.GetReservation)

		// PUT /api/reservations/{id}/checkin - Record arrival
		r.Put("/{id}/checkin", reservationHandler.CheckInReservation)

		// PUT /api/reservations/{id}/checkout - Finalize stay and invoice
		r.Put("/{id}/checkout", reservationHandler.CheckOutReservation)

		// PUT /api/reservations/{id}/cancel - Cancel reservation
		r.Put("/{id}/cancel", reservationHandler.CancelReservation)

		// ==================== STAFF ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Staff(log))

			// PUT /api/reservations/{id}/confirm - Confirm a pending reservation
			r.Put("/{id}/confirm", reservationHandler.ConfirmReservation)

			// POST /api/reservations/{id}/charges - Record a service charge
			r.Post("/{id}/charges", reservationHandler.AddServiceCharge)
		})
	})
}
