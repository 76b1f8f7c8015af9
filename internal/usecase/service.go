package usecase

import (
	"hotel-reservations/internal/data/repository"
	"hotel-reservations/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Reservation ReservationService
}

func NewService(repo *repository.Repository, config *utils.Config, notify NotificationSender, log *zap.Logger) *Service {
	policy := NewReservationPolicy(config)
	catalog := NewRoomCatalog(repo.Room, repo.Hotel)
	invoices := NewInvoiceGenerator(repo, config, log)
	cleaning := NewCleaningDispatcher(repo.CleaningTask, log)
	checkout := NewCheckoutOrchestrator(repo.Reservation, catalog, invoices, cleaning, log)

	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Reservation: NewReservationService(repo, policy, checkout, notify, log),
	}
}
