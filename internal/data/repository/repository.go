package repository

import (
	"hotel-reservations/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Hotel         HotelRepository
	Room          RoomRepository
	Reservation   ReservationRepository
	Invoice       InvoiceRepository
	ServiceCharge ServiceChargeRepository
	CleaningTask  CleaningTaskRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Hotel:         NewHotelRepository(db, log),
		Room:          NewRoomRepository(db, log),
		Reservation:   NewReservationRepository(db, log),
		Invoice:       NewInvoiceRepository(db, log),
		ServiceCharge: NewServiceChargeRepository(db, log),
		CleaningTask:  NewCleaningTaskRepository(db, log),
	}
}
