package usecase

import (
	"context"

	"hotel-reservations/internal/data/entity"

	"github.com/google/uuid"
)

// Collaborator interfaces owned by the reservation core and injected at
// construction. The invoicing/cleaning/notification code implements
// them; the core never imports those modules directly.

type RoomCatalog interface {
	GetRoom(ctx context.Context, roomID uuid.UUID) (*entity.Room, error)
	GetHotel(ctx context.Context, hotelID uuid.UUID) (*entity.Hotel, error)
}

// BillingSnapshot captures everything invoicing needs, resolved while
// the reservation is still checked in.
type BillingSnapshot struct {
	Reservation *entity.Reservation
	Room        *entity.Room
	Hotel       *entity.Hotel
}

type InvoiceGenerator interface {
	Generate(ctx context.Context, snapshot *BillingSnapshot) (*entity.Invoice, error)
	FindExisting(ctx context.Context, reservationID uuid.UUID) (*entity.Invoice, error)
}

type CleaningDispatcher interface {
	CreatePostCheckoutTask(ctx context.Context, hotelID, reservationID, roomID uuid.UUID) error
}

type Notification struct {
	To      string
	Subject string
	Body    string
}

// NotificationSender delivers confirmation/cancellation messages.
// Callers invoke it fire-and-forget; failures must never propagate
// into the reservation operation.
type NotificationSender interface {
	Send(ctx context.Context, notification Notification) error
}
