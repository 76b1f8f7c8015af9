package usecase

import (
	"context"
	"time"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/internal/data/repository"
	"hotel-reservations/pkg/apperrors"

	"go.uber.org/zap"
)

// CheckoutOrchestrator runs the multi-step check-out sequence: billing
// snapshot, idempotent invoice generation, status finalization, and
// cleaning dispatch. Invoice and cleaning failures are advisory; the
// completed transition is the authoritative outcome and is never rolled
// back for a downstream outage.
type CheckoutOrchestrator struct {
	reservations repository.ReservationRepository
	catalog      RoomCatalog
	invoices     InvoiceGenerator
	cleaning     CleaningDispatcher
	log          *zap.Logger
}

func NewCheckoutOrchestrator(
	reservations repository.ReservationRepository,
	catalog RoomCatalog,
	invoices InvoiceGenerator,
	cleaning CleaningDispatcher,
	log *zap.Logger,
) *CheckoutOrchestrator {
	return &CheckoutOrchestrator{
		reservations: reservations,
		catalog:      catalog,
		invoices:     invoices,
		cleaning:     cleaning,
		log:          log.With(zap.String("service", "checkout")),
	}
}

// CheckOut finalizes a checked-in reservation. Safe to retry: a second
// invocation on a completed reservation returns the existing invoice
// without error, and invoice generation is skipped whenever an invoice
// already exists.
func (o *CheckoutOrchestrator) CheckOut(ctx context.Context, reservation *entity.Reservation, actor Actor) (*entity.Reservation, *entity.Invoice, error) {
	// Idempotent retry path: checkout already went through.
	if reservation.Status == entity.ReservationStatusCompleted {
		invoice, err := o.invoices.FindExisting(ctx, reservation.ID)
		if err != nil {
			o.log.Error("Failed to look up invoice on repeated checkout",
				zap.Error(err),
				zap.String("reservation_id", reservation.ID.String()),
			)
		}
		return reservation, invoice, nil
	}

	if reservation.Status != entity.ReservationStatusCheckedIn {
		return nil, nil, apperrors.Conflict("reservation %s is %s, only checked-in reservations can be checked out", reservation.Code, reservation.Status)
	}

	// Resolve the billing snapshot while status is still checkedin;
	// invoice generation validates against it.
	snapshot, err := o.resolveSnapshot(ctx, reservation)
	if err != nil {
		return nil, nil, err
	}

	invoice := o.ensureInvoice(ctx, snapshot)

	// The authoritative state change. A concurrent transition loses
	// here via the version check.
	details := &entity.CheckOutDetails{
		CheckedOutAt: time.Now(),
		ProcessedBy:  actor.ID,
	}
	if err := o.reservations.UpdateCheckOut(ctx, reservation.ID, reservation.Version, details); err != nil {
		return nil, nil, err
	}

	reservation.Status = entity.ReservationStatusCompleted
	reservation.CheckOut = details
	reservation.Version++

	// Best-effort: a housekeeping outage must not fail the checkout.
	if err := o.cleaning.CreatePostCheckoutTask(ctx, reservation.HotelID, reservation.ID, reservation.RoomID); err != nil {
		o.log.Error("Failed to dispatch post-checkout cleaning task",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("room_id", reservation.RoomID.String()),
		)
	}

	o.log.Info("Reservation checked out",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.Bool("invoiced", invoice != nil),
	)

	return reservation, invoice, nil
}

func (o *CheckoutOrchestrator) resolveSnapshot(ctx context.Context, reservation *entity.Reservation) (*BillingSnapshot, error) {
	room, err := o.catalog.GetRoom(ctx, reservation.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperrors.NotFound("room %s not found", reservation.RoomID.String())
	}

	hotel, err := o.catalog.GetHotel(ctx, reservation.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, apperrors.NotFound("hotel %s not found", reservation.HotelID.String())
	}

	return &BillingSnapshot{
		Reservation: reservation,
		Room:        room,
		Hotel:       hotel,
	}, nil
}

// ensureInvoice returns the reservation's invoice, generating one only
// if none exists. Generation failure is logged and swallowed: the
// invoice can be produced manually later, the guest has still left.
func (o *CheckoutOrchestrator) ensureInvoice(ctx context.Context, snapshot *BillingSnapshot) *entity.Invoice {
	reservation := snapshot.Reservation

	existing, err := o.invoices.FindExisting(ctx, reservation.ID)
	if err != nil {
		o.log.Error("Failed to check for existing invoice",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return nil
	}
	if existing != nil {
		return existing
	}

	invoice, err := o.invoices.Generate(ctx, snapshot)
	if err != nil {
		downstream := apperrors.Downstream("invoice generation failed", err)
		o.log.Error("Invoice generation failed during checkout",
			zap.Error(downstream),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("code", reservation.Code),
		)
		return nil
	}

	return invoice
}
