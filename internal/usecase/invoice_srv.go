package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/internal/data/repository"
	"hotel-reservations/pkg/apperrors"
	"hotel-reservations/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// invoiceGenerator implements the InvoiceGenerator collaborator over
// the invoice and service-charge repositories.
type invoiceGenerator struct {
	repo    *repository.Repository
	taxRate float64
	log     *zap.Logger
}

func NewInvoiceGenerator(repo *repository.Repository, config *utils.Config, log *zap.Logger) InvoiceGenerator {
	return &invoiceGenerator{
		repo:    repo,
		taxRate: config.Invoice.TaxRate,
		log:     log.With(zap.String("service", "invoice")),
	}
}

func (g *invoiceGenerator) FindExisting(ctx context.Context, reservationID uuid.UUID) (*entity.Invoice, error) {
	return g.repo.Invoice.FindByReservationID(ctx, reservationID)
}

func (g *invoiceGenerator) Generate(ctx context.Context, snapshot *BillingSnapshot) (*entity.Invoice, error) {
	reservation := snapshot.Reservation

	// The snapshot must be captured pre-completion; billing against an
	// already-finalized record indicates an orchestration bug.
	if reservation.Status != entity.ReservationStatusCheckedIn {
		return nil, apperrors.Validation("cannot invoice reservation %s in status %s", reservation.Code, reservation.Status)
	}

	roomCharge := snapshot.Room.Rate * float64(reservation.Nights())

	// Only completed ancillary charges are billed.
	charges, err := g.repo.ServiceCharge.FindCompletedByReservationID(ctx, reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("load service charges for %s: %w", reservation.Code, err)
	}

	var serviceTotal float64
	for _, charge := range charges {
		serviceTotal += charge.Amount
	}

	subtotal := roomCharge + serviceTotal
	taxAmount := subtotal * g.taxRate

	number, err := g.nextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReservationID: reservation.ID,
		Number:        number,
		RoomCharge:    roomCharge,
		ServiceCharge: serviceTotal,
		TaxRate:       g.taxRate,
		TaxAmount:     taxAmount,
		Total:         subtotal + taxAmount,
		BilledTo:      billedTo(reservation),
		IssuedBy:      snapshot.Hotel.BillingName,
	}

	if err := g.repo.Invoice.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("persist invoice %s: %w", number, err)
	}

	g.log.Info("Invoice generated",
		zap.String("number", number),
		zap.String("reservation_id", reservation.ID.String()),
		zap.Float64("room_charge", roomCharge),
		zap.Float64("service_charge", serviceTotal),
		zap.Float64("total", invoice.Total),
	)

	return invoice, nil
}

// nextInvoiceNumber builds INV-YYYYMM-NNNNN with a per-period monotonic
// counter.
func (g *invoiceGenerator) nextInvoiceNumber(ctx context.Context) (string, error) {
	period := time.Now().Format("200601")

	counter, err := g.repo.Invoice.NextNumber(ctx, period)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("INV-%s-%05d", period, counter), nil
}

// billedTo picks the customer name for the invoice header, preferring
// the identity captured at check-in.
func billedTo(reservation *entity.Reservation) string {
	if reservation.CheckIn != nil && reservation.CheckIn.GuestName != "" {
		return reservation.CheckIn.GuestName
	}
	if reservation.WalkIn != nil {
		return reservation.WalkIn.Name
	}
	return reservation.Code
}
