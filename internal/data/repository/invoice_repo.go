package repository

import (
	"context"
	"fmt"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.Invoice, error)
	// NextNumber returns the next counter value for the billing period
	// (YYYYMM). Counters are monotonic per period across concurrent
	// callers.
	NextNumber(ctx context.Context, period string) (int64, error)
}

type invoiceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInvoiceRepository(db database.PgxIface, log *zap.Logger) InvoiceRepository {
	return &invoiceRepository{
		db:  db,
		log: log.With(zap.String("repository", "invoice")),
	}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	// invoices.reservation_id carries a unique constraint, which backs
	// the at-most-one-invoice-per-reservation invariant.
	query := `
		INSERT INTO invoices (id, reservation_id, number, room_charge, service_charge,
		                      tax_rate, tax_amount, total, billed_to, issued_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		invoice.ID,
		invoice.ReservationID,
		invoice.Number,
		invoice.RoomCharge,
		invoice.ServiceCharge,
		invoice.TaxRate,
		invoice.TaxAmount,
		invoice.Total,
		invoice.BilledTo,
		invoice.IssuedBy,
		invoice.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create invoice",
			zap.Error(err),
			zap.String("number", invoice.Number),
			zap.String("reservation_id", invoice.ReservationID.String()),
		)
		return fmt.Errorf("create invoice %s: %w", invoice.Number, err)
	}

	return nil
}

func (r *invoiceRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.Invoice, error) {
	query := `
		SELECT id, reservation_id, number, room_charge, service_charge,
		       tax_rate, tax_amount, total, billed_to, issued_by, created_at
		FROM invoices
		WHERE reservation_id = $1
	`

	var invoice entity.Invoice
	err := r.db.QueryRow(ctx, query, reservationID).Scan(
		&invoice.ID,
		&invoice.ReservationID,
		&invoice.Number,
		&invoice.RoomCharge,
		&invoice.ServiceCharge,
		&invoice.TaxRate,
		&invoice.TaxAmount,
		&invoice.Total,
		&invoice.BilledTo,
		&invoice.IssuedBy,
		&invoice.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find invoice by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find invoice for reservation %s: %w", reservationID.String(), err)
	}

	return &invoice, nil
}

func (r *invoiceRepository) NextNumber(ctx context.Context, period string) (int64, error) {
	// Upsert-returning keeps the counter monotonic without a separate
	// read-then-write.
	query := `
		INSERT INTO invoice_counters (period, counter)
		VALUES ($1, 1)
		ON CONFLICT (period) DO UPDATE SET counter = invoice_counters.counter + 1
		RETURNING counter
	`

	var counter int64
	err := r.db.QueryRow(ctx, query, period).Scan(&counter)
	if err != nil {
		r.log.Error("Failed to advance invoice counter",
			zap.Error(err),
			zap.String("period", period),
		)
		return 0, fmt.Errorf("advance invoice counter for period %s: %w", period, err)
	}

	return counter, nil
}
