package repository

import (
	"context"
	"fmt"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ServiceChargeRepository interface {
	Create(ctx context.Context, charge *entity.ServiceCharge) error
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ServiceCharge, error)
	FindCompletedByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ServiceCharge, error)
}

type serviceChargeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceChargeRepository(db database.PgxIface, log *zap.Logger) ServiceChargeRepository {
	return &serviceChargeRepository{
		db:  db,
		log: log.With(zap.String("repository", "service_charge")),
	}
}

func (r *serviceChargeRepository) Create(ctx context.Context, charge *entity.ServiceCharge) error {
	query := `
		INSERT INTO service_charges (id, reservation_id, description, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		charge.ID,
		charge.ReservationID,
		charge.Description,
		charge.Amount,
		charge.Status,
		charge.CreatedAt,
		charge.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service charge",
			zap.Error(err),
			zap.String("reservation_id", charge.ReservationID.String()),
		)
		return fmt.Errorf("create service charge for reservation %s: %w", charge.ReservationID.String(), err)
	}

	return nil
}

func (r *serviceChargeRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ServiceCharge, error) {
	return r.findByReservation(ctx, reservationID, false)
}

func (r *serviceChargeRepository) FindCompletedByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ServiceCharge, error) {
	return r.findByReservation(ctx, reservationID, true)
}

func (r *serviceChargeRepository) findByReservation(ctx context.Context, reservationID uuid.UUID, completedOnly bool) ([]*entity.ServiceCharge, error) {
	query := `
		SELECT id, reservation_id, description, amount, status, created_at, updated_at
		FROM service_charges
		WHERE reservation_id = $1
	`
	if completedOnly {
		query += ` AND status = 'completed'`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find service charges",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find service charges for reservation %s: %w", reservationID.String(), err)
	}
	defer rows.Close()

	var charges []*entity.ServiceCharge
	for rows.Next() {
		var charge entity.ServiceCharge
		err := rows.Scan(
			&charge.ID,
			&charge.ReservationID,
			&charge.Description,
			&charge.Amount,
			&charge.Status,
			&charge.CreatedAt,
			&charge.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan service charge row", zap.Error(err))
			return nil, fmt.Errorf("scan service charge row: %w", err)
		}
		charges = append(charges, &charge)
	}

	return charges, nil
}
