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

type HotelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error)
}

type hotelRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHotelRepository(db database.PgxIface, log *zap.Logger) HotelRepository {
	return &hotelRepository{
		db:  db,
		log: log.With(zap.String("repository", "hotel")),
	}
}

func (r *hotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	query := `
		SELECT id, name, city, billing_name, billing_address, billing_tax_id, created_at, updated_at
		FROM hotels
		WHERE id = $1
	`

	var hotel entity.Hotel
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hotel.ID,
		&hotel.Name,
		&hotel.City,
		&hotel.BillingName,
		&hotel.BillingAddress,
		&hotel.BillingTaxID,
		&hotel.CreatedAt,
		&hotel.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hotel by ID",
			zap.Error(err),
			zap.String("hotel_id", id.String()),
		)
		return nil, fmt.Errorf("find hotel by ID %s: %w", id.String(), err)
	}

	return &hotel, nil
}
