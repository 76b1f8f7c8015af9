package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/pkg/apperrors"
	"hotel-reservations/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ReservationFilter narrows List results. The hotel/guest scope fields
// are set by the policy layer and are not client-overridable.
type ReservationFilter struct {
	HotelID  *uuid.UUID
	RoomID   *uuid.UUID
	GuestID  *uuid.UUID
	Status   *entity.ReservationStatus
	DateFrom *time.Time
	DateTo   *time.Time
	// ExcludeWalkIns hides staff-created walk-in reservations, used for
	// the guest role scope.
	ExcludeWalkIns bool
}

type ReservationRepository interface {
	// CreateAtomic inserts the reservation only if its interval does not
	// overlap a non-cancelled reservation of the same room. The check
	// and the insert commit as one serializable transaction; a losing
	// concurrent writer gets a conflict error.
	CreateAtomic(ctx context.Context, reservation *entity.Reservation) error
	HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByCode(ctx context.Context, code string) (*entity.Reservation, error)
	List(ctx context.Context, filter ReservationFilter, limit, offset int) ([]*entity.Reservation, error)
	Count(ctx context.Context, filter ReservationFilter) (int64, error)

	// Versioned transition writes. Each compares the caller's version
	// and fails with a conflict when another writer got there first.
	UpdateStatus(ctx context.Context, id uuid.UUID, version int, status entity.ReservationStatus) error
	UpdateCheckIn(ctx context.Context, id uuid.UUID, version int, details *entity.CheckInDetails) error
	UpdateCheckOut(ctx context.Context, id uuid.UUID, version int, details *entity.CheckOutDetails) error
	UpdateCancellation(ctx context.Context, id uuid.UUID, version int, penalty *float64, cancelledBy *uuid.UUID, reason *string, cancelledAt time.Time) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `
	id, code, hotel_id, room_id, guest_id,
	walk_in_name, walk_in_phone, walk_in_email,
	created_by, check_in_date, check_out_date, status,
	check_in_guest_name, check_in_document_type, check_in_document_number,
	check_in_phone, check_in_country, checked_in_at,
	checked_out_at, checked_out_by,
	cancellation_penalty, cancelled_by, cancellation_reason, cancellation_date,
	version, created_at, updated_at
`

// overlapQuery implements the half-open interval rule: two intervals
// conflict iff existing.check_in < new.check_out AND
// existing.check_out > new.check_in. Cancelled reservations never block.
const overlapQuery = `
	SELECT EXISTS (
		SELECT 1 FROM reservations
		WHERE room_id = $1
		  AND status <> 'cancelled'
		  AND check_in_date < $3
		  AND check_out_date > $2
		  AND ($4::uuid IS NULL OR id <> $4)
	)
`

func (r *reservationRepository) HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (bool, error) {
	var overlap bool
	err := r.db.QueryRow(ctx, overlapQuery, roomID, checkIn, checkOut, excludeID).Scan(&overlap)
	if err != nil {
		r.log.Error("Failed to check overlap",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return false, fmt.Errorf("check overlap for room %s: %w", roomID.String(), err)
	}

	return overlap, nil
}

func (r *reservationRepository) CreateAtomic(ctx context.Context, reservation *entity.Reservation) error {
	// Serialization failures are expected under concurrent creates for
	// the same room; retry a bounded number of times before giving up.
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		err = r.tryCreate(ctx, reservation)
		if !isSerializationFailure(err) {
			return err
		}
		r.log.Warn("Serialization failure on reservation create, retrying",
			zap.Int("attempt", attempt+1),
			zap.String("room_id", reservation.RoomID.String()),
		)
	}

	return apperrors.Wrap(apperrors.KindConflict, "reservation create lost to a concurrent writer", err)
}

func (r *reservationRepository) tryCreate(ctx context.Context, reservation *entity.Reservation) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin reservation transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Overlap predicate evaluated inside the same transaction that
	// performs the insert, so check and write commit atomically.
	var overlap bool
	err = tx.QueryRow(ctx, overlapQuery,
		reservation.RoomID,
		reservation.CheckInDate,
		reservation.CheckOutDate,
		nil,
	).Scan(&overlap)
	if err != nil {
		return fmt.Errorf("check overlap in transaction: %w", err)
	}

	if overlap {
		return apperrors.Conflict("room %s is already reserved for the requested dates", reservation.RoomID.String())
	}

	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24,
		        $25, $26, $27)
	`

	_, err = tx.Exec(ctx, query, reservationArgs(reservation)...)
	if err != nil {
		r.log.Error("Failed to insert reservation",
			zap.Error(err),
			zap.String("code", reservation.Code),
			zap.String("room_id", reservation.RoomID.String()),
		)
		return fmt.Errorf("insert reservation %s: %w", reservation.Code, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reservation %s: %w", reservation.Code, err)
	}

	return nil
}

// isSerializationFailure matches SQLSTATE 40001, which postgres raises
// when a serializable transaction loses to a concurrent one.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByCode(ctx context.Context, code string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE code = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find reservation by code %s: %w", code, err)
	}

	return reservation, nil
}

func (r *reservationRepository) List(ctx context.Context, filter ReservationFilter, limit, offset int) ([]*entity.Reservation, error) {
	where, args := buildReservationWhere(filter)

	query := fmt.Sprintf(`
		SELECT %s FROM reservations
		%s
		ORDER BY check_in_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, reservationColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reservations", zap.Error(err))
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

func (r *reservationRepository) Count(ctx context.Context, filter ReservationFilter) (int64, error) {
	where, args := buildReservationWhere(filter)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations `+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations", zap.Error(err))
		return 0, fmt.Errorf("count reservations: %w", err)
	}

	return count, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, version int, status entity.ReservationStatus) error {
	query := `
		UPDATE reservations
		SET status = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := r.db.Exec(ctx, query, id, version, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	return r.checkVersionedWrite(ctx, id, result)
}

func (r *reservationRepository) UpdateCheckIn(ctx context.Context, id uuid.UUID, version int, details *entity.CheckInDetails) error {
	query := `
		UPDATE reservations
		SET status = 'checkedin',
		    check_in_guest_name = $3, check_in_document_type = $4,
		    check_in_document_number = $5, check_in_phone = $6,
		    check_in_country = $7, checked_in_at = $8,
		    version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := r.db.Exec(ctx, query, id, version,
		details.GuestName,
		details.DocumentType,
		details.DocumentNumber,
		details.Phone,
		details.Country,
		details.CheckedInAt,
	)
	if err != nil {
		r.log.Error("Failed to record check-in",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("record check-in for reservation %s: %w", id.String(), err)
	}

	return r.checkVersionedWrite(ctx, id, result)
}

func (r *reservationRepository) UpdateCheckOut(ctx context.Context, id uuid.UUID, version int, details *entity.CheckOutDetails) error {
	query := `
		UPDATE reservations
		SET status = 'completed', checked_out_at = $3, checked_out_by = $4,
		    version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := r.db.Exec(ctx, query, id, version, details.CheckedOutAt, details.ProcessedBy)
	if err != nil {
		r.log.Error("Failed to record check-out",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("record check-out for reservation %s: %w", id.String(), err)
	}

	return r.checkVersionedWrite(ctx, id, result)
}

func (r *reservationRepository) UpdateCancellation(ctx context.Context, id uuid.UUID, version int, penalty *float64, cancelledBy *uuid.UUID, reason *string, cancelledAt time.Time) error {
	query := `
		UPDATE reservations
		SET status = 'cancelled',
		    cancellation_penalty = $3, cancelled_by = $4,
		    cancellation_reason = $5, cancellation_date = $6,
		    version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := r.db.Exec(ctx, query, id, version, penalty, cancelledBy, reason, cancelledAt)
	if err != nil {
		r.log.Error("Failed to record cancellation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("record cancellation for reservation %s: %w", id.String(), err)
	}

	return r.checkVersionedWrite(ctx, id, result)
}

// checkVersionedWrite distinguishes a missing row from a lost
// optimistic-lock race when a versioned update touched nothing.
func (r *reservationRepository) checkVersionedWrite(ctx context.Context, id uuid.UUID, result pgconn.CommandTag) error {
	if result.RowsAffected() > 0 {
		return nil
	}

	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.NotFound("reservation %s not found", id.String())
	}

	return apperrors.Conflict("reservation %s was modified concurrently, re-read and retry", id.String())
}

// ==================== SCANNING HELPERS ====================

func reservationArgs(reservation *entity.Reservation) []any {
	var walkInName, walkInPhone, walkInEmail *string
	if reservation.WalkIn != nil {
		walkInName = &reservation.WalkIn.Name
		walkInPhone = &reservation.WalkIn.Phone
		walkInEmail = reservation.WalkIn.Email
	}

	var ciName, ciDocType, ciDocNumber, ciPhone, ciCountry *string
	var checkedInAt *time.Time
	if reservation.CheckIn != nil {
		ciName = &reservation.CheckIn.GuestName
		ciDocType = &reservation.CheckIn.DocumentType
		ciDocNumber = &reservation.CheckIn.DocumentNumber
		ciPhone = &reservation.CheckIn.Phone
		ciCountry = &reservation.CheckIn.Country
		checkedInAt = &reservation.CheckIn.CheckedInAt
	}

	var checkedOutAt *time.Time
	var checkedOutBy *uuid.UUID
	if reservation.CheckOut != nil {
		checkedOutAt = &reservation.CheckOut.CheckedOutAt
		checkedOutBy = &reservation.CheckOut.ProcessedBy
	}

	return []any{
		reservation.ID,
		reservation.Code,
		reservation.HotelID,
		reservation.RoomID,
		reservation.GuestID,
		walkInName,
		walkInPhone,
		walkInEmail,
		reservation.CreatedBy,
		reservation.CheckInDate,
		reservation.CheckOutDate,
		reservation.Status,
		ciName,
		ciDocType,
		ciDocNumber,
		ciPhone,
		ciCountry,
		checkedInAt,
		checkedOutAt,
		checkedOutBy,
		reservation.CancellationPenalty,
		reservation.CancelledBy,
		reservation.CancellationReason,
		reservation.CancellationDate,
		reservation.Version,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	}
}

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var reservation entity.Reservation
	var walkInName, walkInPhone, walkInEmail *string
	var ciName, ciDocType, ciDocNumber, ciPhone, ciCountry *string
	var checkedInAt, checkedOutAt *time.Time
	var checkedOutBy *uuid.UUID

	err := row.Scan(
		&reservation.ID,
		&reservation.Code,
		&reservation.HotelID,
		&reservation.RoomID,
		&reservation.GuestID,
		&walkInName,
		&walkInPhone,
		&walkInEmail,
		&reservation.CreatedBy,
		&reservation.CheckInDate,
		&reservation.CheckOutDate,
		&reservation.Status,
		&ciName,
		&ciDocType,
		&ciDocNumber,
		&ciPhone,
		&ciCountry,
		&checkedInAt,
		&checkedOutAt,
		&checkedOutBy,
		&reservation.CancellationPenalty,
		&reservation.CancelledBy,
		&reservation.CancellationReason,
		&reservation.CancellationDate,
		&reservation.Version,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if walkInName != nil && walkInPhone != nil {
		reservation.WalkIn = &entity.WalkInDetails{
			Name:  *walkInName,
			Phone: *walkInPhone,
			Email: walkInEmail,
		}
	}

	if checkedInAt != nil {
		reservation.CheckIn = &entity.CheckInDetails{
			GuestName:      deref(ciName),
			DocumentType:   deref(ciDocType),
			DocumentNumber: deref(ciDocNumber),
			Phone:          deref(ciPhone),
			Country:        deref(ciCountry),
			CheckedInAt:    *checkedInAt,
		}
	}

	if checkedOutAt != nil && checkedOutBy != nil {
		reservation.CheckOut = &entity.CheckOutDetails{
			CheckedOutAt: *checkedOutAt,
			ProcessedBy:  *checkedOutBy,
		}
	}

	return &reservation, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func buildReservationWhere(filter ReservationFilter) (string, []any) {
	clauses := []string{}
	args := []any{}

	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.HotelID != nil {
		add("hotel_id = $%d", *filter.HotelID)
	}
	if filter.RoomID != nil {
		add("room_id = $%d", *filter.RoomID)
	}
	if filter.GuestID != nil {
		add("guest_id = $%d", *filter.GuestID)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.DateFrom != nil {
		add("check_out_date > $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("check_in_date < $%d", *filter.DateTo)
	}
	if filter.ExcludeWalkIns {
		clauses = append(clauses, "walk_in_name IS NULL")
	}

	if len(clauses) == 0 {
		return "", args
	}

	where := "WHERE " + clauses[0]
	for _, clause := range clauses[1:] {
		where += " AND " + clause
	}

	return where, args
}
