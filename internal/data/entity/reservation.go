package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCheckedIn ReservationStatus = "checkedin"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// statusTransitions is the full transition table. A status not present
// (completed, cancelled) is terminal.
var statusTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed: {ReservationStatusCheckedIn, ReservationStatusCancelled},
	ReservationStatusCheckedIn: {ReservationStatusCompleted},
}

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCheckedIn, ReservationStatusCompleted,
		ReservationStatusCancelled:
		return true
	}
	return false
}

func (s ReservationStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// CanTransitionTo checks the state graph only. Role and ownership
// guards live in the reservation policy.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// WalkInDetails identifies a customer without an account. A reservation
// holds either a GuestID or WalkIn, never both.
type WalkInDetails struct {
	Name  string  `db:"walk_in_name"`
	Phone string  `db:"walk_in_phone"`
	Email *string `db:"walk_in_email"`
}

// CheckInDetails are the identity fields captured at physical check-in.
type CheckInDetails struct {
	GuestName      string    `db:"check_in_guest_name"`
	DocumentType   string    `db:"check_in_document_type"`
	DocumentNumber string    `db:"check_in_document_number"`
	Phone          string    `db:"check_in_phone"`
	Country        string    `db:"check_in_country"`
	CheckedInAt    time.Time `db:"checked_in_at"`
}

type CheckOutDetails struct {
	CheckedOutAt time.Time `db:"checked_out_at"`
	ProcessedBy  uuid.UUID `db:"checked_out_by"`
}

type Reservation struct {
	Base
	Code         string     `db:"code"`
	HotelID      uuid.UUID  `db:"hotel_id"`
	RoomID       uuid.UUID  `db:"room_id"`
	GuestID      *uuid.UUID `db:"guest_id"`
	WalkIn       *WalkInDetails
	CreatedBy    *uuid.UUID        `db:"created_by"`
	CheckInDate  time.Time         `db:"check_in_date"`
	CheckOutDate time.Time         `db:"check_out_date"`
	Status       ReservationStatus `db:"status"`
	CheckIn      *CheckInDetails
	CheckOut     *CheckOutDetails

	// Cancellation metadata, populated on staff-driven cancellation only.
	CancellationPenalty *float64   `db:"cancellation_penalty"`
	CancelledBy         *uuid.UUID `db:"cancelled_by"`
	CancellationReason  *string    `db:"cancellation_reason"`
	CancellationDate    *time.Time `db:"cancellation_date"`

	// Version guards concurrent transitions (optimistic locking).
	Version int `db:"version"`
}

// IsWalkIn reports whether the reservation belongs to a non-account
// customer.
func (r *Reservation) IsWalkIn() bool {
	return r.WalkIn != nil
}

// Nights is the length of stay under the half-open date rule.
func (r *Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}

// IntervalsOverlap applies the half-open rule to two [start, end)
// intervals: an interval ending on day D does not conflict with one
// starting on day D (same-day turnover).
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Overlaps reports whether the given interval conflicts with this
// reservation. Cancelled reservations never conflict.
func (r *Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	if r.Status == ReservationStatusCancelled {
		return false
	}
	return IntervalsOverlap(r.CheckInDate, r.CheckOutDate, checkIn, checkOut)
}
