package usecase

import (
	"hotel-reservations/internal/data/entity"
	"hotel-reservations/internal/data/repository"
	"hotel-reservations/pkg/apperrors"
	"hotel-reservations/pkg/utils"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a reservation operation.
type Actor struct {
	ID      uuid.UUID
	Role    entity.UserRole
	HotelID *uuid.UUID // frontdesk hotel assignment
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

// ReservationPolicy is the role/ownership gate evaluated before every
// reservation read or mutation. It decides WHO may act; the state
// machine decides WHETHER the transition itself is legal.
type ReservationPolicy struct {
	// GuestCancelConfirmed permits guests to cancel their own
	// reservation after confirmation. Policy decision, configurable.
	GuestCancelConfirmed bool
}

func NewReservationPolicy(config *utils.Config) *ReservationPolicy {
	return &ReservationPolicy{
		GuestCancelConfirmed: config.Policy.GuestCancelConfirmed,
	}
}

// hotelScope verifies staff access to a reservation's hotel. Frontdesk
// staff without a hotel assignment are rejected outright.
func (p *ReservationPolicy) hotelScope(actor Actor, hotelID uuid.UUID) error {
	switch actor.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleFrontDesk:
		if actor.HotelID == nil {
			return apperrors.Authorization("staff member has no hotel assignment")
		}
		if *actor.HotelID != hotelID {
			return apperrors.Authorization("reservation belongs to another hotel")
		}
		return nil
	}
	return apperrors.Authorization("staff role required")
}

// ownsReservation reports guest ownership. Walk-in reservations are
// never owned by a guest account.
func ownsReservation(actor Actor, reservation *entity.Reservation) bool {
	return reservation.GuestID != nil && *reservation.GuestID == actor.ID
}

func (p *ReservationPolicy) CanView(actor Actor, reservation *entity.Reservation) error {
	if actor.Role == entity.RoleGuest {
		if !ownsReservation(actor, reservation) {
			// Report not-found rather than forbidden so guests cannot
			// probe for other guests' reservation IDs.
			return apperrors.NotFound("reservation not found")
		}
		return nil
	}
	return p.hotelScope(actor, reservation.HotelID)
}

// CanCreate gates reservation creation. Guests book for themselves
// only; walk-ins are staff territory.
func (p *ReservationPolicy) CanCreate(actor Actor, hotelID uuid.UUID, occupantGuestID *uuid.UUID, walkIn bool) error {
	if actor.Role == entity.RoleGuest {
		if walkIn {
			return apperrors.Authorization("guests cannot create walk-in reservations")
		}
		if occupantGuestID != nil && *occupantGuestID != actor.ID {
			return apperrors.Authorization("guests can only book for themselves")
		}
		return nil
	}
	return p.hotelScope(actor, hotelID)
}

func (p *ReservationPolicy) CanConfirm(actor Actor, reservation *entity.Reservation) error {
	// Confirmation is a staff action.
	if actor.Role == entity.RoleGuest {
		return apperrors.Authorization("staff role required to confirm a reservation")
	}
	return p.hotelScope(actor, reservation.HotelID)
}

func (p *ReservationPolicy) CanCheckIn(actor Actor, reservation *entity.Reservation) error {
	if actor.Role == entity.RoleGuest {
		if !ownsReservation(actor, reservation) {
			return apperrors.NotFound("reservation not found")
		}
		return nil
	}
	return p.hotelScope(actor, reservation.HotelID)
}

func (p *ReservationPolicy) CanCheckOut(actor Actor, reservation *entity.Reservation) error {
	if actor.Role == entity.RoleGuest {
		if !ownsReservation(actor, reservation) {
			return apperrors.NotFound("reservation not found")
		}
		return nil
	}
	return p.hotelScope(actor, reservation.HotelID)
}

func (p *ReservationPolicy) CanCancel(actor Actor, reservation *entity.Reservation) error {
	if actor.Role == entity.RoleGuest {
		if !ownsReservation(actor, reservation) {
			return apperrors.NotFound("reservation not found")
		}
		if reservation.Status == entity.ReservationStatusConfirmed && !p.GuestCancelConfirmed {
			return apperrors.Authorization("confirmed reservations can only be cancelled by staff")
		}
		return nil
	}
	return p.hotelScope(actor, reservation.HotelID)
}

// ScopeFilter intersects client filters with the mandatory role scope.
// The scope fields always win over whatever the client supplied.
func (p *ReservationPolicy) ScopeFilter(actor Actor, filter repository.ReservationFilter) (repository.ReservationFilter, error) {
	switch actor.Role {
	case entity.RoleGuest:
		guestID := actor.ID
		filter.GuestID = &guestID
		filter.ExcludeWalkIns = true
		return filter, nil
	case entity.RoleFrontDesk:
		if actor.HotelID == nil {
			return filter, apperrors.Authorization("staff member has no hotel assignment")
		}
		filter.HotelID = actor.HotelID
		return filter, nil
	case entity.RoleAdmin:
		return filter, nil
	}
	return filter, apperrors.Authorization("unknown role")
}
