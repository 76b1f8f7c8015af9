package usecase

import (
	"testing"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/internal/data/repository"
	"hotel-reservations/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guestActor() Actor {
	return Actor{ID: uuid.New(), Role: entity.RoleGuest}
}

func frontdeskActor(hotelID uuid.UUID) Actor {
	return Actor{ID: uuid.New(), Role: entity.RoleFrontDesk, HotelID: &hotelID}
}

func adminActor() Actor {
	return Actor{ID: uuid.New(), Role: entity.RoleAdmin}
}

func reservationFor(hotelID uuid.UUID, guestID *uuid.UUID) *entity.Reservation {
	return &entity.Reservation{
		Base:    entity.Base{ID: uuid.New()},
		Code:    "RSV-TEST",
		HotelID: hotelID,
		GuestID: guestID,
		Status:  entity.ReservationStatusPending,
	}
}

func TestCanView_GuestOwnership(t *testing.T) {
	policy := &ReservationPolicy{}
	actor := guestActor()
	hotelID := uuid.New()

	own := reservationFor(hotelID, &actor.ID)
	assert.NoError(t, policy.CanView(actor, own))

	otherGuest := uuid.New()
	foreign := reservationFor(hotelID, &otherGuest)
	err := policy.CanView(actor, foreign)
	require.Error(t, err)
	// Guests get not-found, not forbidden, so reservation IDs cannot be
	// probed.
	assert.True(t, apperrors.IsNotFound(err))

	walkIn := reservationFor(hotelID, nil)
	walkIn.WalkIn = &entity.WalkInDetails{Name: "Walk In", Phone: "555"}
	assert.True(t, apperrors.IsNotFound(policy.CanView(actor, walkIn)))
}

func TestCanView_StaffHotelScope(t *testing.T) {
	policy := &ReservationPolicy{}
	hotelA := uuid.New()
	hotelB := uuid.New()
	reservation := reservationFor(hotelA, nil)

	assert.NoError(t, policy.CanView(frontdeskActor(hotelA), reservation))

	err := policy.CanView(frontdeskActor(hotelB), reservation)
	assert.True(t, apperrors.IsAuthorization(err))

	unassigned := Actor{ID: uuid.New(), Role: entity.RoleFrontDesk}
	err = policy.CanView(unassigned, reservation)
	assert.True(t, apperrors.IsAuthorization(err))

	assert.NoError(t, policy.CanView(adminActor(), reservation))
}

func TestCanCreate(t *testing.T) {
	policy := &ReservationPolicy{}
	hotelID := uuid.New()
	actor := guestActor()

	assert.NoError(t, policy.CanCreate(actor, hotelID, &actor.ID, false))

	other := uuid.New()
	assert.True(t, apperrors.IsAuthorization(policy.CanCreate(actor, hotelID, &other, false)))
	assert.True(t, apperrors.IsAuthorization(policy.CanCreate(actor, hotelID, nil, true)))

	assert.NoError(t, policy.CanCreate(frontdeskActor(hotelID), hotelID, nil, true))
	assert.NoError(t, policy.CanCreate(adminActor(), hotelID, &other, false))
}

func TestCanConfirm_StaffOnly(t *testing.T) {
	policy := &ReservationPolicy{}
	actor := guestActor()
	reservation := reservationFor(uuid.New(), &actor.ID)

	// Even the owner cannot confirm their own reservation.
	assert.True(t, apperrors.IsAuthorization(policy.CanConfirm(actor, reservation)))
	assert.NoError(t, policy.CanConfirm(adminActor(), reservation))
}

func TestCanCancel_GuestConfirmedPolicy(t *testing.T) {
	actor := guestActor()
	reservation := reservationFor(uuid.New(), &actor.ID)
	reservation.Status = entity.ReservationStatusConfirmed

	strict := &ReservationPolicy{GuestCancelConfirmed: false}
	assert.True(t, apperrors.IsAuthorization(strict.CanCancel(actor, reservation)))

	lenient := &ReservationPolicy{GuestCancelConfirmed: true}
	assert.NoError(t, lenient.CanCancel(actor, reservation))

	// Pending reservations are always cancellable by their owner.
	reservation.Status = entity.ReservationStatusPending
	assert.NoError(t, strict.CanCancel(actor, reservation))

	// Staff cancel regardless of the flag.
	reservation.Status = entity.ReservationStatusConfirmed
	assert.NoError(t, strict.CanCancel(frontdeskActor(reservation.HotelID), reservation))
}

func TestScopeFilter(t *testing.T) {
	policy := &ReservationPolicy{}

	guest := guestActor()
	otherGuest := uuid.New()
	filter, err := policy.ScopeFilter(guest, repository.ReservationFilter{GuestID: &otherGuest})
	require.NoError(t, err)
	// The client-supplied guest filter cannot widen the scope.
	require.NotNil(t, filter.GuestID)
	assert.Equal(t, guest.ID, *filter.GuestID)
	assert.True(t, filter.ExcludeWalkIns)

	hotelA := uuid.New()
	hotelB := uuid.New()
	filter, err = policy.ScopeFilter(frontdeskActor(hotelA), repository.ReservationFilter{HotelID: &hotelB})
	require.NoError(t, err)
	require.NotNil(t, filter.HotelID)
	assert.Equal(t, hotelA, *filter.HotelID)

	unassigned := Actor{ID: uuid.New(), Role: entity.RoleFrontDesk}
	_, err = policy.ScopeFilter(unassigned, repository.ReservationFilter{})
	assert.True(t, apperrors.IsAuthorization(err))

	filter, err = policy.ScopeFilter(adminActor(), repository.ReservationFilter{HotelID: &hotelB})
	require.NoError(t, err)
	assert.Equal(t, &hotelB, filter.HotelID)
}
