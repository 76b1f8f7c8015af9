package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(day int) time.Time {
	return time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC)
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical intervals", date(1), date(5), date(1), date(5), true},
		{"partial overlap at start", date(1), date(5), date(3), date(8), true},
		{"partial overlap at end", date(3), date(8), date(1), date(5), true},
		{"containment", date(1), date(10), date(3), date(5), true},
		{"contained by", date(3), date(5), date(1), date(10), true},
		{"single shared night", date(1), date(5), date(4), date(6), true},
		{"same-day turnover: b starts on a's end", date(1), date(5), date(5), date(8), false},
		{"same-day turnover: a starts on b's end", date(5), date(8), date(1), date(5), false},
		{"disjoint", date(1), date(3), date(10), date(12), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestReservationOverlaps_CancelledNeverConflicts(t *testing.T) {
	r := &Reservation{
		CheckInDate:  date(1),
		CheckOutDate: date(5),
		Status:       ReservationStatusCancelled,
	}

	assert.False(t, r.Overlaps(date(1), date(5)))

	r.Status = ReservationStatusPending
	assert.True(t, r.Overlaps(date(1), date(5)))
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{ReservationStatusPending, ReservationStatusConfirmed, true},
		{ReservationStatusPending, ReservationStatusCancelled, true},
		{ReservationStatusPending, ReservationStatusCheckedIn, false},
		{ReservationStatusPending, ReservationStatusCompleted, false},
		{ReservationStatusConfirmed, ReservationStatusCheckedIn, true},
		{ReservationStatusConfirmed, ReservationStatusCancelled, true},
		{ReservationStatusConfirmed, ReservationStatusPending, false},
		{ReservationStatusCheckedIn, ReservationStatusCompleted, true},
		{ReservationStatusCheckedIn, ReservationStatusCancelled, false},
		{ReservationStatusCompleted, ReservationStatusCancelled, false},
		{ReservationStatusCompleted, ReservationStatusCheckedIn, false},
		{ReservationStatusCancelled, ReservationStatusPending, false},
		{ReservationStatusCancelled, ReservationStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, ReservationStatusPending.IsTerminal())
	assert.False(t, ReservationStatusConfirmed.IsTerminal())
	assert.False(t, ReservationStatusCheckedIn.IsTerminal())
	assert.True(t, ReservationStatusCompleted.IsTerminal())
	assert.True(t, ReservationStatusCancelled.IsTerminal())
}

func TestReservationNights(t *testing.T) {
	r := &Reservation{CheckInDate: date(1), CheckOutDate: date(5)}
	assert.Equal(t, 4, r.Nights())

	oneNight := &Reservation{CheckInDate: date(1), CheckOutDate: date(2)}
	assert.Equal(t, 1, oneNight.Nights())
}

func TestIsWalkIn(t *testing.T) {
	r := &Reservation{}
	assert.False(t, r.IsWalkIn())

	r.WalkIn = &WalkInDetails{Name: "Ana Pereira", Phone: "+351911222333"}
	assert.True(t, r.IsWalkIn())
}
