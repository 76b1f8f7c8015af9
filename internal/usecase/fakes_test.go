package usecase

import (
	"context"
	"sync"
	"time"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/internal/data/repository"
	"hotel-reservations/pkg/apperrors"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the SQL repositories'
// contract: copies in and out, nil on missing rows, conflicts on
// version mismatch, and an atomic overlap check on create.

type fakeReservationRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{items: map[uuid.UUID]*entity.Reservation{}}
}

func copyReservation(r *entity.Reservation) *entity.Reservation {
	clone := *r
	if r.WalkIn != nil {
		w := *r.WalkIn
		clone.WalkIn = &w
	}
	if r.CheckIn != nil {
		ci := *r.CheckIn
		clone.CheckIn = &ci
	}
	if r.CheckOut != nil {
		co := *r.CheckOut
		clone.CheckOut = &co
	}
	return &clone
}

func (f *fakeReservationRepo) CreateAtomic(ctx context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.items {
		if existing.RoomID == reservation.RoomID && existing.Overlaps(reservation.CheckInDate, reservation.CheckOutDate) {
			return apperrors.Conflict("room is already reserved for the requested dates")
		}
	}

	f.items[reservation.ID] = copyReservation(reservation)
	return nil
}

func (f *fakeReservationRepo) HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.items {
		if excludeID != nil && existing.ID == *excludeID {
			continue
		}
		if existing.RoomID == roomID && existing.Overlaps(checkIn, checkOut) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return copyReservation(existing), nil
}

func (f *fakeReservationRepo) FindByCode(ctx context.Context, code string) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.items {
		if existing.Code == code {
			return copyReservation(existing), nil
		}
	}
	return nil, nil
}

func matchesFilter(r *entity.Reservation, filter repository.ReservationFilter) bool {
	if filter.HotelID != nil && r.HotelID != *filter.HotelID {
		return false
	}
	if filter.RoomID != nil && r.RoomID != *filter.RoomID {
		return false
	}
	if filter.GuestID != nil && (r.GuestID == nil || *r.GuestID != *filter.GuestID) {
		return false
	}
	if filter.Status != nil && r.Status != *filter.Status {
		return false
	}
	if filter.DateFrom != nil && !r.CheckOutDate.After(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && !r.CheckInDate.Before(*filter.DateTo) {
		return false
	}
	if filter.ExcludeWalkIns && r.IsWalkIn() {
		return false
	}
	return true
}

func (f *fakeReservationRepo) List(ctx context.Context, filter repository.ReservationFilter, limit, offset int) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Reservation
	for _, existing := range f.items {
		if matchesFilter(existing, filter) {
			out = append(out, copyReservation(existing))
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReservationRepo) Count(ctx context.Context, filter repository.ReservationFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, existing := range f.items {
		if matchesFilter(existing, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationRepo) versioned(id uuid.UUID, version int, apply func(*entity.Reservation)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.items[id]
	if !ok {
		return apperrors.NotFound("reservation not found")
	}
	if existing.Version != version {
		return apperrors.Conflict("reservation was modified by another request")
	}

	apply(existing)
	existing.Version++
	existing.UpdatedAt = time.Now()
	return nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, version int, status entity.ReservationStatus) error {
	return f.versioned(id, version, func(r *entity.Reservation) {
		r.Status = status
	})
}

func (f *fakeReservationRepo) UpdateCheckIn(ctx context.Context, id uuid.UUID, version int, details *entity.CheckInDetails) error {
	return f.versioned(id, version, func(r *entity.Reservation) {
		r.Status = entity.ReservationStatusCheckedIn
		ci := *details
		r.CheckIn = &ci
	})
}

func (f *fakeReservationRepo) UpdateCheckOut(ctx context.Context, id uuid.UUID, version int, details *entity.CheckOutDetails) error {
	return f.versioned(id, version, func(r *entity.Reservation) {
		r.Status = entity.ReservationStatusCompleted
		co := *details
		r.CheckOut = &co
	})
}

func (f *fakeReservationRepo) UpdateCancellation(ctx context.Context, id uuid.UUID, version int, penalty *float64, cancelledBy *uuid.UUID, reason *string, cancelledAt time.Time) error {
	return f.versioned(id, version, func(r *entity.Reservation) {
		r.Status = entity.ReservationStatusCancelled
		r.CancellationPenalty = penalty
		r.CancelledBy = cancelledBy
		r.CancellationReason = reason
		r.CancellationDate = &cancelledAt
	})
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{items: map[uuid.UUID]*entity.Room{}}
}

func (f *fakeRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	room, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	clone := *room
	return &clone, nil
}

func (f *fakeRoomRepo) FindByHotelID(ctx context.Context, hotelID uuid.UUID) ([]*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Room
	for _, room := range f.items {
		if room.HotelID == hotelID && room.IsActive {
			clone := *room
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeHotelRepo struct {
	items map[uuid.UUID]*entity.Hotel
}

func newFakeHotelRepo() *fakeHotelRepo {
	return &fakeHotelRepo{items: map[uuid.UUID]*entity.Hotel{}}
}

func (f *fakeHotelRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	hotel, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	clone := *hotel
	return &clone, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.items[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.items {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.items {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{items: map[string]*entity.Session{}}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *session
	f.items[session.Token.String()] = &clone
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.items[token]
	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	clone := *session
	return &clone, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, token)
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, session := range f.items {
		if session.UserID == userID {
			delete(f.items, token)
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	items    map[uuid.UUID]*entity.Invoice // keyed by reservation ID
	counters map[string]int64
	// createErr makes Create fail, simulating a billing outage.
	createErr error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		items:    map[uuid.UUID]*entity.Invoice{},
		counters: map[string]int64{},
	}
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.items[invoice.ReservationID]; exists {
		return apperrors.Conflict("invoice already exists for reservation")
	}
	clone := *invoice
	f.items[invoice.ReservationID] = &clone
	return nil
}

func (f *fakeInvoiceRepo) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice, ok := f.items[reservationID]
	if !ok {
		return nil, nil
	}
	clone := *invoice
	return &clone, nil
}

func (f *fakeInvoiceRepo) NextNumber(ctx context.Context, period string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[period]++
	return f.counters[period], nil
}

type fakeServiceChargeRepo struct {
	mu    sync.Mutex
	items []*entity.ServiceCharge
}

func newFakeServiceChargeRepo() *fakeServiceChargeRepo {
	return &fakeServiceChargeRepo{}
}

func (f *fakeServiceChargeRepo) Create(ctx context.Context, charge *entity.ServiceCharge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *charge
	f.items = append(f.items, &clone)
	return nil
}

func (f *fakeServiceChargeRepo) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ServiceCharge, error) {
	return f.find(reservationID, false)
}

func (f *fakeServiceChargeRepo) FindCompletedByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ServiceCharge, error) {
	return f.find(reservationID, true)
}

func (f *fakeServiceChargeRepo) find(reservationID uuid.UUID, completedOnly bool) ([]*entity.ServiceCharge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ServiceCharge
	for _, charge := range f.items {
		if charge.ReservationID != reservationID {
			continue
		}
		if completedOnly && charge.Status != entity.ServiceChargeStatusCompleted {
			continue
		}
		clone := *charge
		out = append(out, &clone)
	}
	return out, nil
}

type fakeCleaningTaskRepo struct {
	mu    sync.Mutex
	items []*entity.CleaningTask
	// createErr simulates a housekeeping system outage.
	createErr error
}

func newFakeCleaningTaskRepo() *fakeCleaningTaskRepo {
	return &fakeCleaningTaskRepo{}
}

func (f *fakeCleaningTaskRepo) Create(ctx context.Context, task *entity.CleaningTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	clone := *task
	f.items = append(f.items, &clone)
	return nil
}

func (f *fakeCleaningTaskRepo) FindOpenByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.CleaningTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.CleaningTask
	for _, task := range f.items {
		if task.RoomID == roomID && task.Status == entity.CleaningTaskStatusOpen {
			clone := *task
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (f *fakeNotifier) Send(ctx context.Context, notification Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, notification)
	return nil
}
