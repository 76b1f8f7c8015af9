package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/internal/data/repository"
	"hotel-reservations/internal/dto/request"
	"hotel-reservations/internal/dto/response"
	"hotel-reservations/pkg/apperrors"
	"hotel-reservations/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
	Create(ctx context.Context, actor Actor, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	List(ctx context.Context, actor Actor, req *request.ListReservationsRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	Get(ctx context.Context, actor Actor, reservationID string) (*response.ReservationResponse, error)
	Confirm(ctx context.Context, actor Actor, reservationID string) (*response.ReservationResponse, error)
	CheckIn(ctx context.Context, actor Actor, reservationID string, req *request.CheckInRequest) (*response.ReservationResponse, error)
	CheckOut(ctx context.Context, actor Actor, reservationID string) (*response.ReservationResponse, error)
	Cancel(ctx context.Context, actor Actor, reservationID string, req *request.CancelReservationRequest) (*response.ReservationResponse, error)

	// Staff-recorded ancillary charges; completed charges are billed at
	// checkout.
	AddServiceCharge(ctx context.Context, actor Actor, req *request.CreateServiceChargeRequest) (*response.ServiceChargeResponse, error)
}

type reservationService struct {
	repo     *repository.Repository
	policy   *ReservationPolicy
	checkout *CheckoutOrchestrator
	notify   NotificationSender
	log      *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	policy *ReservationPolicy,
	checkout *CheckoutOrchestrator,
	notify NotificationSender,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		repo:     repo,
		policy:   policy,
		checkout: checkout,
		notify:   notify,
		log:      log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	roomID, checkIn, checkOut, err := s.parseStay(req.RoomID, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	overlap, err := s.repo.Reservation.HasOverlap(ctx, roomID, checkIn, checkOut, nil)
	if err != nil {
		s.log.Error("Failed to check availability", zap.Error(err), zap.String("room_id", req.RoomID))
		return nil, fmt.Errorf("check availability: %w", err)
	}

	return &response.AvailabilityResponse{
		RoomID:       req.RoomID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Available:    !overlap,
	}, nil
}

func (s *reservationService) Create(ctx context.Context, actor Actor, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	roomID, checkIn, checkOut, err := s.parseStay(req.RoomID, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	// Check-in must not be in the past at creation time.
	if checkIn.Before(utils.Today()) {
		return nil, apperrors.Validation("check-in date cannot be in the past")
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", req.RoomID, err)
	}
	if room == nil {
		return nil, apperrors.NotFound("room %s not found", req.RoomID)
	}
	if !room.IsActive {
		return nil, apperrors.Validation("room %s is not available for booking", room.RoomNumber)
	}

	guestID, walkIn, err := s.resolveOccupant(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanCreate(actor, room.HotelID, guestID, walkIn != nil); err != nil {
		return nil, err
	}

	// Walk-ins start confirmed: there is no independent account to
	// confirm against. Everything else awaits staff confirmation.
	status := entity.ReservationStatusPending
	if walkIn != nil {
		status = entity.ReservationStatusConfirmed
	}

	var createdBy *uuid.UUID
	if actor.IsStaff() {
		staffID := actor.ID
		createdBy = &staffID
	}

	now := time.Now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:         utils.GenerateReservationCode(),
		HotelID:      room.HotelID,
		RoomID:       roomID,
		GuestID:      guestID,
		WalkIn:       walkIn,
		CreatedBy:    createdBy,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       status,
		Version:      0,
	}

	// The overlap predicate runs inside the same transaction as the
	// insert; a concurrent overlapping create gets a conflict.
	if err := s.repo.Reservation.CreateAtomic(ctx, reservation); err != nil {
		if !apperrors.IsConflict(err) {
			s.log.Error("Failed to create reservation",
				zap.Error(err),
				zap.String("room_id", req.RoomID),
				zap.String("code", reservation.Code),
			)
		}
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.String("room_id", roomID.String()),
		zap.String("status", string(status)),
		zap.Bool("walk_in", walkIn != nil),
	)

	go s.sendReservationNotice(reservation, "Reservation received",
		fmt.Sprintf("Your reservation %s for %s to %s has been received.",
			reservation.Code, req.CheckInDate, req.CheckOutDate))

	return response.ReservationToResponse(reservation, room.RoomNumber, nil), nil
}

// resolveOccupant applies the occupant-binding rules: a guest actor is
// always the occupant; staff name either a guest account or walk-in
// details, never both.
func (s *reservationService) resolveOccupant(ctx context.Context, actor Actor, req *request.CreateReservationRequest) (*uuid.UUID, *entity.WalkInDetails, error) {
	if req.GuestID != nil && req.WalkIn != nil {
		return nil, nil, apperrors.Validation("reservation cannot have both a guest account and walk-in details")
	}

	if actor.Role == entity.RoleGuest {
		if req.WalkIn != nil {
			return nil, nil, apperrors.Authorization("guests cannot create walk-in reservations")
		}
		guestID := actor.ID
		// A guest naming another account is rejected by the policy;
		// naming themselves is redundant but allowed.
		if req.GuestID != nil {
			parsed, err := uuid.Parse(*req.GuestID)
			if err != nil {
				return nil, nil, apperrors.Validation("invalid guest ID format %s", *req.GuestID)
			}
			guestID = parsed
		}
		return &guestID, nil, nil
	}

	// Staff path.
	if req.WalkIn != nil {
		if errs := utils.ValidateStruct(req.WalkIn); len(errs) > 0 {
			return nil, nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
		}
		return nil, &entity.WalkInDetails{
			Name:  req.WalkIn.Name,
			Phone: req.WalkIn.Phone,
			Email: req.WalkIn.Email,
		}, nil
	}

	if req.GuestID == nil {
		return nil, nil, apperrors.Validation("staff reservations require either a guest account or walk-in details")
	}

	guestID, err := uuid.Parse(*req.GuestID)
	if err != nil {
		return nil, nil, apperrors.Validation("invalid guest ID format %s", *req.GuestID)
	}

	guest, err := s.repo.User.FindByID(ctx, guestID)
	if err != nil {
		return nil, nil, fmt.Errorf("load guest %s: %w", guestID.String(), err)
	}
	if guest == nil || guest.Role != entity.RoleGuest {
		return nil, nil, apperrors.NotFound("guest account %s not found", guestID.String())
	}

	return &guestID, nil, nil
}

func (s *reservationService) List(ctx context.Context, actor Actor, req *request.ListReservationsRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter, err := s.buildFilter(req)
	if err != nil {
		return nil, err
	}

	// The role scope is applied last and cannot be widened by filters.
	filter, err = s.policy.ScopeFilter(actor, filter)
	if err != nil {
		return nil, err
	}

	reservations, err := s.repo.Reservation.List(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list reservations", zap.Error(err))
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	total, err := s.repo.Reservation.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count reservations", zap.Error(err))
		return nil, fmt.Errorf("count reservations: %w", err)
	}

	// Room numbers resolved once per distinct room.
	roomNumbers := map[uuid.UUID]string{}
	items := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		number, ok := roomNumbers[reservation.RoomID]
		if !ok {
			room, _ := s.repo.Room.FindByID(ctx, reservation.RoomID)
			if room != nil {
				number = room.RoomNumber
			}
			roomNumbers[reservation.RoomID] = number
		}
		items[i] = *response.ReservationToResponse(reservation, number, nil)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *reservationService) Get(ctx context.Context, actor Actor, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanView(actor, reservation); err != nil {
		return nil, err
	}

	invoice, err := s.repo.Invoice.FindByReservationID(ctx, reservation.ID)
	if err != nil {
		s.log.Error("Failed to load invoice for reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		invoice = nil
	}

	return response.ReservationToResponse(reservation, s.roomNumber(ctx, reservation.RoomID), invoice), nil
}

func (s *reservationService) Confirm(ctx context.Context, actor Actor, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanConfirm(actor, reservation); err != nil {
		return nil, err
	}

	if reservation.Status == entity.ReservationStatusConfirmed {
		return nil, apperrors.Conflict("reservation %s is already confirmed", reservation.Code)
	}
	if !reservation.Status.CanTransitionTo(entity.ReservationStatusConfirmed) {
		return nil, apperrors.Conflict("reservation %s is %s and cannot be confirmed", reservation.Code, reservation.Status)
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, reservation.ID, reservation.Version, entity.ReservationStatusConfirmed); err != nil {
		return nil, err
	}

	reservation.Status = entity.ReservationStatusConfirmed
	reservation.Version++

	s.log.Info("Reservation confirmed",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
	)

	go s.sendReservationNotice(reservation, "Reservation confirmed",
		fmt.Sprintf("Your reservation %s has been confirmed.", reservation.Code))

	return response.ReservationToResponse(reservation, s.roomNumber(ctx, reservation.RoomID), nil), nil
}

func (s *reservationService) CheckIn(ctx context.Context, actor Actor, reservationID string, req *request.CheckInRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Check-in validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	reservation, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanCheckIn(actor, reservation); err != nil {
		return nil, err
	}

	if reservation.Status == entity.ReservationStatusCheckedIn {
		return nil, apperrors.Conflict("reservation %s is already checked in", reservation.Code)
	}
	if !reservation.Status.CanTransitionTo(entity.ReservationStatusCheckedIn) {
		return nil, apperrors.Conflict("reservation %s is %s and cannot be checked in", reservation.Code, reservation.Status)
	}

	details := &entity.CheckInDetails{
		GuestName:      req.GuestName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Phone:          req.Phone,
		Country:        req.Country,
		CheckedInAt:    time.Now(),
	}

	if err := s.repo.Reservation.UpdateCheckIn(ctx, reservation.ID, reservation.Version, details); err != nil {
		return nil, err
	}

	reservation.Status = entity.ReservationStatusCheckedIn
	reservation.CheckIn = details
	reservation.Version++

	s.log.Info("Reservation checked in",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.String("guest_name", req.GuestName),
	)

	return response.ReservationToResponse(reservation, s.roomNumber(ctx, reservation.RoomID), nil), nil
}

func (s *reservationService) CheckOut(ctx context.Context, actor Actor, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanCheckOut(actor, reservation); err != nil {
		return nil, err
	}

	reservation, invoice, err := s.checkout.CheckOut(ctx, reservation, actor)
	if err != nil {
		return nil, err
	}

	return response.ReservationToResponse(reservation, s.roomNumber(ctx, reservation.RoomID), invoice), nil
}

func (s *reservationService) Cancel(ctx context.Context, actor Actor, reservationID string, req *request.CancelReservationRequest) (*response.ReservationResponse, error) {
	if req != nil {
		if errs := utils.ValidateStruct(req); len(errs) > 0 {
			return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
		}
	}

	reservation, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanCancel(actor, reservation); err != nil {
		return nil, err
	}

	if reservation.Status == entity.ReservationStatusCancelled {
		return nil, apperrors.Conflict("reservation %s is already cancelled", reservation.Code)
	}
	if !reservation.Status.CanTransitionTo(entity.ReservationStatusCancelled) {
		return nil, apperrors.Conflict("reservation %s is %s and cannot be cancelled", reservation.Code, reservation.Status)
	}

	now := time.Now()

	// Penalty, actor, and reason are recorded for staff-driven
	// cancellations only.
	var penalty *float64
	var reason *string
	var cancelledBy *uuid.UUID
	if actor.IsStaff() {
		staffID := actor.ID
		cancelledBy = &staffID
		if req != nil {
			penalty = req.Penalty
			reason = req.Reason
		}
	}

	if err := s.repo.Reservation.UpdateCancellation(ctx, reservation.ID, reservation.Version, penalty, cancelledBy, reason, now); err != nil {
		return nil, err
	}

	reservation.Status = entity.ReservationStatusCancelled
	reservation.CancellationPenalty = penalty
	reservation.CancelledBy = cancelledBy
	reservation.CancellationReason = reason
	reservation.CancellationDate = &now
	reservation.Version++

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.Bool("by_staff", actor.IsStaff()),
	)

	go s.sendReservationNotice(reservation, "Reservation cancelled",
		fmt.Sprintf("Your reservation %s has been cancelled.", reservation.Code))

	return response.ReservationToResponse(reservation, s.roomNumber(ctx, reservation.RoomID), nil), nil
}

func (s *reservationService) AddServiceCharge(ctx context.Context, actor Actor, req *request.CreateServiceChargeRequest) (*response.ServiceChargeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !actor.IsStaff() {
		return nil, apperrors.Authorization("staff role required to record service charges")
	}

	reservation, err := s.loadReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.hotelScope(actor, reservation.HotelID); err != nil {
		return nil, err
	}

	// Charges accrue against an occupied room.
	if reservation.Status != entity.ReservationStatusCheckedIn {
		return nil, apperrors.Conflict("reservation %s is %s, service charges require a checked-in reservation", reservation.Code, reservation.Status)
	}

	now := time.Now()
	charge := &entity.ServiceCharge{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReservationID: reservation.ID,
		Description:   req.Description,
		Amount:        req.Amount,
		Status:        entity.ServiceChargeStatusCompleted,
	}

	if err := s.repo.ServiceCharge.Create(ctx, charge); err != nil {
		s.log.Error("Failed to record service charge",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return nil, fmt.Errorf("record service charge: %w", err)
	}

	s.log.Info("Service charge recorded",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("description", req.Description),
		zap.Float64("amount", req.Amount),
	)

	chargeResp := response.ServiceChargeToResponse(charge)
	return &chargeResp, nil
}

// ==================== HELPER METHODS ====================

func (s *reservationService) loadReservation(ctx context.Context, reservationID string) (*entity.Reservation, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, apperrors.Validation("invalid reservation ID format %s", reservationID)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load reservation %s: %w", reservationID, err)
	}
	if reservation == nil {
		return nil, apperrors.NotFound("reservation %s not found", reservationID)
	}

	return reservation, nil
}

func (s *reservationService) parseStay(roomIDStr, checkInStr, checkOutStr string) (uuid.UUID, time.Time, time.Time, error) {
	roomID, err := uuid.Parse(roomIDStr)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, apperrors.Validation("invalid room ID format %s", roomIDStr)
	}

	checkIn, err := utils.ParseDate(checkInStr)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, apperrors.Validation("invalid check-in date %s", checkInStr)
	}

	checkOut, err := utils.ParseDate(checkOutStr)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, apperrors.Validation("invalid check-out date %s", checkOutStr)
	}

	if !checkOut.After(checkIn) {
		return uuid.Nil, time.Time{}, time.Time{}, apperrors.Validation("check-out date must be after check-in date")
	}

	return roomID, checkIn, checkOut, nil
}

func (s *reservationService) roomNumber(ctx context.Context, roomID uuid.UUID) string {
	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil || room == nil {
		return ""
	}
	return room.RoomNumber
}

func (s *reservationService) buildFilter(req *request.ListReservationsRequest) (repository.ReservationFilter, error) {
	var filter repository.ReservationFilter

	if req.Status != "" {
		status := entity.ReservationStatus(req.Status)
		filter.Status = &status
	}
	if req.RoomID != "" {
		roomID, err := uuid.Parse(req.RoomID)
		if err != nil {
			return filter, apperrors.Validation("invalid room ID format %s", req.RoomID)
		}
		filter.RoomID = &roomID
	}
	if req.GuestID != "" {
		guestID, err := uuid.Parse(req.GuestID)
		if err != nil {
			return filter, apperrors.Validation("invalid guest ID format %s", req.GuestID)
		}
		filter.GuestID = &guestID
	}
	if req.DateFrom != "" {
		from, err := utils.ParseDate(req.DateFrom)
		if err != nil {
			return filter, apperrors.Validation("invalid date_from %s", req.DateFrom)
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := utils.ParseDate(req.DateTo)
		if err != nil {
			return filter, apperrors.Validation("invalid date_to %s", req.DateTo)
		}
		filter.DateTo = &to
	}

	return filter, nil
}

// sendReservationNotice delivers a fire-and-forget message to the
// occupant. Walk-ins without an email address are skipped.
func (s *reservationService) sendReservationNotice(reservation *entity.Reservation, subject, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var to string
	if reservation.GuestID != nil {
		guest, err := s.repo.User.FindByID(ctx, *reservation.GuestID)
		if err != nil || guest == nil {
			return
		}
		to = guest.Email
	} else if reservation.WalkIn != nil && reservation.WalkIn.Email != nil {
		to = *reservation.WalkIn.Email
	}

	if to == "" {
		return
	}

	if err := s.notify.Send(ctx, Notification{To: to, Subject: subject, Body: body}); err != nil {
		s.log.Warn("Failed to send reservation notice",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("subject", subject),
		)
	}
}
