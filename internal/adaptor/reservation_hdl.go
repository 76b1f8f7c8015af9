package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"hotel-reservations/internal/dto/request"
	"hotel-reservations/internal/usecase"
	"hotel-reservations/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CheckAvailability handles GET /api/availability (public)
func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.AvailabilityRequest{
		RoomID:       query.Get("room_id"),
		CheckInDate:  query.Get("check_in_date"),
		CheckOutDate: query.Get("check_out_date"),
	}

	availability, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// CreateReservation handles POST /api/reservations (protected)
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// ListReservations handles GET /api/reservations (protected)
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := request.ListReservationsRequest{
		Status:   query.Get("status"),
		RoomID:   query.Get("room_id"),
		GuestID:  query.Get("guest_id"),
		DateFrom: query.Get("date_from"),
		DateTo:   query.Get("date_to"),
	}
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	reservations, err := h.service.List(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// GetReservation handles GET /api/reservations/{id} (protected)
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")

	reservation, err := h.service.Get(r.Context(), actor, reservationID)
	if err != nil {
		writeServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// ConfirmReservation handles PUT /api/reservations/{id}/confirm (staff)
func (h *ReservationHandler) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")

	reservation, err := h.service.Confirm(r.Context(), actor, reservationID)
	if err != nil {
		writeServiceError(w, h.log, err, "confirm reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// CheckInReservation handles PUT /api/reservations/{id}/checkin (protected)
func (h *ReservationHandler) CheckInReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")

	var req request.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.CheckIn(r.Context(), actor, reservationID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "check in reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// CheckOutReservation handles PUT /api/reservations/{id}/checkout (protected)
func (h *ReservationHandler) CheckOutReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")

	reservation, err := h.service.CheckOut(r.Context(), actor, reservationID)
	if err != nil {
		writeServiceError(w, h.log, err, "check out reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// CancelReservation handles PUT /api/reservations/{id}/cancel (protected)
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")

	// The body is optional: guests cancel without penalty metadata.
	var req request.CancelReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.Cancel(r.Context(), actor, reservationID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// AddServiceCharge handles POST /api/reservations/{id}/charges (staff)
func (h *ReservationHandler) AddServiceCharge(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateServiceChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	req.ReservationID = chi.URLParam(r, "id")

	charge, err := h.service.AddServiceCharge(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add service charge")
		return
	}

	utils.ResponseCreated(w, "success", charge)
}
