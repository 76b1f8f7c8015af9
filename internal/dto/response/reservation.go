package response

import (
	"time"

	"hotel-reservations/internal/data/entity"
)

type WalkInResponse struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

type CheckInDetailsResponse struct {
	GuestName      string    `json:"guest_name"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Phone          string    `json:"phone"`
	Country        string    `json:"country"`
	CheckedInAt    time.Time `json:"checked_in_at"`
}

type CheckOutDetailsResponse struct {
	CheckedOutAt time.Time `json:"checked_out_at"`
	ProcessedBy  string    `json:"processed_by"`
}

type CancellationResponse struct {
	Penalty     *float64   `json:"penalty,omitempty"`
	CancelledBy *string    `json:"cancelled_by,omitempty"`
	Reason      *string    `json:"reason,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

type ReservationResponse struct {
	ID           string                   `json:"id"`
	Code         string                   `json:"code"`
	HotelID      string                   `json:"hotel_id"`
	RoomID       string                   `json:"room_id"`
	RoomNumber   string                   `json:"room_number,omitempty"`
	GuestID      *string                  `json:"guest_id,omitempty"`
	WalkIn       *WalkInResponse          `json:"walk_in,omitempty"`
	CreatedBy    *string                  `json:"created_by,omitempty"`
	CheckInDate  string                   `json:"check_in_date"`
	CheckOutDate string                   `json:"check_out_date"`
	Nights       int                      `json:"nights"`
	Status       entity.ReservationStatus `json:"status"`
	CheckIn      *CheckInDetailsResponse  `json:"check_in,omitempty"`
	CheckOut     *CheckOutDetailsResponse `json:"check_out,omitempty"`
	Cancellation *CancellationResponse    `json:"cancellation,omitempty"`
	Invoice      *InvoiceResponse         `json:"invoice,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
}

type AvailabilityResponse struct {
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Available    bool   `json:"available"`
}

// ReservationToResponse converts the entity; roomNumber and invoice are
// optional enrichments.
func ReservationToResponse(reservation *entity.Reservation, roomNumber string, invoice *entity.Invoice) *ReservationResponse {
	resp := &ReservationResponse{
		ID:           reservation.ID.String(),
		Code:         reservation.Code,
		HotelID:      reservation.HotelID.String(),
		RoomID:       reservation.RoomID.String(),
		RoomNumber:   roomNumber,
		CheckInDate:  reservation.CheckInDate.Format("2006-01-02"),
		CheckOutDate: reservation.CheckOutDate.Format("2006-01-02"),
		Nights:       reservation.Nights(),
		Status:       reservation.Status,
		CreatedAt:    reservation.CreatedAt,
	}

	if reservation.GuestID != nil {
		guestID := reservation.GuestID.String()
		resp.GuestID = &guestID
	}

	if reservation.CreatedBy != nil {
		createdBy := reservation.CreatedBy.String()
		resp.CreatedBy = &createdBy
	}

	if reservation.WalkIn != nil {
		resp.WalkIn = &WalkInResponse{
			Name:  reservation.WalkIn.Name,
			Phone: reservation.WalkIn.Phone,
			Email: reservation.WalkIn.Email,
		}
	}

	if reservation.CheckIn != nil {
		resp.CheckIn = &CheckInDetailsResponse{
			GuestName:      reservation.CheckIn.GuestName,
			DocumentType:   reservation.CheckIn.DocumentType,
			DocumentNumber: reservation.CheckIn.DocumentNumber,
			Phone:          reservation.CheckIn.Phone,
			Country:        reservation.CheckIn.Country,
			CheckedInAt:    reservation.CheckIn.CheckedInAt,
		}
	}

	if reservation.CheckOut != nil {
		resp.CheckOut = &CheckOutDetailsResponse{
			CheckedOutAt: reservation.CheckOut.CheckedOutAt,
			ProcessedBy:  reservation.CheckOut.ProcessedBy.String(),
		}
	}

	if reservation.Status == entity.ReservationStatusCancelled {
		cancellation := &CancellationResponse{
			Penalty: reservation.CancellationPenalty,
			Reason:  reservation.CancellationReason,
			Date:    reservation.CancellationDate,
		}
		if reservation.CancelledBy != nil {
			cancelledBy := reservation.CancelledBy.String()
			cancellation.CancelledBy = &cancelledBy
		}
		resp.Cancellation = cancellation
	}

	if invoice != nil {
		invoiceResp := InvoiceToResponse(invoice)
		resp.Invoice = &invoiceResp
	}

	return resp
}
