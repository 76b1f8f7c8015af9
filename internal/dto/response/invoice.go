package response

import (
	"time"

	"hotel-reservations/internal/data/entity"
)

type InvoiceResponse struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	Number        string    `json:"number"`
	RoomCharge    float64   `json:"room_charge"`
	ServiceCharge float64   `json:"service_charge"`
	TaxRate       float64   `json:"tax_rate"`
	TaxAmount     float64   `json:"tax_amount"`
	Total         float64   `json:"total"`
	BilledTo      string    `json:"billed_to"`
	IssuedBy      string    `json:"issued_by"`
	CreatedAt     time.Time `json:"created_at"`
}

type ServiceChargeResponse struct {
	ID            string                     `json:"id"`
	ReservationID string                     `json:"reservation_id"`
	Description   string                     `json:"description"`
	Amount        float64                    `json:"amount"`
	Status        entity.ServiceChargeStatus `json:"status"`
	CreatedAt     time.Time                  `json:"created_at"`
}

func InvoiceToResponse(invoice *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            invoice.ID.String(),
		ReservationID: invoice.ReservationID.String(),
		Number:        invoice.Number,
		RoomCharge:    invoice.RoomCharge,
		ServiceCharge: invoice.ServiceCharge,
		TaxRate:       invoice.TaxRate,
		TaxAmount:     invoice.TaxAmount,
		Total:         invoice.Total,
		BilledTo:      invoice.BilledTo,
		IssuedBy:      invoice.IssuedBy,
		CreatedAt:     invoice.CreatedAt,
	}
}

func ServiceChargeToResponse(charge *entity.ServiceCharge) ServiceChargeResponse {
	return ServiceChargeResponse{
		ID:            charge.ID.String(),
		ReservationID: charge.ReservationID.String(),
		Description:   charge.Description,
		Amount:        charge.Amount,
		Status:        charge.Status,
		CreatedAt:     charge.CreatedAt,
	}
}
