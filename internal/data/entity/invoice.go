package entity

import "github.com/google/uuid"

type Invoice struct {
	BaseSimple
	ReservationID uuid.UUID `db:"reservation_id"`
	Number        string    `db:"number"` // INV-YYYYMM-NNNNN, monotonic per period
	RoomCharge    float64   `db:"room_charge"`
	ServiceCharge float64   `db:"service_charge"`
	TaxRate       float64   `db:"tax_rate"`
	TaxAmount     float64   `db:"tax_amount"`
	Total         float64   `db:"total"`
	BilledTo      string    `db:"billed_to"`
	IssuedBy      string    `db:"issued_by"`
}
