package entity

import "github.com/google/uuid"

type ServiceChargeStatus string

const (
	ServiceChargeStatusPending   ServiceChargeStatus = "pending"
	ServiceChargeStatusCompleted ServiceChargeStatus = "completed"
	ServiceChargeStatusCancelled ServiceChargeStatus = "cancelled"
)

// ServiceCharge is an ancillary charge (room service, laundry, minibar)
// tied to a reservation. Only completed charges are billed at checkout.
type ServiceCharge struct {
	Base
	ReservationID uuid.UUID           `db:"reservation_id"`
	Description   string              `db:"description"`
	Amount        float64             `db:"amount"`
	Status        ServiceChargeStatus `db:"status"`
}
