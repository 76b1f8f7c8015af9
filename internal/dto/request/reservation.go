package request

type WalkInRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=100"`
	Phone string  `json:"phone" validate:"required,min=7,max=20"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// CreateReservationRequest books a room for a date range. Exactly one
// of GuestID or WalkIn identifies the occupant; a guest caller may omit
// both (the reservation binds to the caller).
type CreateReservationRequest struct {
	RoomID       string         `json:"room_id" validate:"required,uuid4"`
	GuestID      *string        `json:"guest_id,omitempty" validate:"omitempty,uuid4"`
	WalkIn       *WalkInRequest `json:"walk_in,omitempty"`
	CheckInDate  string         `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string         `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

// CheckInRequest carries the identity fields captured at the desk.
type CheckInRequest struct {
	GuestName      string `json:"guest_name" validate:"required,min=2,max=100"`
	DocumentType   string `json:"document_type" validate:"required,oneof=passport id_card driving_license"`
	DocumentNumber string `json:"document_number" validate:"required,min=3,max=50"`
	Phone          string `json:"phone" validate:"required,min=7,max=20"`
	Country        string `json:"country" validate:"required,min=2,max=60"`
}

type CancelReservationRequest struct {
	Penalty *float64 `json:"penalty,omitempty" validate:"omitempty,min=0"`
	Reason  *string  `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ListReservationsRequest filters are intersected with the caller's
// role scope; they can narrow it, never widen it.
type ListReservationsRequest struct {
	Status   string `json:"status" validate:"omitempty,oneof=pending confirmed checkedin completed cancelled"`
	RoomID   string `json:"room_id" validate:"omitempty,uuid4"`
	GuestID  string `json:"guest_id" validate:"omitempty,uuid4"`
	DateFrom string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	PaginatedRequest
}

type AvailabilityRequest struct {
	RoomID       string `json:"room_id" validate:"required,uuid4"`
	CheckInDate  string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

type CreateServiceChargeRequest struct {
	ReservationID string  `json:"reservation_id" validate:"required,uuid4"`
	Description   string  `json:"description" validate:"required,min=2,max=200"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}
