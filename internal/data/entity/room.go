package entity

import "github.com/google/uuid"

type Room struct {
	Base
	HotelID    uuid.UUID `db:"hotel_id"`
	RoomNumber string    `db:"room_number"` // 101, 102, 201A, etc.
	RoomType   string    `db:"room_type"`   // single, double, suite
	Rate       float64   `db:"rate"`        // per night
	IsActive   bool      `db:"is_active"`
}
