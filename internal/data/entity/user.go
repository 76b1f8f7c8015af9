package entity

import "github.com/google/uuid"

type UserRole string

const (
	RoleGuest     UserRole = "guest"
	RoleFrontDesk UserRole = "frontdesk"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) IsStaff() bool {
	return r == RoleFrontDesk || r == RoleAdmin
}

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	// HotelID scopes frontdesk staff to their assigned hotel. Nil for
	// guests and admins.
	HotelID  *uuid.UUID `db:"hotel_id"`
	IsActive bool       `db:"is_active"`
}
