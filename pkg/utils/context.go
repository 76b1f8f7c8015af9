package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	RoleKey    contextKey = "role"
	HotelIDKey contextKey = "hotel_id"
	TokenKey   contextKey = "token"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

// GetHotelIDFromContext returns the staff hotel assignment, if any.
func GetHotelIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	hotelIDVal := ctx.Value(HotelIDKey)
	if hotelIDVal == nil {
		return uuid.Nil, false
	}

	hotelIDStr, ok := hotelIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	hotelID, err := uuid.Parse(hotelIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return hotelID, true
}

// SetUserContext stores the authenticated actor on the context. hotelID
// is nil for guests and unscoped staff.
func SetUserContext(ctx context.Context, userID uuid.UUID, role string, hotelID *uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	if hotelID != nil {
		ctx = context.WithValue(ctx, HotelIDKey, hotelID.String())
	}
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
