package usecase

import (
	"context"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/internal/data/repository"

	"github.com/google/uuid"
)

// roomCatalog adapts the room/hotel repositories to the RoomCatalog
// collaborator interface.
type roomCatalog struct {
	rooms  repository.RoomRepository
	hotels repository.HotelRepository
}

func NewRoomCatalog(rooms repository.RoomRepository, hotels repository.HotelRepository) RoomCatalog {
	return &roomCatalog{
		rooms:  rooms,
		hotels: hotels,
	}
}

func (c *roomCatalog) GetRoom(ctx context.Context, roomID uuid.UUID) (*entity.Room, error) {
	return c.rooms.FindByID(ctx, roomID)
}

func (c *roomCatalog) GetHotel(ctx context.Context, hotelID uuid.UUID) (*entity.Hotel, error) {
	return c.hotels.FindByID(ctx, hotelID)
}
