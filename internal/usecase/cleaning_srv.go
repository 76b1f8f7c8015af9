package usecase

import (
	"context"
	"time"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cleaningDispatcher implements the CleaningDispatcher collaborator
// over the cleaning-task repository.
type cleaningDispatcher struct {
	tasks repository.CleaningTaskRepository
	log   *zap.Logger
}

func NewCleaningDispatcher(tasks repository.CleaningTaskRepository, log *zap.Logger) CleaningDispatcher {
	return &cleaningDispatcher{
		tasks: tasks,
		log:   log.With(zap.String("service", "cleaning")),
	}
}

func (d *cleaningDispatcher) CreatePostCheckoutTask(ctx context.Context, hotelID, reservationID, roomID uuid.UUID) error {
	task := &entity.CleaningTask{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		HotelID:       hotelID,
		RoomID:        roomID,
		ReservationID: reservationID,
		TaskType:      entity.CleaningTaskTypePostCheckout,
		Status:        entity.CleaningTaskStatusOpen,
	}

	if err := d.tasks.Create(ctx, task); err != nil {
		return err
	}

	d.log.Info("Post-checkout cleaning task dispatched",
		zap.String("room_id", roomID.String()),
		zap.String("reservation_id", reservationID.String()),
	)

	return nil
}
