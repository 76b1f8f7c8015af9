package entity

import "github.com/google/uuid"

type CleaningTaskStatus string

const (
	CleaningTaskStatusOpen CleaningTaskStatus = "open"
	CleaningTaskStatusDone CleaningTaskStatus = "done"
)

type CleaningTaskType string

const (
	CleaningTaskTypePostCheckout CleaningTaskType = "post_checkout"
)

type CleaningTask struct {
	BaseSimple
	HotelID       uuid.UUID          `db:"hotel_id"`
	RoomID        uuid.UUID          `db:"room_id"`
	ReservationID uuid.UUID          `db:"reservation_id"`
	TaskType      CleaningTaskType   `db:"task_type"`
	Status        CleaningTaskStatus `db:"status"`
}
