package repository

import (
	"context"
	"fmt"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CleaningTaskRepository interface {
	Create(ctx context.Context, task *entity.CleaningTask) error
	FindOpenByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.CleaningTask, error)
}

type cleaningTaskRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCleaningTaskRepository(db database.PgxIface, log *zap.Logger) CleaningTaskRepository {
	return &cleaningTaskRepository{
		db:  db,
		log: log.With(zap.String("repository", "cleaning_task")),
	}
}

func (r *cleaningTaskRepository) Create(ctx context.Context, task *entity.CleaningTask) error {
	query := `
		INSERT INTO cleaning_tasks (id, hotel_id, room_id, reservation_id, task_type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		task.ID,
		task.HotelID,
		task.RoomID,
		task.ReservationID,
		task.TaskType,
		task.Status,
		task.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create cleaning task",
			zap.Error(err),
			zap.String("room_id", task.RoomID.String()),
		)
		return fmt.Errorf("create cleaning task for room %s: %w", task.RoomID.String(), err)
	}

	return nil
}

func (r *cleaningTaskRepository) FindOpenByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.CleaningTask, error) {
	query := `
		SELECT id, hotel_id, room_id, reservation_id, task_type, status, created_at
		FROM cleaning_tasks
		WHERE room_id = $1 AND status = 'open'
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to find cleaning tasks",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find cleaning tasks for room %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	var tasks []*entity.CleaningTask
	for rows.Next() {
		var task entity.CleaningTask
		err := rows.Scan(
			&task.ID,
			&task.HotelID,
			&task.RoomID,
			&task.ReservationID,
			&task.TaskType,
			&task.Status,
			&task.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan cleaning task row", zap.Error(err))
			return nil, fmt.Errorf("scan cleaning task row: %w", err)
		}
		tasks = append(tasks, &task)
	}

	return tasks, nil
}
