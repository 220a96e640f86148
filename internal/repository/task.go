package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/taskpad/taskpad-go/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence operations. Every query is scoped
// to the owning user so one user's tasks are invisible to another.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task and sets the generated ID on the task struct.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// ListByOwner retrieves all tasks belonging to a user, newest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, userID int64) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByOwner retrieves a single task scoped to its owner. A task owned by
// another user is indistinguishable from a missing one.
func (r *TaskRepository) GetByOwner(ctx context.Context, taskID, userID int64) (*model.Task, error) {
	task := &model.Task{}
	if err := r.db.WithContext(ctx).First(task, "id = ? AND user_id = ?", taskID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// UpdateByOwner applies the given column changes to a task scoped to its
// owner and returns the updated row. MySQL reports zero affected rows for
// no-op updates, so existence comes from the follow-up read rather than
// RowsAffected.
func (r *TaskRepository) UpdateByOwner(ctx context.Context, taskID, userID int64, changes map[string]any) (*model.Task, error) {
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(changes).Error
	if err != nil {
		return nil, err
	}
	return r.GetByOwner(ctx, taskID, userID)
}

// DeleteByOwner removes a task scoped to its owner.
func (r *TaskRepository) DeleteByOwner(ctx context.Context, taskID, userID int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&model.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
