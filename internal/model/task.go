package model

import "time"

// TaskStatus is the lifecycle state of a task. Tasks toggle freely between
// the two states; there is no terminal state.
type TaskStatus string

const (
	StatusPending   TaskStatus = "PENDING"
	StatusCompleted TaskStatus = "COMPLETED"
)

// Valid reports whether s is one of the two known statuses.
func (s TaskStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task represents a single task owned by exactly one user. The owner is set
// at creation and never changes.
type Task struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `gorm:"size:16;not null;default:PENDING" json:"status"`
	UserID      int64      `gorm:"index;not null" json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// CreateTaskRequest represents a task creation request. Status defaults to
// PENDING when omitted.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// UpdateTaskRequest represents a partial task update. Only fields present in
// the request body are applied; see OptionalString.
type UpdateTaskRequest struct {
	Title       OptionalString `json:"title"`
	Description OptionalString `json:"description"`
	Status      OptionalString `json:"status"`
}

// TaskListResponse wraps a task listing with its total count.
type TaskListResponse struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
