package service

import (
	"context"
	"errors"
	"strings"

	"github.com/taskpad/taskpad-go/internal/model"
	"github.com/taskpad/taskpad-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("Title is required")
	ErrTitleEmpty    = errors.New("Title cannot be empty")
	ErrInvalidStatus = errors.New("Invalid status value")
	// ErrTaskNotFound covers both a missing task and a task owned by someone
	// else; callers never learn which of the two happened.
	ErrTaskNotFound = errors.New("Task not found or access denied")
)

// TaskService handles task business logic for a single authenticated owner.
type TaskService struct {
	repo *repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// List returns all of the caller's tasks, newest first.
func (s *TaskService) List(ctx context.Context, userID int64) (model.TaskListResponse, error) {
	tasks, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return model.TaskListResponse{}, err
	}

	return model.TaskListResponse{
		Tasks: tasks,
		Total: len(tasks),
	}, nil
}

// Create validates and persists a new task owned by the caller.
func (s *TaskService) Create(ctx context.Context, userID int64, req model.CreateTaskRequest) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := model.StatusPending
	if req.Status != "" {
		status = model.TaskStatus(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	task := &model.Task{
		Title:       title,
		Description: normalizeDescription(req.Description),
		Status:      status,
		UserID:      userID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Update applies the supplied fields to one of the caller's tasks. Fields
// absent from the request are left untouched; an explicit null clears the
// description. An update carrying no fields returns the task as stored.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, req model.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.repo.GetByOwner(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	changes := make(map[string]any)

	if req.Title.Set {
		title := strings.TrimSpace(req.Title.String())
		if title == "" {
			return nil, ErrTitleEmpty
		}
		changes["title"] = title
	}

	if req.Description.Set {
		changes["description"] = normalizeDescription(req.Description.Value)
	}

	if req.Status.Set {
		status := model.TaskStatus(req.Status.String())
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		changes["status"] = status
	}

	if len(changes) == 0 {
		return task, nil
	}

	updated, err := s.repo.UpdateByOwner(ctx, taskID, userID, changes)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return updated, nil
}

// Delete permanently removes one of the caller's tasks.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	err := s.repo.DeleteByOwner(ctx, taskID, userID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}

// normalizeDescription trims a supplied description and collapses an
// empty result to null.
func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
