package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskpad/taskpad-go/internal/middleware"
	"github.com/taskpad/taskpad-go/internal/model"
	"github.com/taskpad/taskpad-go/internal/service"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// HandleListTasks handles GET /api/tasks requests.
func (h *TaskHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("User not authenticated"))
		return
	}

	resp, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("list tasks failed", "error", err, "user_id", identity.UserID)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCreateTask handles POST /api/tasks requests.
func (h *TaskHandler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("User not authenticated"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request body"))
		return
	}

	task, err := h.service.Create(r.Context(), identity.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			slog.Error("create task failed", "error", err, "user_id", identity.UserID)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// HandleUpdateTask handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("User not authenticated"))
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid task ID"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request body"))
		return
	}

	task, err := h.service.Update(r.Context(), identity.UserID, taskID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrTitleEmpty), errors.Is(err, service.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			slog.Error("update task failed", "error", err, "user_id", identity.UserID, "task_id", taskID)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// HandleDeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("User not authenticated"))
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid task ID"))
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, taskID); err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			slog.Error("delete task failed", "error", err, "user_id", identity.UserID, "task_id", taskID)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Task deleted successfully"})
}

func parseTaskID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
