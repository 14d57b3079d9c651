package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mi-wada/todo-api/internal/apperror"
	"github.com/mi-wada/todo-api/internal/auth"
	"github.com/mi-wada/todo-api/internal/model"
	"github.com/mi-wada/todo-api/internal/service"
)

// TaskHandler exposes task CRUD for the authenticated principal. All routes
// sit behind auth.RequireAuth, so the principal is always present in the
// request context; the handler trusts the gate's attachment and never
// re-validates the token.
type TaskHandler struct {
	tasks  *service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// taskPayload is the request body for task creation. Every field is a
// pointer: title and status are required (rejected downstream when absent),
// description and deadline are genuinely optional.
type taskPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Deadline    *string `json:"deadline"`
}

// HandleCreate creates a task for the authenticated user.
//
// HTTP: POST /tasks
// Response: 201 task | 400 {code, message}
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// Only reachable if the route is wired without the middleware.
		writeError(w, apperror.AuthenticationFailed())
		return
	}

	var payload taskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperror.Validation("InvalidRequestBody", "Request body is not valid JSON"))
		return
	}

	task, err := h.tasks.Create(r.Context(), user.ID, service.CreateTaskInput{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		Deadline:    payload.Deadline,
	})
	if err != nil {
		h.logger.Debug("task create failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// HandleList returns all of the authenticated user's tasks.
//
// HTTP: GET /tasks
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.AuthenticationFailed())
		return
	}

	tasks, err := h.tasks.List(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("task list failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// HandleGet returns a single task.
//
// HTTP: GET /tasks/{task_id}
// Response: 200 task | 404 {code, message}
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.AuthenticationFailed())
		return
	}

	taskID := model.RestoreID(chi.URLParam(r, "task_id"))
	task, err := h.tasks.Get(r.Context(), user.ID, taskID)
	if err != nil {
		h.logger.Debug("task get failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// HandleDelete removes a task. Deleting an absent task still answers 204 —
// the end state is what the client asked for.
//
// HTTP: DELETE /tasks/{task_id}
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.AuthenticationFailed())
		return
	}

	taskID := model.RestoreID(chi.URLParam(r, "task_id"))
	if err := h.tasks.Delete(r.Context(), user.ID, taskID); err != nil {
		h.logger.Error("task delete failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
