package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mi-wada/todo-api/internal/apperror"
	"github.com/mi-wada/todo-api/internal/model"
	"github.com/mi-wada/todo-api/internal/repository"
)

// TaskService implements the task use cases for an authenticated principal.
// Every operation is scoped by the owner's user ID; the service never sees
// (or leaks) another user's tasks.
type TaskService struct {
	tasks  repository.TaskRepository
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks repository.TaskRepository, logger *slog.Logger) *TaskService {
	return &TaskService{tasks: tasks, logger: logger}
}

// CreateTaskInput carries the raw, still-unvalidated request fields.
// Pointers distinguish "absent" from "empty": a missing title and an empty
// title produce different checks but the same TitleEmpty rejection, while a
// missing description is simply no description.
type CreateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Deadline    *string
}

// Create validates the input into domain values and persists a new task.
// Fields validate in declaration order; the first invalid one wins.
func (s *TaskService) Create(ctx context.Context, userID model.ID, in CreateTaskInput) (model.Task, error) {
	if in.Title == nil {
		return model.Task{}, apperror.Validation("TitleEmpty", "Title is empty")
	}
	title, err := model.NewTitle(*in.Title)
	if err != nil {
		return model.Task{}, err
	}

	var description *model.Description
	if in.Description != nil {
		d, err := model.NewDescription(*in.Description)
		if err != nil {
			return model.Task{}, err
		}
		description = &d
	}

	if in.Status == nil {
		return model.Task{}, apperror.Validation("StatusUnknown", "Status is unknown")
	}
	status, err := model.ParseStatus(*in.Status)
	if err != nil {
		return model.Task{}, err
	}

	var deadline *model.Deadline
	if in.Deadline != nil {
		d, err := model.NewDeadline(*in.Deadline)
		if err != nil {
			return model.Task{}, err
		}
		deadline = &d
	}

	task := model.NewTask(userID, title, description, status, deadline)
	if err := s.tasks.Create(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("service/task: creating task: %w", err)
	}

	s.logger.Info("task created",
		slog.String("taskID", task.ID.String()),
		slog.String("userID", userID.String()),
	)

	return task, nil
}

// Get returns one of userID's tasks, or apperror.ErrNotFound.
func (s *TaskService) Get(ctx context.Context, userID, taskID model.ID) (model.Task, error) {
	task, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, fmt.Errorf("service/task: getting task %s: %w", taskID, err)
	}
	return task, nil
}

// List returns all of userID's tasks in creation order.
func (s *TaskService) List(ctx context.Context, userID model.ID) ([]model.Task, error) {
	tasks, err := s.tasks.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/task: listing tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes one of userID's tasks. Absent tasks delete successfully —
// the operation is idempotent.
func (s *TaskService) Delete(ctx context.Context, userID, taskID model.ID) error {
	if err := s.tasks.Delete(ctx, userID, taskID); err != nil {
		return fmt.Errorf("service/task: deleting task %s: %w", taskID, err)
	}
	return nil
}
