// Package repository declares the storage interfaces consumed by the service
// layer and the authentication middleware. Implementations live in
// subpackages (sqlite); consumers depend only on these interfaces, so tests
// can substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/mi-wada/todo-api/internal/model"
)

// UserRepository stores registered users.
//
// Absent rows surface as apperror.ErrNotFound and duplicate emails as
// apperror.ErrConflict; any other failure is an internal storage error.
type UserRepository interface {
	// Create persists a new user together with their password digest.
	Create(ctx context.Context, user model.User, hash model.PasswordHash) error
	// GetByID returns the user with the given ID.
	GetByID(ctx context.Context, id model.ID) (model.User, error)
	// GetByEmail returns the user with the given email and their stored
	// password digest. The digest is returned separately so that only the
	// login path ever sees it.
	GetByEmail(ctx context.Context, email model.Email) (model.User, model.PasswordHash, error)
}

// TaskRepository stores tasks, always scoped to their owner: every operation
// takes the owner's user ID and never returns another user's rows.
type TaskRepository interface {
	Create(ctx context.Context, task model.Task) error
	GetByID(ctx context.Context, userID, taskID model.ID) (model.Task, error)
	List(ctx context.Context, userID model.ID) ([]model.Task, error)
	Delete(ctx context.Context, userID, taskID model.ID) error
}
