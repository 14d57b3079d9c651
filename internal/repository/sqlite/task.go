package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mi-wada/todo-api/internal/apperror"
	"github.com/mi-wada/todo-api/internal/model"
	"github.com/mi-wada/todo-api/internal/repository"
)

// compile-time check that *DB implements repository.TaskRepository
var _ repository.TaskRepository = (*DB)(nil)

// Deadlines are stored as RFC 3339 text in UTC. RFC3339Nano keeps
// sub-second precision through a round trip.
const deadlineLayout = time.RFC3339Nano

// Create persists a new task.
func (db *DB) Create(ctx context.Context, task model.Task) error {
	var description sql.NullString
	if task.Description != nil {
		description = sql.NullString{String: task.Description.String(), Valid: true}
	}
	var deadline sql.NullString
	if task.Deadline != nil {
		deadline = sql.NullString{String: task.Deadline.Time().Format(deadlineLayout), Valid: true}
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, status, deadline)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID.String(),
		task.UserID.String(),
		task.Title.String(),
		description,
		task.Status.String(),
		deadline,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting task %s: %w", task.ID, err)
	}
	return nil
}

// GetByID retrieves one of userID's tasks. Another user's task is
// indistinguishable from an absent one: both are apperror.ErrNotFound.
func (db *DB) GetByID(ctx context.Context, userID, taskID model.ID) (model.Task, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, status, deadline
		 FROM tasks WHERE user_id = ? AND id = ?`,
		userID.String(), taskID.String(),
	)

	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, apperror.NotFound("task")
		}
		return model.Task{}, fmt.Errorf("sqlite: getting task %s: %w", taskID, err)
	}
	return task, nil
}

// List returns all of userID's tasks, oldest first. IDs are time-ordered, so
// sorting by id is sorting by creation time.
func (db *DB) List(ctx context.Context, userID model.ID) ([]model.Task, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, title, description, status, deadline
		 FROM tasks WHERE user_id = ? ORDER BY id`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tasks: %w", err)
	}

	return tasks, nil
}

// Delete removes one of userID's tasks. Deleting an absent task is not an
// error — the end state is the same either way.
func (db *DB) Delete(ctx context.Context, userID, taskID model.ID) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = ? AND id = ?`,
		userID.String(), taskID.String(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting task %s: %w", taskID, err)
	}
	return nil
}

// scanTask reads one task row and rebuilds the domain value via the Restore
// constructors — the columns were validated when they were written.
func scanTask(scan func(dest ...any) error) (model.Task, error) {
	var (
		rawID, rawUserID, rawTitle, rawStatus string
		rawDescription, rawDeadline           sql.NullString
	)
	if err := scan(&rawID, &rawUserID, &rawTitle, &rawDescription, &rawStatus, &rawDeadline); err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:     model.RestoreID(rawID),
		UserID: model.RestoreID(rawUserID),
		Title:  model.RestoreTitle(rawTitle),
		Status: model.Status(rawStatus),
	}
	if rawDescription.Valid {
		description := model.RestoreDescription(rawDescription.String)
		task.Description = &description
	}
	if rawDeadline.Valid {
		t, err := time.Parse(deadlineLayout, rawDeadline.String)
		if err != nil {
			return model.Task{}, fmt.Errorf("parsing stored deadline %q: %w", rawDeadline.String, err)
		}
		deadline := model.RestoreDeadline(t)
		task.Deadline = &deadline
	}

	return task, nil
}
