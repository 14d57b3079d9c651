package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mi-wada/todo-api/internal/apperror"
	"github.com/mi-wada/todo-api/internal/model"
	"github.com/mi-wada/todo-api/internal/repository"
)

// UserRepo is the user-facing view of DB. Its methods would collide with the
// task methods declared directly on DB, so they live on this separate
// receiver; it shares DB's connection pool.
type UserRepo struct {
	db *DB
}

// Users returns the repository.UserRepository view of db.
func (db *DB) Users() *UserRepo {
	return &UserRepo{db: db}
}

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

// Create persists a new user with their password digest.
// A duplicate email surfaces as apperror.ErrConflict; the caller decides how
// to present it.
func (r *UserRepo) Create(ctx context.Context, user model.User, hash model.PasswordHash) error {
	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`,
		user.ID.String(),
		user.Email.String(),
		hash.String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user")
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", user.ID, err)
	}
	return nil
}

// GetByID retrieves a user by their ID.
// Returns apperror.ErrNotFound if no such user exists.
func (r *UserRepo) GetByID(ctx context.Context, id model.ID) (model.User, error) {
	var rawID, rawEmail string

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, email FROM users WHERE id = ?`, id.String(),
	).Scan(&rawID, &rawEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, apperror.NotFound("user")
		}
		return model.User{}, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return model.RestoreUser(model.RestoreID(rawID), model.RestoreEmail(rawEmail)), nil
}

// GetByEmail retrieves a user and their stored password digest by email.
// Returns apperror.ErrNotFound if no such user exists.
func (r *UserRepo) GetByEmail(ctx context.Context, email model.Email) (model.User, model.PasswordHash, error) {
	var rawID, rawEmail, rawHash string

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM users WHERE email = ?`, email.String(),
	).Scan(&rawID, &rawEmail, &rawHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.PasswordHash{}, apperror.NotFound("user")
		}
		return model.User{}, model.PasswordHash{}, fmt.Errorf("sqlite: getting user by email: %w", err)
	}

	user := model.RestoreUser(model.RestoreID(rawID), model.RestoreEmail(rawEmail))
	return user, model.RestorePasswordHash(rawHash), nil
}

// isUniqueViolation reports whether err is an SQLITE_CONSTRAINT_UNIQUE
// failure from the driver.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
