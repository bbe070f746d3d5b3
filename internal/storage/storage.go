package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/oakinvest/oak-backend/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// Field-specific conflicts unwrap to ErrAlreadyExists, so callers can match
// either the family or the exact column.
var (
	ErrEmailTaken    = fmt.Errorf("%w: email", ErrAlreadyExists)
	ErrUsernameTaken = fmt.Errorf("%w: username", ErrAlreadyExists)
	ErrPhoneTaken    = fmt.Errorf("%w: phone", ErrAlreadyExists)
)

// UserStore captures persistence operations needed by handlers and
// middleware. Uniqueness of email, username, and phone is enforced by the
// store itself; concurrent duplicate inserts resolve to a conflict error,
// not a second row.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByPhone(ctx context.Context, phone string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
}
