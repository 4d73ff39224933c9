package user

import (
	"context"
	"errors"

	"github.com/drelaann/simple-ecommerce-api/pkg/repository"
)

// ErrDuplicateIdentity is returned when an email or username is already taken.
var ErrDuplicateIdentity = errors.New("user already exists")

// DuplicateError names the colliding field. It matches ErrDuplicateIdentity.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return "user with this " + e.Field + " already exists"
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateIdentity }

// Repository abstracts persistence of users. Lookups return nil when absent.
type Repository interface {
	repository.CRUD[User]

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	IsActive(u *User) bool
}
