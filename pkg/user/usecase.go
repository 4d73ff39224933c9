package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/drelaann/simple-ecommerce-api/pkg/logger"
	"github.com/drelaann/simple-ecommerce-api/pkg/repository"
	"github.com/drelaann/simple-ecommerce-api/pkg/security/password"
)

// UseCase describes account management and credential checks.
type UseCase interface {
	Create(ctx context.Context, cmd CreateCommand) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, page repository.Page) ([]User, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) (*User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// Authenticate returns the user only when the password matches. It issues no token.
	Authenticate(ctx context.Context, username, plain string) (*User, error)
	IsActive(u *User) bool

	HashPassword(plain string) (string, error)
	VerifyPassword(plain, hash string) bool
}

type service struct {
	repo   Repository
	hasher password.Hasher
}

// NewService returns the default UseCase. The hasher is owned by the service.
func NewService(repo Repository, hasher password.Hasher) UseCase {
	return &service{repo: repo, hasher: hasher}
}

func (s *service) HashPassword(plain string) (string, error) { return s.hasher.Hash(plain) }

func (s *service) VerifyPassword(plain, hash string) bool { return s.hasher.Verify(plain, hash) }

func (s *service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *service) List(ctx context.Context, page repository.Page) ([]User, error) {
	return s.repo.GetAll(ctx, page)
}

func (s *service) IsActive(u *User) bool { return s.repo.IsActive(u) }

func (s *service) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	// email is checked before username
	if existing, err := s.repo.GetByEmail(ctx, cmd.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &DuplicateError{Field: "email"}
	}
	if existing, err := s.repo.GetByUsername(ctx, cmd.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &DuplicateError{Field: "username"}
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, &User{
		Email:        cmd.Email,
		Username:     cmd.Username,
		FullName:     cmd.FullName,
		PasswordHash: hash,
		IsActive:     cmd.IsActive,
	})
	if err != nil {
		return nil, translate(err)
	}
	logger.From(ctx).Info("user created", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, cmd UpdateCommand) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}

	if email, ok := cmd.Email.Get(); ok && email != u.Email {
		if err := s.ensureFree(ctx, id, "email", s.repo.GetByEmail, email); err != nil {
			return nil, err
		}
	}
	if username, ok := cmd.Username.Get(); ok && username != u.Username {
		if err := s.ensureFree(ctx, id, "username", s.repo.GetByUsername, username); err != nil {
			return nil, err
		}
	}

	fields := cmd.Fields()
	if plain, ok := cmd.Password.Get(); ok {
		hash, err := s.hasher.Hash(plain)
		if err != nil {
			return nil, err
		}
		fields["hashed_password"] = hash
	}

	updated, err := s.repo.Update(ctx, u, fields)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *service) Authenticate(ctx context.Context, username, plain string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		logger.From(ctx).Debug("authenticate: unknown username", zap.String("username", username))
		return nil, nil
	}
	if !s.hasher.Verify(plain, u.PasswordHash) {
		logger.From(ctx).Debug("authenticate: password mismatch", zap.Int64("user_id", u.ID))
		return nil, nil
	}
	return u, nil
}

type lookupFunc func(ctx context.Context, value string) (*User, error)

func (s *service) ensureFree(ctx context.Context, selfID int64, field string, lookup lookupFunc, value string) error {
	other, err := lookup(ctx, value)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return &DuplicateError{Field: field}
	}
	return nil
}

// translate turns a store-level unique violation (a lost race against a
// concurrent write) into the domain error.
func translate(err error) error {
	if errors.Is(err, repository.ErrUniqueViolation) {
		return ErrDuplicateIdentity
	}
	return err
}
