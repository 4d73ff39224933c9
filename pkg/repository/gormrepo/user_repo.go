package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/drelaann/simple-ecommerce-api/pkg/user"
)

// UserRepository implements user.Repository.
type UserRepository struct {
	*Base[user.User]
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Base: NewBase[user.User](db)}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.First(r.DB(ctx).Where("email = ?", email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.First(r.DB(ctx).Where("username = ?", username))
}

func (r *UserRepository) IsActive(u *user.User) bool { return u.IsActive }
