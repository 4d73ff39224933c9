package gormrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drelaann/simple-ecommerce-api/pkg/repository"
	"github.com/drelaann/simple-ecommerce-api/pkg/repository/gormrepo"
	"github.com/drelaann/simple-ecommerce-api/pkg/storage/storagetest"
	"github.com/drelaann/simple-ecommerce-api/pkg/user"
)

func newUserRepo(t *testing.T) *gormrepo.UserRepository {
	return gormrepo.NewUserRepository(storagetest.NewGorm(t))
}

func seedUser(t *testing.T, repo *gormrepo.UserRepository, email, username string) *user.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &user.User{
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$04$placeholder",
		IsActive:     true,
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)
	alice := seedUser(t, repo, "alice@example.com", "alice")
	seedUser(t, repo, "bob@example.com", "bob")

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)

	got, err = repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bob@example.com", got.Email)

	got, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_UniqueViolation(t *testing.T) {
	repo := newUserRepo(t)
	seedUser(t, repo, "alice@example.com", "alice")

	_, err := repo.Create(context.Background(), &user.User{
		Email:        "alice@example.com",
		Username:     "other",
		PasswordHash: "x",
	})
	assert.ErrorIs(t, err, repository.ErrUniqueViolation)
}

func TestUserRepository_IsActive(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)
	u := seedUser(t, repo, "carol@example.com", "carol")
	assert.True(t, repo.IsActive(u))

	u, err := repo.Update(ctx, u, repository.Fields{"is_active": false})
	require.NoError(t, err)
	assert.False(t, repo.IsActive(u))
}

func TestUserRepository_UpdateHashColumn(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)
	u := seedUser(t, repo, "dave@example.com", "dave")

	u, err := repo.Update(ctx, u, repository.Fields{"hashed_password": "new-hash", "full_name": "Dave D"})
	require.NoError(t, err)
	assert.Equal(t, "new-hash", u.PasswordHash)
	require.NotNil(t, u.FullName)
	assert.Equal(t, "Dave D", *u.FullName)
	assert.Equal(t, "dave", u.Username)
}
