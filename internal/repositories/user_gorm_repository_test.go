package repositories_test

import (
	"context"
	"errors"
	"testing"

	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestGORMUserRepository(t *testing.T) {
	db := testutil.DB(t)
	repo := repositories.NewGORMUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:    "test@example.com",
		Password: "hash",
		FullName: "Test",
		IsActive: true,
		Roles:    datatypes.JSONSlice[string]{models.RoleUser},
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", byEmail.Password)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, byID.Password)
	assert.Equal(t, []string{models.RoleUser}, []string(byID.Roles))

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	dup := &models.User{Email: "test@example.com", Password: "x", FullName: "Dup", IsActive: true}
	err = repo.Create(ctx, dup)
	assert.True(t, repositories.IsUniqueViolation(err))
}
