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

func newProduct(owner *models.User, title string, urls ...string) *models.Product {
	p := &models.Product{
		Title:  title,
		Sizes:  datatypes.JSONSlice[string]{"S", "M"},
		Gender: "men",
		Images: models.NewProductImages(urls),
		UserID: owner.ID,
	}
	p.Normalize()
	return p
}

func TestGORMProductRepository_CreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner@example.com", "secret1")

	p := newProduct(owner, "T-Shirt Teslo", "a.jpg", "b.jpg")
	require.NoError(t, repo.Create(ctx, p))
	assert.NotEmpty(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "t-shirt_teslo", got.Slug)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.View().Images)
	require.NotNil(t, got.User)
	assert.Equal(t, owner.ID, got.User.ID)
	assert.Empty(t, got.User.Password)

	bySlug, err := repo.GetByTitleOrSlug(ctx, "T-SHIRT_TESLO")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)

	byTitle, err := repo.GetByTitleOrSlug(ctx, "t-shirt teslo")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byTitle.ID)

	_, err = repo.GetByTitleOrSlug(ctx, "hoodie")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestGORMProductRepository_UniqueViolation(t *testing.T) {
	db := testutil.DB(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner@example.com", "secret1")

	require.NoError(t, repo.Create(ctx, newProduct(owner, "Hoodie")))

	err := repo.Create(ctx, newProduct(owner, "Hoodie"))
	require.Error(t, err)
	assert.True(t, repositories.IsUniqueViolation(err))

	var storageErr *repositories.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Contains(t, storageErr.Detail, "UNIQUE constraint failed")
}

func TestGORMProductRepository_ListPaginates(t *testing.T) {
	db := testutil.DB(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner@example.com", "secret1")

	for _, title := range []string{"One", "Two", "Three"} {
		require.NoError(t, repo.Create(ctx, newProduct(owner, title, title+".jpg")))
	}

	all, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, p := range all {
		assert.Len(t, p.Images, 1)
	}

	page, err := repo.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, all[1].ID, page[0].ID)
	assert.Equal(t, all[2].ID, page[1].ID)
}

func TestGORMProductRepository_TxRollsBackImageDelete(t *testing.T) {
	db := testutil.DB(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner@example.com", "secret1")
	p := testutil.SeedProduct(t, db, owner, "Cap", "1.jpg", "2.jpg")

	boom := errors.New("boom")
	err := repo.WithTx(ctx, func(tx repositories.ProductTx) error {
		if err := tx.DeleteImages(p.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(2), testutil.CountImages(t, db, p.ID))
}

func TestGORMProductRepository_DeleteCascadesAndDeleteAll(t *testing.T) {
	db := testutil.DB(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner@example.com", "secret1")
	first := testutil.SeedProduct(t, db, owner, "First", "1.jpg", "2.jpg")
	testutil.SeedProduct(t, db, owner, "Second", "3.jpg")
	testutil.SeedProduct(t, db, owner, "Third")

	require.NoError(t, repo.Delete(ctx, first))
	assert.Equal(t, int64(0), testutil.CountImages(t, db, first.ID))
	err := repo.Delete(ctx, first)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var images int64
	require.NoError(t, db.Model(&models.ProductImage{}).Count(&images).Error)
	assert.Zero(t, images)
}
