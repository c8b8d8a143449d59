package repositories

import (
	"context"

	"teslo/internal/models"
)

// ProductRepository defines the interface for product data access. Every
// product it returns carries its images and owner.
type ProductRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetByTitleOrSlug matches UPPER(title) = UPPER(term) OR slug = lower(term).
	GetByTitleOrSlug(ctx context.Context, term string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Preload loads the stored product and merges the patch's non-image fields onto it.
	Preload(ctx context.Context, id string, patch models.UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, product *models.Product) error
	DeleteAll(ctx context.Context) (int64, error)
	// WithTx runs fn in a single transaction, committing on nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx ProductTx) error) error
}

// ProductTx is the set of writes available inside a product transaction.
type ProductTx interface {
	DeleteImages(productID string) error
	Save(product *models.Product) error
}
