package repositories

import (
	"context"
	"fmt"
	"strings"

	"teslo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// withRelations eagerly fetches the image rows and the owner (without password).
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Omit("password") })
}

// List returns one page of products in creation order.
func (r *GORMProductRepository) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	err := withRelations(r.db.WithContext(ctx)).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, wrapError("list products", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := withRelations(r.db.WithContext(ctx)).First(&product, "id = ?", id).Error; err != nil {
		return nil, wrapError(fmt.Sprintf("get product by ID %s", id), err)
	}
	return &product, nil
}

// GetByTitleOrSlug retrieves a product whose title matches term case-insensitively
// or whose slug equals the lower-cased term. Both sides of the title comparison
// are folded by the database so drivers with ASCII-only UPPER still agree.
// Titles differing only in case may coexist; the oldest one wins.
func (r *GORMProductRepository) GetByTitleOrSlug(ctx context.Context, term string) (*models.Product, error) {
	var product models.Product
	err := withRelations(r.db.WithContext(ctx)).
		Where("UPPER(title) = UPPER(?) OR slug = ?", term, strings.ToLower(term)).
		Order("created_at ASC").
		First(&product).Error
	if err != nil {
		return nil, wrapError(fmt.Sprintf("get product by term %q", term), err)
	}
	return &product, nil
}

// Create inserts the product together with its image rows.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(product).Error; err != nil {
		return wrapError("create product", err)
	}
	return nil
}

// Preload loads the stored product and merges patch onto it. Images are left
// as stored; the caller decides whether to replace them.
func (r *GORMProductRepository) Preload(ctx context.Context, id string, patch models.UpdateProductInput) (*models.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.ApplyTo(product)
	return product, nil
}

// Delete removes the product and its image rows.
func (r *GORMProductRepository) Delete(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Select("Images").Delete(product)
	if res.Error != nil {
		return wrapError("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete product %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// DeleteAll removes every product and image row and returns the number of products removed.
func (r *GORMProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		res := tx.Where("1 = 1").Delete(&models.Product{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, wrapError("delete all products", err)
	}
	return deleted, nil
}

// WithTx runs fn inside one database transaction. GORM commits when fn returns
// nil and rolls back on error or panic; the connection is released either way.
func (r *GORMProductRepository) WithTx(ctx context.Context, fn func(tx ProductTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProductTx{db: tx})
	})
}

type gormProductTx struct {
	db *gorm.DB
}

func (t *gormProductTx) DeleteImages(productID string) error {
	if err := t.db.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return wrapError(fmt.Sprintf("delete images of product %s", productID), err)
	}
	return nil
}

// Save updates every column of the product and inserts its new image rows.
// The owner row itself is never written, only the foreign key.
func (t *gormProductTx) Save(product *models.Product) error {
	if err := t.db.Omit("User").Save(product).Error; err != nil {
		return wrapError("save product", err)
	}
	return nil
}
