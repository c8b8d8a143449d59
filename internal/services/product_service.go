package services

import (
	"context"

	"teslo/internal/apperrors"
	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/pkg/logger"

	"github.com/google/uuid"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
	log  *logger.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, log *logger.Logger) *ProductService {
	return &ProductService{
		repo: repo,
		log:  log.With("component", "product_service"),
	}
}

// parseID returns the lower-case form of term when it is a 36-character UUID.
func parseID(term string) (string, bool) {
	if len(term) != 36 {
		return "", false
	}
	id, err := uuid.Parse(term)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// CreateProduct stores a product with one image row per url, owned by owner.
func (s *ProductService) CreateProduct(ctx context.Context, in models.CreateProductInput, owner *models.User) (*models.ProductView, error) {
	product := in.Product()
	product.Images = models.NewProductImages(in.Images)
	product.UserID = owner.ID
	product.Normalize()

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, translateStorageError(s.log, "create product", err, nil)
	}
	product.User = owner
	view := product.View()
	return &view, nil
}

// ListProducts returns the products in [offset, offset+limit).
func (s *ProductService) ListProducts(ctx context.Context, page models.Pagination) ([]models.ProductView, error) {
	products, err := s.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, translateStorageError(s.log, "list products", err, nil)
	}
	views := make([]models.ProductView, 0, len(products))
	for i := range products {
		views = append(views, products[i].View())
	}
	return views, nil
}

// FindByTerm looks a product up by id when term is a UUID, and by title or slug otherwise.
func (s *ProductService) FindByTerm(ctx context.Context, term string) (*models.Product, error) {
	if _, ok := parseID(term); ok {
		return s.findByID(ctx, term)
	}
	product, err := s.repo.GetByTitleOrSlug(ctx, term)
	if err != nil {
		return nil, translateStorageError(s.log, "find product by term", err, func() *apperrors.Error {
			return apperrors.NotFound("Product with %s not found", term)
		})
	}
	return product, nil
}

// FindOnePlain is FindByTerm with images flattened to urls.
func (s *ProductService) FindOnePlain(ctx context.Context, term string) (*models.ProductView, error) {
	product, err := s.FindByTerm(ctx, term)
	if err != nil {
		return nil, err
	}
	view := product.View()
	return &view, nil
}

func (s *ProductService) findByID(ctx context.Context, term string) (*models.Product, error) {
	id, ok := parseID(term)
	if !ok {
		return nil, apperrors.NotFound("Product with id %s not found", term)
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateStorageError(s.log, "find product by id", err, func() *apperrors.Error {
			return apperrors.NotFound("Product with id %s not found", id)
		})
	}
	return product, nil
}

// UpdateProduct merges patch onto the stored product and, in one transaction,
// replaces the image set when the patch carries one and reassigns the owner.
// The returned view is re-read after commit.
func (s *ProductService) UpdateProduct(ctx context.Context, term string, patch models.UpdateProductInput, owner *models.User) (*models.ProductView, error) {
	notFound := func() *apperrors.Error {
		return apperrors.NotFound("Product with id %s not found", term)
	}
	id, ok := parseID(term)
	if !ok {
		return nil, notFound()
	}

	product, err := s.repo.Preload(ctx, id, patch)
	if err != nil {
		return nil, translateStorageError(s.log, "preload product", err, notFound)
	}

	err = s.repo.WithTx(ctx, func(tx repositories.ProductTx) error {
		if patch.Images != nil {
			if err := tx.DeleteImages(id); err != nil {
				return err
			}
			product.Images = models.NewProductImages(*patch.Images)
		}
		product.UserID = owner.ID
		product.User = owner
		product.Normalize()
		return tx.Save(product)
	})
	if err != nil {
		return nil, translateStorageError(s.log, "update product", err, notFound)
	}

	return s.FindOnePlain(ctx, id)
}

// DeleteProduct removes the product with the given id and its images.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product); err != nil {
		return translateStorageError(s.log, "delete product", err, func() *apperrors.Error {
			return apperrors.NotFound("Product with id %s not found", id)
		})
	}
	return nil
}

// DeleteAllProducts removes every product and returns how many were deleted.
func (s *ProductService) DeleteAllProducts(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, translateStorageError(s.log, "delete all products", err, nil)
	}
	return deleted, nil
}
