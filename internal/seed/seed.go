// Package seed resets the catalog to a known set of products owned by an admin.
package seed

import (
	"context"
	"errors"
	"fmt"

	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/internal/services"
	"teslo/pkg/logger"
)

// Seeder wires the services needed to rebuild the seed data.
type Seeder struct {
	users    repositories.UserRepository
	auth     *services.AuthService
	products *services.ProductService
	log      *logger.Logger
}

// Admin identifies the account that owns the seed catalog.
type Admin struct {
	Email    string
	Password string
}

// New creates a Seeder.
func New(users repositories.UserRepository, auth *services.AuthService, products *services.ProductService, log *logger.Logger) *Seeder {
	return &Seeder{users: users, auth: auth, products: products, log: log.With("component", "seeder")}
}

// Run makes sure the admin exists, deletes every product and inserts the
// seed catalog. It returns the number of products created.
func (s *Seeder) Run(ctx context.Context, admin Admin) (int, error) {
	owner, err := s.ensureAdmin(ctx, admin)
	if err != nil {
		return 0, err
	}

	deleted, err := s.products.DeleteAllProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	s.log.Info("catalog cleared", "deleted", deleted)

	for i, in := range Catalog() {
		if _, err := s.products.CreateProduct(ctx, in, owner); err != nil {
			return i, fmt.Errorf("create product %q: %w", in.Title, err)
		}
	}
	s.log.Info("catalog seeded", "products", len(Catalog()), "owner", owner.Email)
	return len(Catalog()), nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, admin Admin) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, models.NormalizeEmail(admin.Email))
	switch {
	case err == nil:
		existing.Password = ""
		return existing, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("look up admin: %w", err)
	}

	if _, err := s.auth.RegisterWithRoles(ctx, models.RegisterInput{
		Email:    admin.Email,
		Password: admin.Password,
		FullName: "Teslo Admin",
	}, models.RoleAdmin, models.RoleUser); err != nil {
		return nil, fmt.Errorf("register admin: %w", err)
	}

	created, err := s.users.GetByEmail(ctx, models.NormalizeEmail(admin.Email))
	if err != nil {
		return nil, fmt.Errorf("reload admin: %w", err)
	}
	created.Password = ""
	s.log.Info("admin created", "email", created.Email)
	return created, nil
}
