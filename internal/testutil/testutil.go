// Package testutil opens throwaway databases and seeds rows for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"teslo/internal/database"
	"teslo/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DB opens a private in-memory SQLite database with every table migrated.
// It is closed when the test ends.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open("sqlite", dsn)
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate test database: %v", err)
	}
	tb.Cleanup(func() { _ = database.Close(db) })
	return db
}

// SeedUser inserts an active user whose password is password, holding roles.
func SeedUser(tb testing.TB, db *gorm.DB, email, password string, roles ...string) *models.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	if len(roles) == 0 {
		roles = []string{models.RoleUser}
	}
	u := &models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hash),
		FullName: "Test User",
		IsActive: true,
		Roles:    datatypes.JSONSlice[string](roles),
	}
	if err := db.WithContext(context.Background()).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	u.Password = ""
	return u
}

// SeedProduct inserts a product owned by owner with one image per url.
func SeedProduct(tb testing.TB, db *gorm.DB, owner *models.User, title string, urls ...string) *models.Product {
	tb.Helper()
	p := &models.Product{
		ID:     uuid.NewString(),
		Title:  title,
		Sizes:  datatypes.JSONSlice[string]{"M"},
		Gender: "unisex",
		Images: models.NewProductImages(urls),
		UserID: owner.ID,
	}
	p.Normalize()
	if err := db.WithContext(context.Background()).Omit("User").Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

// CountImages returns the number of image rows owned by productID.
func CountImages(tb testing.TB, db *gorm.DB, productID string) int64 {
	tb.Helper()
	var n int64
	if err := db.Model(&models.ProductImage{}).Where("product_id = ?", productID).Count(&n).Error; err != nil {
		tb.Fatalf("count images: %v", err)
	}
	return n
}
