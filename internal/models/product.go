package models

import (
	"time"

	"gorm.io/datatypes"
)

// Genders accepted for a product.
var Genders = []string{"men", "women", "kid", "unisex"}

// Product represents a catalog item. It owns its images and belongs to the user
// who last created or updated it.
type Product struct {
	ID          string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string                      `json:"title" gorm:"uniqueIndex;not null"`
	Price       float64                     `json:"price" gorm:"not null;default:0"`
	Description *string                     `json:"description"`
	Slug        string                      `json:"slug" gorm:"uniqueIndex;not null"`
	Stock       int                         `json:"stock" gorm:"not null;default:0"`
	Sizes       datatypes.JSONSlice[string] `json:"sizes" gorm:"not null"`
	Gender      string                      `json:"gender" gorm:"type:varchar(16);not null"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Images      []ProductImage              `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UserID      string                      `json:"-" gorm:"type:varchar(36);not null;index"`
	User        *User                       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt   time.Time                   `json:"-"`
	UpdatedAt   time.Time                   `json:"-"`
}

// ProductImage is a single image row owned by a product.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	URL       string `json:"url" gorm:"not null"`
	ProductID string `json:"-" gorm:"type:varchar(36);not null;index"`
}

// Normalize applies the write-time invariants of a product row: the slug falls
// back to the title and is always normalized.
func (p *Product) Normalize() {
	if p.Slug == "" {
		p.Slug = p.Title
	}
	p.Slug = NormalizeSlug(p.Slug)
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
}

// NewProductImages builds fresh image rows, one per url.
func NewProductImages(urls []string) []ProductImage {
	images := make([]ProductImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, ProductImage{URL: url})
	}
	return images
}

// ProductView is the plain read shape of a product: images are flattened to urls.
type ProductView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	Slug        string    `json:"slug"`
	Stock       int       `json:"stock"`
	Sizes       []string  `json:"sizes"`
	Gender      string    `json:"gender"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	User        *UserView `json:"user,omitempty"`
}

// View flattens the product into its plain read shape.
func (p *Product) View() ProductView {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.URL)
	}
	view := ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       append([]string{}, p.Sizes...),
		Gender:      p.Gender,
		Tags:        append([]string{}, p.Tags...),
		Images:      images,
	}
	if p.User != nil {
		owner := p.User.View()
		view.User = &owner
	}
	return view
}

// CreateProductInput carries the fields of a new product.
type CreateProductInput struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"required,dive,min=1"`
	Gender      string   `json:"gender" validate:"required,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1"`
	Images      []string `json:"images" validate:"omitempty,dive,min=1"`
}

// Product builds the product row described by the input, without images or owner.
func (in CreateProductInput) Product() *Product {
	p := &Product{
		Title:       in.Title,
		Description: in.Description,
		Sizes:       datatypes.JSONSlice[string](append([]string{}, in.Sizes...)),
		Gender:      in.Gender,
		Tags:        datatypes.JSONSlice[string](append([]string{}, in.Tags...)),
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	return p
}

// UpdateProductInput is a partial update. Nil fields keep their stored value.
// A nil Images leaves the image set alone; a non-nil empty Images clears it.
type UpdateProductInput struct {
	Title       *string   `json:"title" validate:"omitempty,min=1"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	Description *string   `json:"description"`
	Slug        *string   `json:"slug"`
	Stock       *int      `json:"stock" validate:"omitempty,gte=0"`
	Sizes       *[]string `json:"sizes" validate:"omitempty,dive,min=1"`
	Gender      *string   `json:"gender" validate:"omitempty,oneof=men women kid unisex"`
	Tags        *[]string `json:"tags" validate:"omitempty,dive,min=1"`
	Images      *[]string `json:"images" validate:"omitempty,dive,min=1"`
}

// ApplyTo merges the non-image fields of the patch onto a stored product.
func (in UpdateProductInput) ApplyTo(p *Product) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Sizes != nil {
		p.Sizes = datatypes.JSONSlice[string](append([]string{}, (*in.Sizes)...))
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Tags != nil {
		p.Tags = datatypes.JSONSlice[string](append([]string{}, (*in.Tags)...))
	}
}

// Pagination is the window of a product listing.
type Pagination struct {
	Limit  int `query:"limit" validate:"gte=0"`
	Offset int `query:"offset" validate:"gte=0"`
}

// Default page window.
const (
	DefaultLimit  = 10
	DefaultOffset = 0
)
