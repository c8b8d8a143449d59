package handlers

import (
	"fmt"

	"teslo/internal/middleware"
	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service     *services.ProductService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, authService *services.AuthService) *ProductHandler {
	return &ProductHandler{
		service:     service,
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Reads are
// public, creation needs a user and mutations need an admin.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	auth := middleware.AuthRequired(h.authService)
	admin := middleware.RoleRequired(models.RoleAdmin)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:term", h.HandleGetProduct)
	productRoutes.Post("/", auth, h.HandleCreateProduct)
	productRoutes.Patch("/:id", auth, admin, h.HandleUpdateProduct)
	productRoutes.Delete("/", auth, admin, h.HandleDeleteAllProducts)
	productRoutes.Delete("/:id", auth, admin, h.HandleDeleteProduct)
}

// HandleListProducts returns a page of products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page := models.Pagination{
		Limit:  c.QueryInt("limit", models.DefaultLimit),
		Offset: c.QueryInt("offset", models.DefaultOffset),
	}
	if err := h.validate.Struct(page); err != nil {
		return validationFailed(c, err)
	}

	products, err := h.service.ListProducts(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProduct looks a product up by id, slug or title.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.FindOnePlain(c.UserContext(), c.Params("term"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in models.CreateProductInput
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}

	product, err := h.service.CreateProduct(c.UserContext(), in, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update and reassigns the owner to the caller.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return badRequest(c, "Validation failed (uuid is expected)", nil)
	}

	var patch models.UpdateProductInput
	if ok, err := bind(c, h.validate, &patch); !ok {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, patch, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes one product and its images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return badRequest(c, "Validation failed (uuid is expected)", nil)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("product %s deleted", id)})
}

// HandleDeleteAllProducts empties the catalog.
func (h *ProductHandler) HandleDeleteAllProducts(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func productID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		return "", false
	}
	return id, true
}
