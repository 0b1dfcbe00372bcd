package handlers

import (
	"errors"

	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
// Reads are open to any authenticated user; mutations additionally
// pass the admin guard.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, admin fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", admin, h.HandleCreateProduct)
	productRoutes.Put("/:id", admin, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", admin, h.HandleDeleteProduct)
}

// CreateProductRequest represents the request body for product
// creation. Price and quantity are pointers so that an explicit zero
// passes the required check while an absent field fails it.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
	MinStock    *int     `json:"minStock" validate:"omitempty,gte=0"`
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
}

// HandleCreateProduct creates a new product attributed to the acting user.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Please provide name, price, and quantity",
			"errors":  validationMessages(err),
		})
	}

	product := models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		SKU:         req.SKU,
		Description: req.Description,
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}

	actor := middleware.CurrentUser(c)
	if err := h.service.Create(&product, actor.ID); err != nil {
		log.Error().Err(err).Msg("failed to create product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error while creating product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    fiber.Map{"product": product},
	})
}

// HandleGetProducts retrieves all products, most recent first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error while fetching products",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Products fetched successfully",
		"count":   len(products),
		"data":    fiber.Map{"products": products},
	})
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return h.productError(c, err, "fetching")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product fetched successfully",
		"data":    fiber.Map{"product": product},
	})
}

// UpdateProductRequest represents a partial update. Absent fields are
// left untouched; provided zero values are honored as real updates.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	MinStock    *int     `json:"minStock" validate:"omitempty,gte=0"`
	SKU         *string  `json:"sku"`
	Description *string  `json:"description"`
}

// HandleUpdateProduct applies a partial update to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	product, err := h.service.Update(c.Params("id"), services.ProductUpdate{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		MinStock:    req.MinStock,
		SKU:         req.SKU,
		Description: req.Description,
	})
	if err != nil {
		return h.productError(c, err, "updating")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"data":    fiber.Map{"product": product},
	})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return h.productError(c, err, "deleting")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
		"data":    fiber.Map{},
	})
}

// productError maps service errors to the response taxonomy: missing
// or malformed ids are 404, everything else a generic 500.
func (h *ProductHandler) productError(c *fiber.Ctx, err error, action string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Product not found",
		})
	}
	log.Error().Err(err).Str("action", action).Msg("product request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Server error while " + action + " product",
	})
}
