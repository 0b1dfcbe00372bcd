package handlers

import (
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// InventoryHandler serves derived inventory views.
type InventoryHandler struct {
	service *services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the inventory routes with the Fiber app.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	inventoryRoutes := router.Group("/inventory")
	inventoryRoutes.Get("/summary", h.HandleSummary)
	inventoryRoutes.Get("/lowstock", h.HandleLowStock)
}

// HandleSummary returns the aggregate stock position.
func (h *InventoryHandler) HandleSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary()
	if err != nil {
		log.Error().Err(err).Msg("failed to compute inventory summary")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error while computing inventory summary",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Inventory summary computed successfully",
		"data":    fiber.Map{"summary": summary},
	})
}

// HandleLowStock returns the products below their minimum stock.
func (h *InventoryHandler) HandleLowStock(c *fiber.Ctx) error {
	products, err := h.service.LowStockProducts()
	if err != nil {
		log.Error().Err(err).Msg("failed to list low stock products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error while fetching low stock products",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Low stock products fetched successfully",
		"count":   len(products),
		"data":    fiber.Map{"products": products},
	})
}
