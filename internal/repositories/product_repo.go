package repositories

import "stockroom/internal/models"

// ProductRepository defines the interface for product data access.
// GetAll returns products ordered by creation time, most recent first.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
