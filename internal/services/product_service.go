package services

import (
	"errors"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/pkg/rabbitmq"

	"github.com/rs/zerolog/log"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	userRepo repositories.UserRepository
	mq       *rabbitmq.Client
}

// NewProductService creates a new ProductService. mq may be nil when no
// broker is configured; low-stock alerts are then skipped.
func NewProductService(repo repositories.ProductRepository, userRepo repositories.UserRepository, mq *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		userRepo: userRepo,
		mq:       mq,
	}
}

// ProductUpdate carries a partial update. Nil fields are left
// untouched; a non-nil pointer to a zero value is a real update.
type ProductUpdate struct {
	Name        *string
	Category    *string
	Price       *float64
	Quantity    *int
	MinStock    *int
	SKU         *string
	Description *string
}

// Create stores a new product attributed to the acting user and
// resolves the creator reference for display.
func (s *ProductService) Create(product *models.Product, actorID string) error {
	product.CreatedBy = actorID
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.resolveCreator(product)
	s.alertIfLow(product)
	return nil
}

// GetAll retrieves all products, most recently created first, with
// creator references resolved.
func (s *ProductService) GetAll() ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	s.resolveCreators(products)
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.resolveCreator(product)
	return product, nil
}

// Update applies a partial update to an existing product. Only fields
// set in changes are written; everything else keeps its stored value.
func (s *ProductService) Update(id string, changes ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		product.Name = *changes.Name
	}
	if changes.Category != nil {
		product.Category = *changes.Category
	}
	if changes.Price != nil {
		product.Price = *changes.Price
	}
	if changes.Quantity != nil {
		product.Quantity = *changes.Quantity
	}
	if changes.MinStock != nil {
		product.MinStock = *changes.MinStock
	}
	if changes.SKU != nil {
		product.SKU = *changes.SKU
	}
	if changes.Description != nil {
		product.Description = *changes.Description
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.resolveCreator(product)
	s.alertIfLow(product)
	return product, nil
}

// Delete deletes a product by its ID.
func (s *ProductService) Delete(id string) error {
	return s.repo.Delete(id)
}

// resolveCreator fills the display reference for a product's creator.
// A missing user leaves the reference nil; createdBy is a weak link.
func (s *ProductService) resolveCreator(product *models.Product) {
	if product.CreatedBy == "" {
		return
	}
	user, err := s.userRepo.GetByID(product.CreatedBy)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Warn().Err(err).Str("product_id", product.ID).Msg("failed to resolve product creator")
		}
		return
	}
	product.Creator = &models.UserRef{ID: user.ID, Name: user.Name, Email: user.Email}
}

// resolveCreators resolves creator references for a list, looking each
// distinct user up once.
func (s *ProductService) resolveCreators(products []models.Product) {
	refs := make(map[string]*models.UserRef)
	for i := range products {
		id := products[i].CreatedBy
		if id == "" {
			continue
		}
		ref, seen := refs[id]
		if !seen {
			if user, err := s.userRepo.GetByID(id); err == nil {
				ref = &models.UserRef{ID: user.ID, Name: user.Name, Email: user.Email}
			}
			refs[id] = ref
		}
		products[i].Creator = ref
	}
}

// alertIfLow publishes a stock alert when the product is below its
// minimum stock threshold. Publishing failures never fail the request.
func (s *ProductService) alertIfLow(product *models.Product) {
	if s.mq == nil || !IsLowStock(*product) {
		return
	}
	alert := rabbitmq.StockAlert{
		ProductID: product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
		Quantity:  product.Quantity,
		MinStock:  product.MinStock,
	}
	if err := s.mq.PublishStockAlert(alert); err != nil {
		log.Warn().Err(err).Str("product_id", product.ID).Msg("failed to publish stock alert")
	}
}
