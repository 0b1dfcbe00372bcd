package services_test

import (
	"fmt"
	"testing"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func newProductService() (*services.ProductService, *MockProductRepository, *MockUserRepository) {
	productRepo := new(MockProductRepository)
	userRepo := new(MockUserRepository)
	return services.NewProductService(productRepo, userRepo, nil), productRepo, userRepo
}

func TestProductService_Create(t *testing.T) {
	service, productRepo, userRepo := newProductService()

	creator := &models.User{ID: "admin-1", Name: "Admin", Email: "admin@example.com"}
	product := &models.Product{Name: "New Product", Price: 50.0, Quantity: 20}

	productRepo.On("Create", product).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Product).ID = "prod-1"
	}).Return(nil).Once()
	userRepo.On("GetByID", creator.ID).Return(creator, nil).Once()

	err := service.Create(product, creator.ID)
	assert.NoError(t, err)
	assert.Equal(t, creator.ID, product.CreatedBy)
	assert.NotNil(t, product.Creator)
	assert.Equal(t, "Admin", product.Creator.Name)
	assert.Equal(t, "admin@example.com", product.Creator.Email)
	productRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestProductService_Create_RepoError(t *testing.T) {
	service, productRepo, _ := newProductService()

	product := &models.Product{Name: "Broken", Price: 1, Quantity: 1}
	productRepo.On("Create", product).Return(fmt.Errorf("database error")).Once()

	err := service.Create(product, "admin-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	productRepo.AssertExpectations(t)
}

func TestProductService_GetAll_ResolvesCreatorsOnce(t *testing.T) {
	service, productRepo, userRepo := newProductService()

	creator := &models.User{ID: "admin-1", Name: "Admin", Email: "admin@example.com"}
	stored := []models.Product{
		{ID: "1", Name: "Product A", CreatedBy: "admin-1"},
		{ID: "2", Name: "Product B", CreatedBy: "admin-1"},
	}

	productRepo.On("GetAll").Return(stored, nil).Once()
	// Two products share one creator; the lookup happens once.
	userRepo.On("GetByID", "admin-1").Return(creator, nil).Once()

	products, err := service.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.NotNil(t, p.Creator)
		assert.Equal(t, "admin-1", p.Creator.ID)
	}
	productRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	service, productRepo, _ := newProductService()

	productRepo.On("GetByID", "missing").Return(nil, fmt.Errorf("product: %w", repositories.ErrNotFound)).Once()

	product, err := service.GetByID("missing")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	productRepo.AssertExpectations(t)
}

func TestProductService_Update_ZeroQuantityIsHonored(t *testing.T) {
	service, productRepo, userRepo := newProductService()

	stored := &models.Product{ID: "prod-1", Name: "Product A", Price: 10, Quantity: 5, MinStock: 2, CreatedBy: "admin-1"}
	productRepo.On("GetByID", "prod-1").Return(stored, nil).Once()
	productRepo.On("Update", stored).Return(nil).Once()
	userRepo.On("GetByID", "admin-1").Return(&models.User{ID: "admin-1"}, nil).Once()

	zero := 0
	updated, err := service.Update("prod-1", services.ProductUpdate{Quantity: &zero})
	assert.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity, "an explicit zero is a real update")
	assert.Equal(t, "Product A", updated.Name, "absent fields stay untouched")
	assert.Equal(t, 10.0, updated.Price)
	productRepo.AssertExpectations(t)
}

func TestProductService_Update_PartialFields(t *testing.T) {
	service, productRepo, userRepo := newProductService()

	stored := &models.Product{ID: "prod-1", Name: "Product A", Category: "Audio", Price: 10, Quantity: 5}
	productRepo.On("GetByID", "prod-1").Return(stored, nil).Once()
	productRepo.On("Update", stored).Return(nil).Once()
	userRepo.On("GetByID", mock.Anything).Return(nil, fmt.Errorf("user: %w", repositories.ErrNotFound)).Maybe()

	name := "Product A Updated"
	price := 12.5
	updated, err := service.Update("prod-1", services.ProductUpdate{Name: &name, Price: &price})
	assert.NoError(t, err)
	assert.Equal(t, "Product A Updated", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "Audio", updated.Category)
	productRepo.AssertExpectations(t)
}

func TestProductService_Update_NotFound(t *testing.T) {
	service, productRepo, _ := newProductService()

	productRepo.On("GetByID", "missing").Return(nil, fmt.Errorf("product: %w", repositories.ErrNotFound)).Once()

	name := "Whatever"
	_, err := service.Update("missing", services.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	productRepo.AssertNotCalled(t, "Update", mock.Anything)
	productRepo.AssertExpectations(t)
}

func TestProductService_Delete(t *testing.T) {
	service, productRepo, _ := newProductService()

	productRepo.On("Delete", "prod-1").Return(nil).Once()
	assert.NoError(t, service.Delete("prod-1"))

	// Deleting a missing id fails with not found, and does so every time.
	productRepo.On("Delete", "missing").Return(fmt.Errorf("product: %w", repositories.ErrNotFound)).Twice()
	assert.ErrorIs(t, service.Delete("missing"), repositories.ErrNotFound)
	assert.ErrorIs(t, service.Delete("missing"), repositories.ErrNotFound)
	productRepo.AssertExpectations(t)
}
