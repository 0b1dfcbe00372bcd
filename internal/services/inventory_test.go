package services_test

import (
	"testing"

	"stockroom/internal/models"
	"stockroom/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
		low     bool
	}{
		{"below threshold", models.Product{Quantity: 3, MinStock: 5}, true},
		{"at threshold", models.Product{Quantity: 5, MinStock: 5}, false},
		{"above threshold", models.Product{Quantity: 10, MinStock: 5}, false},
		{"no threshold set", models.Product{Quantity: 0}, false},
		{"zero quantity with threshold", models.Product{Quantity: 0, MinStock: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.low, services.IsLowStock(tt.product))
		})
	}
}

func TestLowStock(t *testing.T) {
	products := []models.Product{
		{ID: "1", Quantity: 3, MinStock: 5},
		{ID: "2", Quantity: 10, MinStock: 5},
		{ID: "3", Quantity: 0, MinStock: 0},
	}
	low := services.LowStock(products)
	assert.Len(t, low, 1)
	assert.Equal(t, "1", low[0].ID)

	assert.Empty(t, services.LowStock(nil))
}

func TestTotalValue(t *testing.T) {
	assert.Equal(t, 0.0, services.TotalValue(nil))
	assert.Equal(t, 0.0, services.TotalValue([]models.Product{}))

	products := []models.Product{
		{Price: 10, Quantity: 2},
		{Price: 5, Quantity: 1},
	}
	assert.Equal(t, 25.0, services.TotalValue(products))
}

func TestTotalStock(t *testing.T) {
	products := []models.Product{
		{Quantity: 2},
		{Quantity: 0},
		{Quantity: 7},
	}
	assert.Equal(t, 9, services.TotalStock(products))
	assert.Equal(t, 0, services.TotalStock(nil))
}

func TestCategoryCounts(t *testing.T) {
	products := []models.Product{
		{Category: "Electronics"},
		{Category: "Electronics"},
		{Category: "Audio"},
		{Category: ""},
	}
	counts := services.CategoryCounts(products)
	assert.Equal(t, 2, counts["Electronics"])
	assert.Equal(t, 1, counts["Audio"])
	assert.Equal(t, 1, counts[services.Uncategorized])
	assert.Len(t, counts, 3)
}

func TestInventoryService_Summary(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := services.NewInventoryService(productRepo)

	products := []models.Product{
		{ID: "1", Category: "Electronics", Price: 10, Quantity: 2, MinStock: 5},
		{ID: "2", Category: "Audio", Price: 5, Quantity: 1},
		{ID: "3", Price: 100, Quantity: 0, MinStock: 0},
	}
	productRepo.On("GetAll").Return(products, nil).Once()

	summary, err := service.Summary()
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.TotalProducts)
	assert.Equal(t, 3, summary.TotalStock)
	assert.Equal(t, 25.0, summary.TotalValue)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, map[string]int{"Electronics": 1, "Audio": 1, services.Uncategorized: 1}, summary.Categories)
	productRepo.AssertExpectations(t)
}

func TestInventoryService_LowStockProducts(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := services.NewInventoryService(productRepo)

	products := []models.Product{
		{ID: "1", Quantity: 2, MinStock: 5},
		{ID: "2", Quantity: 50, MinStock: 5},
	}
	productRepo.On("GetAll").Return(products, nil).Once()

	low, err := service.LowStockProducts()
	assert.NoError(t, err)
	assert.Len(t, low, 1)
	assert.Equal(t, "1", low[0].ID)
	productRepo.AssertExpectations(t)
}
