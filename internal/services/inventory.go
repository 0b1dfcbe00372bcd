package services

import (
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// Uncategorized is the category bucket for products without one.
const Uncategorized = "Uncategorized"

// IsLowStock reports whether the product's quantity is below its
// minimum stock threshold. With the default threshold of zero a
// product is never low.
func IsLowStock(p models.Product) bool {
	return p.Quantity < p.MinStock
}

// LowStock returns the products currently below their minimum stock.
func LowStock(products []models.Product) []models.Product {
	low := make([]models.Product, 0)
	for _, p := range products {
		if IsLowStock(p) {
			low = append(low, p)
		}
	}
	return low
}

// TotalStock returns the sum of quantities across all products.
func TotalStock(products []models.Product) int {
	total := 0
	for _, p := range products {
		total += p.Quantity
	}
	return total
}

// TotalValue returns the sum of price times quantity across all
// products. An empty list totals zero.
func TotalValue(products []models.Product) float64 {
	total := 0.0
	for _, p := range products {
		total += p.Price * float64(p.Quantity)
	}
	return total
}

// CategoryCounts returns how many products fall in each category, with
// products lacking one bucketed under Uncategorized.
func CategoryCounts(products []models.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = Uncategorized
		}
		counts[category]++
	}
	return counts
}

// InventorySummary aggregates the stock position across all products.
type InventorySummary struct {
	TotalProducts int            `json:"totalProducts"`
	TotalStock    int            `json:"totalStock"`
	TotalValue    float64        `json:"totalValue"`
	LowStockCount int            `json:"lowStockCount"`
	Categories    map[string]int `json:"categories"`
}

// InventoryService serves derived inventory views. The aggregations
// are recomputed from the store on every call.
type InventoryService struct {
	repo repositories.ProductRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo repositories.ProductRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// Summary computes the aggregate stock position.
func (s *InventoryService) Summary() (*InventorySummary, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return &InventorySummary{
		TotalProducts: len(products),
		TotalStock:    TotalStock(products),
		TotalValue:    TotalValue(products),
		LowStockCount: len(LowStock(products)),
		Categories:    CategoryCounts(products),
	}, nil
}

// LowStockProducts returns the products currently below their minimum
// stock threshold.
func (s *InventoryService) LowStockProducts() ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return LowStock(products), nil
}
