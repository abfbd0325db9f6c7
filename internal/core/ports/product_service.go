package ports

import (
	"context"

	"github.com/storemgmt/store-management-api/internal/core/domain"
)

// CreateProductInput carries all data needed to add a product to the catalog.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	Category      string
	StockQuantity int
	Brand         string
}

// ListProductsInput carries all parameters for the paged list endpoint.
type ListProductsInput struct {
	Page  int
	Limit int
	Sort  string
}

// ProductPage is a single page of catalog results.
type ProductPage struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService defines use-case operations over the catalog.
type ProductService interface {
	AddProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Product, error)
	GetByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductPage, error)
	ChangePrice(ctx context.Context, id int64, newPrice float64) (*domain.Product, error)
	UpdateStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)
	IncrementStock(ctx context.Context, id int64, amount int) (*domain.Product, error)
	DecrementStock(ctx context.Context, id int64, amount int) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*domain.Product, error)
	GetLowStock(ctx context.Context, threshold int) ([]*domain.Product, error)
}
