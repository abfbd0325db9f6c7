package ports

import (
	"context"

	"github.com/storemgmt/store-management-api/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing products.
type ListProductsFilter struct {
	Page  int    // 1-based
	Limit int    // max rows per page (capped at 100 by the service)
	Sort  string // whitelisted column name, default "name"
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// Create inserts a new row and assigns the generated ID. A violation of
	// the (name, category) unique constraint surfaces as ErrProductExists.
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// SearchByName matches the name column case-insensitively on a substring.
	SearchByName(ctx context.Context, name string) ([]*domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	// List returns a page of products matching filter and the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	// Update persists all mutable columns of an existing row.
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*domain.Product, error)
	// FindLowStock returns products with stock strictly below threshold.
	FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error)
}
