package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storemgmt/store-management-api/internal/api/metrics"
	"github.com/storemgmt/store-management-api/internal/core/domain"
	"github.com/storemgmt/store-management-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	defaultSortKey  = "name"
)

// ProductService implements the catalog business rules.
type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

// AddProduct persists a new catalog entry. Duplicate (name, category) pairs
// are rejected by the unique constraint at the storage layer.
func (s *ProductService) AddProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if !domain.ValidPrice(input.Price) {
		return nil, domain.ErrInvalidPrice
	}
	if input.StockQuantity < 0 {
		return nil, domain.ErrInvalidStock
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Category:      input.Category,
		StockQuantity: input.StockQuantity,
		Brand:         input.Brand,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.log.Warn().Err(err).Str("name", input.Name).Str("category", input.Category).Msg("failed to add product")
		return nil, err
	}

	s.log.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product added")
	metrics.ProductsCreatedTotal.WithLabelValues(product.Category).Inc()

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) SearchByName(ctx context.Context, name string) ([]*domain.Product, error) {
	products, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(products)).Str("name", name).Msg("products matched by name")
	return products, nil
}

func (s *ProductService) GetByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.FindByCategory(ctx, category)
}

// ListProducts returns a deterministic page of the catalog. Page and limit
// are normalised and the sort key falls back to name when not whitelisted.
func (s *ProductService) ListProducts(ctx context.Context, input ports.ListProductsInput) (*ports.ProductPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	sort := input.Sort
	if !validSortKey(sort) {
		sort = defaultSortKey
	}

	items, total, err := s.repo.List(ctx, ports.ListProductsFilter{Page: page, Limit: limit, Sort: sort})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ProductPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func validSortKey(s string) bool {
	switch s {
	case "name", "price", "category", "stock_quantity", "created_at":
		return true
	}
	return false
}

func (s *ProductService) ChangePrice(ctx context.Context, id int64, newPrice float64) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPrice := product.Price
	if err := product.ChangePrice(newPrice); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().Int64("product_id", id).Float64("old_price", oldPrice).Float64("new_price", newPrice).Msg("price changed")
	return product, nil
}

func (s *ProductService) UpdateStock(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	return s.mutateStock(ctx, id, "set", func(p *domain.Product) error {
		return p.UpdateStock(quantity)
	})
}

func (s *ProductService) IncrementStock(ctx context.Context, id int64, amount int) (*domain.Product, error) {
	return s.mutateStock(ctx, id, "increment", func(p *domain.Product) error {
		return p.IncrementStock(amount)
	})
}

func (s *ProductService) DecrementStock(ctx context.Context, id int64, amount int) (*domain.Product, error) {
	return s.mutateStock(ctx, id, "decrement", func(p *domain.Product) error {
		return p.DecrementStock(amount)
	})
}

// mutateStock applies a single-row read-modify-write with the given domain
// mutation and persists only when the invariant check passes.
func (s *ProductService) mutateStock(ctx context.Context, id int64, op string, mutate func(*domain.Product) error) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldQuantity := product.StockQuantity
	if err := mutate(product); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("product_id", id).
		Str("op", op).
		Int("old_quantity", oldQuantity).
		Int("new_quantity", product.StockQuantity).
		Msg("stock updated")
	metrics.StockUpdatesTotal.WithLabelValues(op).Inc()

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("product_id", id).Msg("product deleted")
	metrics.ProductsDeletedTotal.Inc()
	return nil
}

func (s *ProductService) GetByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*domain.Product, error) {
	if minPrice < 0 || maxPrice < minPrice {
		return nil, domain.ErrInvalidPrice
	}
	return s.repo.FindByPriceRange(ctx, minPrice, maxPrice)
}

func (s *ProductService) GetLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidStock
	}
	return s.repo.FindLowStock(ctx, threshold)
}
