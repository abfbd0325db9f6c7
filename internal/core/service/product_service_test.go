package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storemgmt/store-management-api/internal/core/domain"
	"github.com/storemgmt/store-management-api/internal/core/ports"
)

type stubProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
	creates  int
	updates  int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[int64]*domain.Product), nextID: 1}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	for _, existing := range r.products {
		if existing.Name == p.Name && existing.Category == p.Category {
			return domain.ErrProductExists
		}
	}
	p.ID = r.nextID
	r.nextID++
	clone := *p
	r.products[p.ID] = &clone
	r.creates++
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) SearchByName(_ context.Context, _ string) ([]*domain.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) FindByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.Category == category {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	total := int64(len(r.products))
	var out []*domain.Product
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	r.updates++
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) FindByPriceRange(_ context.Context, _, _ float64) ([]*domain.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) FindLowStock(_ context.Context, threshold int) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.StockQuantity < threshold {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func widgetInput() ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:          "Widget",
		Category:      "Tools",
		Price:         9.99,
		StockQuantity: 5,
	}
}

func newTestProductService(repo ports.ProductRepository) *ProductService {
	return NewProductService(repo, zerolog.Nop())
}

func TestProductService_AddProduct_RoundTrip(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)

	created, err := svc.AddProduct(context.Background(), widgetInput())
	if err != nil {
		t.Fatalf("AddProduct returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected server-assigned id")
	}
	if !created.Active {
		t.Fatalf("expected new product to be active")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected server-assigned timestamps")
	}

	found, err := svc.GetProduct(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetProduct returned error: %v", err)
	}
	if found.Name != "Widget" || found.Category != "Tools" || found.Price != 9.99 || found.StockQuantity != 5 {
		t.Fatalf("round-trip mismatch: %+v", found)
	}
}

func TestProductService_AddProduct_Duplicate(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)

	if _, err := svc.AddProduct(context.Background(), widgetInput()); err != nil {
		t.Fatalf("first AddProduct failed: %v", err)
	}
	if _, err := svc.AddProduct(context.Background(), widgetInput()); err != domain.ErrProductExists {
		t.Fatalf("expected ErrProductExists, got %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("duplicate add must not write, got %d creates", repo.creates)
	}
}

func TestProductService_AddProduct_InvalidInput(t *testing.T) {
	svc := newTestProductService(newStubProductRepo())

	input := widgetInput()
	input.Price = 0
	if _, err := svc.AddProduct(context.Background(), input); err != domain.ErrInvalidPrice {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}

	input = widgetInput()
	input.StockQuantity = -1
	if _, err := svc.AddProduct(context.Background(), input); err != domain.ErrInvalidStock {
		t.Fatalf("expected ErrInvalidStock, got %v", err)
	}
}

func TestProductService_ChangePrice(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)
	created, _ := svc.AddProduct(context.Background(), widgetInput())

	updated, err := svc.ChangePrice(context.Background(), created.ID, 14.50)
	if err != nil {
		t.Fatalf("ChangePrice returned error: %v", err)
	}
	if updated.Price != 14.50 {
		t.Fatalf("expected price 14.50, got %v", updated.Price)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updated_at to be refreshed")
	}
}

func TestProductService_ChangePrice_Invalid(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)
	created, _ := svc.AddProduct(context.Background(), widgetInput())

	if _, err := svc.ChangePrice(context.Background(), created.ID, 0); err != domain.ErrInvalidPrice {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}

	stored, _ := svc.GetProduct(context.Background(), created.ID)
	if stored.Price != 9.99 {
		t.Fatalf("stored price must be unchanged, got %v", stored.Price)
	}
	if repo.updates != 0 {
		t.Fatalf("rejected price change must not write, got %d updates", repo.updates)
	}
}

func TestProductService_ChangePrice_NotFound(t *testing.T) {
	svc := newTestProductService(newStubProductRepo())

	if _, err := svc.ChangePrice(context.Background(), 99, 10); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_UpdateStock(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)
	created, _ := svc.AddProduct(context.Background(), widgetInput())

	updated, err := svc.UpdateStock(context.Background(), created.ID, 0)
	if err != nil {
		t.Fatalf("UpdateStock returned error: %v", err)
	}
	if updated.StockQuantity != 0 {
		t.Fatalf("expected stock 0, got %d", updated.StockQuantity)
	}

	if _, err := svc.UpdateStock(context.Background(), created.ID, -1); err != domain.ErrInvalidStock {
		t.Fatalf("expected ErrInvalidStock, got %v", err)
	}
}

func TestProductService_IncrementAndDecrementStock(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)
	created, _ := svc.AddProduct(context.Background(), widgetInput())

	updated, err := svc.IncrementStock(context.Background(), created.ID, 10)
	if err != nil {
		t.Fatalf("IncrementStock returned error: %v", err)
	}
	if updated.StockQuantity != 15 {
		t.Fatalf("expected stock 15, got %d", updated.StockQuantity)
	}

	updated, err = svc.DecrementStock(context.Background(), created.ID, 15)
	if err != nil {
		t.Fatalf("DecrementStock returned error: %v", err)
	}
	if updated.StockQuantity != 0 {
		t.Fatalf("expected stock 0, got %d", updated.StockQuantity)
	}
}

func TestProductService_DecrementStock_Insufficient(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)
	created, _ := svc.AddProduct(context.Background(), widgetInput())
	writesBefore := repo.updates

	if _, err := svc.DecrementStock(context.Background(), created.ID, 6); err != domain.ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	stored, _ := svc.GetProduct(context.Background(), created.ID)
	if stored.StockQuantity != 5 {
		t.Fatalf("stored stock must be unchanged, got %d", stored.StockQuantity)
	}
	if repo.updates != writesBefore {
		t.Fatalf("rejected decrement must not write")
	}
}

func TestProductService_ListProducts_Defaults(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)

	for i := 0; i < 3; i++ {
		input := widgetInput()
		input.Name = input.Name + string(rune('A'+i))
		if _, err := svc.AddProduct(context.Background(), input); err != nil {
			t.Fatalf("AddProduct failed: %v", err)
		}
	}

	page, err := svc.ListProducts(context.Background(), ports.ListProductsInput{Page: 0, Limit: 0, Sort: "bogus"})
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if page.Page != 1 || page.Limit != defaultPageSize {
		t.Fatalf("expected normalised page=1 limit=%d, got page=%d limit=%d", defaultPageSize, page.Page, page.Limit)
	}
	if page.Total != 3 || page.TotalPages != 1 {
		t.Fatalf("unexpected totals: %+v", page)
	}
}

func TestProductService_ListProducts_PageMath(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)
	now := time.Now().UTC()
	for i := 0; i < 45; i++ {
		repo.products[int64(i+1)] = &domain.Product{
			ID: int64(i + 1), Name: "P", Category: "C", Price: 1,
			Active: true, CreatedAt: now, UpdatedAt: now,
		}
	}

	page, err := svc.ListProducts(context.Background(), ports.ListProductsInput{Page: 1, Limit: 20, Sort: "name"})
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if page.Total != 45 || page.TotalPages != 3 {
		t.Fatalf("expected total 45 in 3 pages, got %d in %d", page.Total, page.TotalPages)
	}

	page, err = svc.ListProducts(context.Background(), ports.ListProductsInput{Page: 1, Limit: 500})
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if page.Limit != maxPageSize {
		t.Fatalf("expected limit capped at %d, got %d", maxPageSize, page.Limit)
	}
}

func TestProductService_DeleteProduct(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)
	created, _ := svc.AddProduct(context.Background(), widgetInput())

	if err := svc.DeleteProduct(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteProduct returned error: %v", err)
	}
	if _, err := svc.GetProduct(context.Background(), created.ID); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := svc.DeleteProduct(context.Background(), created.ID); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound for second delete, got %v", err)
	}
}

func TestProductService_GetByPriceRange_Invalid(t *testing.T) {
	svc := newTestProductService(newStubProductRepo())

	if _, err := svc.GetByPriceRange(context.Background(), -1, 10); err != domain.ErrInvalidPrice {
		t.Fatalf("expected ErrInvalidPrice for negative min, got %v", err)
	}
	if _, err := svc.GetByPriceRange(context.Background(), 10, 5); err != domain.ErrInvalidPrice {
		t.Fatalf("expected ErrInvalidPrice for inverted range, got %v", err)
	}
}

func TestProductService_GetLowStock(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestProductService(repo)

	low := widgetInput()
	low.Name = "Low"
	low.StockQuantity = 2
	high := widgetInput()
	high.Name = "High"
	high.StockQuantity = 50
	_, _ = svc.AddProduct(context.Background(), low)
	_, _ = svc.AddProduct(context.Background(), high)

	products, err := svc.GetLowStock(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetLowStock returned error: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Low" {
		t.Fatalf("expected only the low-stock product, got %+v", products)
	}

	if _, err := svc.GetLowStock(context.Background(), -1); err != domain.ErrInvalidStock {
		t.Fatalf("expected ErrInvalidStock, got %v", err)
	}
}
