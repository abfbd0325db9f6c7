package handler

import (
	"github.com/storemgmt/store-management-api/internal/core/domain"
	"github.com/storemgmt/store-management-api/internal/core/ports"
)

func toCreateInput(req createProductRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
		Brand:         req.Brand,
	}
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		StockQuantity: p.StockQuantity,
		Brand:         p.Brand,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}
}

func toProductListResponse(products []*domain.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

func toPageResponse(page *ports.ProductPage) listProductsResponse {
	return listProductsResponse{
		Data: toProductListResponse(page.Items),
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}
