package handler

import "time"

// --- Request types ---

type createProductRequest struct {
	Name          string  `json:"name"           validate:"required,min=2,max=100"`
	Description   string  `json:"description"    validate:"omitempty,max=500"`
	Price         float64 `json:"price"          validate:"required,gt=0"`
	Category      string  `json:"category"       validate:"required,min=2,max=50"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	Brand         string  `json:"brand"          validate:"omitempty,max=50"`
}

type updatePriceRequest struct {
	NewPrice float64 `json:"new_price" validate:"required,gt=0"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from domain types so the JSON contract is not coupled to internal changes.

type productResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	StockQuantity int       `json:"stock_quantity"`
	Brand         string    `json:"brand,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listProductsResponse struct {
	Data       []productResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
