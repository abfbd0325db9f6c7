package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storemgmt/store-management-api/internal/core/ports"
)

const defaultLowStockThreshold = 10

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /api/products.
//
// @Summary      Add a product to the catalog
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.AddProduct(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

// List handles GET /api/products with page/size/sort query parameters.
//
// @Summary      List products with pagination
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int     false  "1-based page number"
// @Param        size   query     int     false  "Page size (default 20, max 100)"
// @Param        sort   query     string  false  "Sort key (name, price, category, stock_quantity, created_at)"
// @Success      200    {object}  listProductsResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.service.ListProducts(c.Request().Context(), ports.ListProductsInput{
		Page:  page,
		Limit: size,
		Sort:  c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPageResponse(result))
}

// Search handles GET /api/products/search?name=.
//
// @Summary      Search products by name substring
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        name  query     string  true  "Name substring (case-insensitive)"
// @Success      200   {array}   productResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return NewFieldError("name", "name is required")
	}

	products, err := h.service.SearchByName(c.Request().Context(), name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductListResponse(products))
}

// ByCategory handles GET /api/products/category/:category.
//
// @Summary      List products in a category
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        category  path      string  true  "Category name"
// @Success      200       {array}   productResponse
// @Router       /api/products/category/{category} [get]
func (h *ProductHandler) ByCategory(c echo.Context) error {
	products, err := h.service.GetByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductListResponse(products))
}

// ChangePrice handles PUT /api/products/:id/price.
//
// @Summary      Change a product's price
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Product ID"
// @Param        body  body      updatePriceRequest  true  "New price"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{id}/price [put]
func (h *ProductHandler) ChangePrice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updatePriceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.ChangePrice(c.Request().Context(), id, req.NewPrice)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

// UpdateStock handles PUT /api/products/:id/stock?quantity=.
//
// @Summary      Set a product's stock quantity
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      int  true  "Product ID"
// @Param        quantity  query     int  true  "New stock quantity"
// @Success      200       {object}  productResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/products/{id}/stock [put]
func (h *ProductHandler) UpdateStock(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	quantity, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil {
		return NewFieldError("quantity", "quantity must be an integer")
	}
	if quantity < 0 {
		return NewFieldError("quantity", "stock quantity cannot be negative")
	}

	product, err := h.service.UpdateStock(c.Request().Context(), id, quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

// IncrementStock handles PATCH /api/products/:id/stock/increment?amount=.
//
// @Summary      Increment a product's stock quantity
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      int  true  "Product ID"
// @Param        amount  query     int  true  "Amount to add"
// @Success      200     {object}  productResponse
// @Router       /api/products/{id}/stock/increment [patch]
func (h *ProductHandler) IncrementStock(c echo.Context) error {
	id, amount, err := pathIDAndAmount(c)
	if err != nil {
		return err
	}

	product, err := h.service.IncrementStock(c.Request().Context(), id, amount)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

// DecrementStock handles PATCH /api/products/:id/stock/decrement?amount=.
//
// @Summary      Decrement a product's stock quantity
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      int  true  "Product ID"
// @Param        amount  query     int  true  "Amount to remove"
// @Success      200     {object}  productResponse
// @Router       /api/products/{id}/stock/decrement [patch]
func (h *ProductHandler) DecrementStock(c echo.Context) error {
	id, amount, err := pathIDAndAmount(c)
	if err != nil {
		return err
	}

	product, err := h.service.DecrementStock(c.Request().Context(), id, amount)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /api/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  int  true  "Product ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// PriceRange handles GET /api/products/price-range?minPrice=&maxPrice=.
//
// @Summary      List products within a price range
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        minPrice  query     number  true  "Minimum price"
// @Param        maxPrice  query     number  true  "Maximum price"
// @Success      200       {array}   productResponse
// @Failure      400       {object}  map[string]string
// @Router       /api/products/price-range [get]
func (h *ProductHandler) PriceRange(c echo.Context) error {
	minPrice, err := strconv.ParseFloat(c.QueryParam("minPrice"), 64)
	if err != nil {
		return NewFieldError("minPrice", "minPrice must be a number")
	}
	maxPrice, err := strconv.ParseFloat(c.QueryParam("maxPrice"), 64)
	if err != nil {
		return NewFieldError("maxPrice", "maxPrice must be a number")
	}

	products, err := h.service.GetByPriceRange(c.Request().Context(), minPrice, maxPrice)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductListResponse(products))
}

// LowStock handles GET /api/products/low-stock?threshold=.
//
// @Summary      List products with stock below a threshold
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        threshold  query     int  false  "Stock threshold (default 10)"
// @Success      200        {array}   productResponse
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c echo.Context) error {
	threshold := defaultLowStockThreshold
	if raw := c.QueryParam("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return NewFieldError("threshold", "threshold must be an integer")
		}
		threshold = n
	}

	products, err := h.service.GetLowStock(c.Request().Context(), threshold)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductListResponse(products))
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, NewFieldError("id", "id must be a positive integer")
	}
	return id, nil
}

func pathIDAndAmount(c echo.Context) (int64, int, error) {
	id, err := pathID(c)
	if err != nil {
		return 0, 0, err
	}
	amount, err := strconv.Atoi(c.QueryParam("amount"))
	if err != nil {
		return 0, 0, NewFieldError("amount", "amount must be an integer")
	}
	return id, amount, nil
}
