package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/storemgmt/store-management-api/internal/core/domain"
	"github.com/storemgmt/store-management-api/internal/core/ports"
)

const productColumns = "id, name, description, price, category, stock_quantity, brand, active, created_at, updated_at"

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

// ProductRepository persists catalog products in PostgreSQL.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product row and assigns the generated ID. A unique
// constraint violation on (name, category) maps to ErrProductExists.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (name, description, price, category, stock_quantity, brand, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		p.Name, nullable(p.Description), p.Price, p.Category,
		p.StockQuantity, nullable(p.Brand), p.Active, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrProductExists
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) SearchByName(ctx context.Context, name string) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY id`
	return r.queryMany(ctx, query, name)
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY id`
	return r.queryMany(ctx, query, category)
}

// List returns one page of products ordered by the whitelisted sort key,
// with id as tiebreaker so pagination stays stable, plus the total count.
func (r *ProductRepository) List(ctx context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	// filter.Sort is validated against a whitelist by the service layer.
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY %s, id LIMIT $1 OFFSET $2`, productColumns, filter.Sort)
	offset := (filter.Page - 1) * filter.Limit

	products, err := r.queryMany(ctx, query, filter.Limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4,
		    stock_quantity = $5, brand = $6, active = $7, updated_at = $8
		WHERE id = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, nullable(p.Description), p.Price, p.Category,
		p.StockQuantity, nullable(p.Brand), p.Active, p.UpdatedAt, p.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrProductExists
		}
		return fmt.Errorf("update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) FindByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE price BETWEEN $1 AND $2 ORDER BY price, id`
	return r.queryMany(ctx, query, minPrice, maxPrice)
}

func (r *ProductRepository) FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock_quantity < $1 ORDER BY stock_quantity, id`
	return r.queryMany(ctx, query, threshold)
}

func (r *ProductRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var description, brand sql.NullString
	err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &p.Category,
		&p.StockQuantity, &brand, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Brand = brand.String
	return &p, nil
}
