package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storemgmt/store-management-api/internal/core/domain"
)

type seedUser struct {
	username  string
	email     string
	password  string
	firstName string
	lastName  string
	role      string
}

type seedProduct struct {
	name        string
	description string
	price       float64
	category    string
	stock       int
}

var seedUsers = []seedUser{
	{"admin", "admin@storemanagement.com", "admin123", "Admin", "User", domain.RoleAdmin},
	{"manager", "manager@storemanagement.com", "manager123", "Manager", "User", domain.RoleManager},
	{"user", "user@storemanagement.com", "user123", "Regular", "User", domain.RoleUser},
}

var seedProducts = []seedProduct{
	{"Gaming Laptop", "High-performance gaming laptop with RTX graphics", 1299.99, "Electronics", 15},
	{"Smartphone Pro", "Latest smartphone with advanced camera features", 899.99, "Electronics", 25},
	{"Wireless Headphones", "Noise-cancelling wireless headphones", 249.99, "Electronics", 30},
	{"Premium Jeans", "High-quality denim jeans", 89.99, "Clothing", 50},
	{"Cotton T-Shirt", "Comfortable cotton t-shirt", 19.99, "Clothing", 100},
	{"Go Web Programming", "Comprehensive guide to web development in Go", 49.99, "Books", 20},
	{"Science Fiction Novel", "Bestselling science fiction adventure", 14.99, "Books", 35},
	{"Automatic Coffee Maker", "Programmable coffee maker with timer", 129.99, "Home & Garden", 12},
	{"Indoor Plant", "Low-maintenance indoor plant", 24.99, "Home & Garden", 8},
	{"Running Shoes", "Professional running shoes", 119.99, "Sports", 40},
}

// Seed provisions the default accounts and sample catalog on an empty
// database. It is a no-op when users already exist.
func Seed(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	users := NewUserRepository(db)
	products := NewProductRepository(db)

	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Info().Msg("seeding default users and sample products")

	now := time.Now().UTC()
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = users.Create(ctx, &domain.User{
			Username:     su.username,
			Email:        su.email,
			PasswordHash: string(hash),
			FirstName:    su.firstName,
			LastName:     su.lastName,
			Role:         su.role,
			Enabled:      true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
		log.Info().Str("username", su.username).Str("role", su.role).Msg("seed user created")
	}

	for _, sp := range seedProducts {
		err := products.Create(ctx, &domain.Product{
			Name:          sp.name,
			Description:   sp.description,
			Price:         sp.price,
			Category:      sp.category,
			StockQuantity: sp.stock,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil && !errors.Is(err, domain.ErrProductExists) {
			return err
		}
	}

	log.Info().Int("users", len(seedUsers)).Int("products", len(seedProducts)).Msg("seed data created")
	return nil
}
