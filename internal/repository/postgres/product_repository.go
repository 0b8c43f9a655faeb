package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shopexio/backend-go/internal/domain"
	"github.com/shopexio/backend-go/internal/repository"
)

type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a Postgres-backed product repository.
func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT
			id,
			COALESCE(name, '') AS name,
			COALESCE(category, '') AS category,
			stock_quantity,
			price,
			cost_price,
			profit_margin,
			updated_at,
			created_at
		FROM products
		ORDER BY id
	`

	products := make([]domain.Product, 0)
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	return products, nil
}

func (r *productRepository) CountProducts(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("error counting products: %w", err)
	}
	return count, nil
}
