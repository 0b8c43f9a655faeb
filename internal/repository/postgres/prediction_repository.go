package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shopexio/backend-go/internal/domain"
	"github.com/shopexio/backend-go/internal/repository"
)

type predictionRepository struct {
	db *sqlx.DB
}

// NewPredictionRepository creates a Postgres-backed prediction repository.
// Rows are written by the external forecasting service; this side only reads.
func NewPredictionRepository(db *sqlx.DB) repository.PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) ListPredictions(ctx context.Context) ([]domain.StockPrediction, error) {
	query := `
		SELECT DISTINCT ON (product_id)
			product_id,
			days_until_stockout,
			urgency,
			recommendation,
			predicted_at
		FROM stock_predictions
		ORDER BY product_id, predicted_at DESC
	`

	predictions := make([]domain.StockPrediction, 0)
	if err := r.db.SelectContext(ctx, &predictions, query); err != nil {
		return nil, fmt.Errorf("error listing stock predictions: %w", err)
	}

	return predictions, nil
}
