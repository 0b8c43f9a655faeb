// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/shopexio/backend-go/internal/domain"
)

// ProductRepository reads the catalog snapshot the engine scores.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CountProducts(ctx context.Context) (int, error)
}

// AuditRepository reads quality-audit results written by the audit service.
type AuditRepository interface {
	ListLatestAudits(ctx context.Context) ([]domain.AuditResult, error)
}

// PriceRuleRepository reads and administers pricing rules.
// HasCatalogWideRule computes the single boolean the engine consumes:
// whether any active rule applies to the whole catalog. SetRuleActive
// reports whether the rule exists.
type PriceRuleRepository interface {
	ListActiveRules(ctx context.Context) ([]domain.PriceRule, error)
	HasCatalogWideRule(ctx context.Context) (bool, error)
	SetRuleActive(ctx context.Context, id string, active bool) (bool, error)
}

// PredictionRepository reads stock-out forecasts written by the external
// forecasting service.
type PredictionRepository interface {
	ListPredictions(ctx context.Context) ([]domain.StockPrediction, error)
}
