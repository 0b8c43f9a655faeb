package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shopexio/backend-go/internal/domain"
	"github.com/shopexio/backend-go/internal/repository"
)

// ErrRuleNotFound is returned when a rule toggle targets an unknown id.
var ErrRuleNotFound = errors.New("price rule not found")

// CatalogSummary is the dashboard header rollup.
type CatalogSummary struct {
	TotalProducts      int                `json:"total_products"`
	ActiveRules        []domain.PriceRule `json:"active_rules"`
	HasCatalogWideRule bool               `json:"has_catalog_wide_rule"`
}

// CatalogService exposes catalog administration: the summary rollup and
// price-rule activation. Rule toggles change the pricing-coverage input of
// the scoring engine, so they invalidate the cached analysis.
type CatalogService struct {
	products repository.ProductRepository
	rules    repository.PriceRuleRepository
	priority *PriorityService
}

func NewCatalogService(
	products repository.ProductRepository,
	rules repository.PriceRuleRepository,
	priority *PriorityService,
) *CatalogService {
	return &CatalogService{
		products: products,
		rules:    rules,
		priority: priority,
	}
}

func (s *CatalogService) Summary(ctx context.Context) (CatalogSummary, error) {
	count, err := s.products.CountProducts(ctx)
	if err != nil {
		return CatalogSummary{}, fmt.Errorf("count products: %w", err)
	}

	rules, err := s.rules.ListActiveRules(ctx)
	if err != nil {
		return CatalogSummary{}, fmt.Errorf("load price rules: %w", err)
	}

	catalogWide, err := s.rules.HasCatalogWideRule(ctx)
	if err != nil {
		return CatalogSummary{}, fmt.Errorf("check catalog-wide price rule: %w", err)
	}

	return CatalogSummary{
		TotalProducts:      count,
		ActiveRules:        rules,
		HasCatalogWideRule: catalogWide,
	}, nil
}

// SetRuleActive toggles a rule and drops the cached analysis so the next
// read reflects the new pricing coverage. Invalidation failures are logged
// but do not fail the toggle; the cache TTL bounds the staleness.
func (s *CatalogService) SetRuleActive(ctx context.Context, id string, active bool) error {
	found, err := s.rules.SetRuleActive(ctx, id, active)
	if err != nil {
		return fmt.Errorf("toggle price rule %s: %w", id, err)
	}
	if !found {
		return ErrRuleNotFound
	}

	if err := s.priority.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Str("rule_id", id).Msg("catalog: cache invalidation after rule toggle failed")
	}
	return nil
}
