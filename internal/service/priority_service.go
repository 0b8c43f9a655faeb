package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shopexio/backend-go/internal/cache"
	"github.com/shopexio/backend-go/internal/engine"
	"github.com/shopexio/backend-go/internal/repository"
)

// PriorityService assembles engine snapshots from the stores, memoizes
// results in the cache and exposes the engine outputs to the API layer.
type PriorityService struct {
	products repository.ProductRepository
	audits   repository.AuditRepository
	rules    repository.PriceRuleRepository
	cache    cache.EngineCache
	engine   *engine.Engine
	now      func() time.Time
}

func NewPriorityService(
	products repository.ProductRepository,
	audits repository.AuditRepository,
	rules repository.PriceRuleRepository,
	cacheImpl cache.EngineCache,
	eng *engine.Engine,
) *PriorityService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopEngineCache()
	}
	return &PriorityService{
		products: products,
		audits:   audits,
		rules:    rules,
		cache:    cacheImpl,
		engine:   eng,
		now:      time.Now,
	}
}

// Analyze returns the engine result for the current catalog state, served
// from cache when an identical snapshot was already evaluated.
func (s *PriorityService) Analyze(ctx context.Context) (*engine.Result, error) {
	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	fingerprint := cache.SnapshotFingerprint(*snap)
	if result, ok, err := s.cache.GetResult(ctx, fingerprint); err == nil && ok {
		return result, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("priority: cache get failed")
	}

	result := s.engine.Evaluate(*snap)

	if err := s.cache.SetResult(ctx, fingerprint, result); err != nil {
		log.Warn().Err(err).Msg("priority: cache set failed")
	}

	return result, nil
}

// Refresh recomputes unconditionally and replaces the cached result. Used
// by the scheduler to keep the cache warm between catalog changes.
func (s *PriorityService) Refresh(ctx context.Context) error {
	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		return err
	}

	result := s.engine.Evaluate(*snap)

	fingerprint := cache.SnapshotFingerprint(*snap)
	if err := s.cache.SetResult(ctx, fingerprint, result); err != nil {
		return fmt.Errorf("priority refresh: %w", err)
	}

	log.Info().
		Int("products", len(snap.Products)).
		Float64("health_score", result.Metrics.HealthScore).
		Msg("priority analysis refreshed")

	return nil
}

// Invalidate drops all cached results. Called after catalog mutations.
func (s *PriorityService) Invalidate(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

func (s *PriorityService) buildSnapshot(ctx context.Context) (*engine.Snapshot, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	audits, err := s.audits.ListLatestAudits(ctx)
	if err != nil {
		return nil, fmt.Errorf("load audit results: %w", err)
	}

	priceRulesActive, err := s.rules.HasCatalogWideRule(ctx)
	if err != nil {
		return nil, fmt.Errorf("load price rules: %w", err)
	}

	return &engine.Snapshot{
		Products:         products,
		AuditResults:     audits,
		PriceRulesActive: priceRulesActive,
		Now:              s.now().UTC(),
	}, nil
}
