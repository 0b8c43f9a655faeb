// Package engine implements the catalog prioritization and scoring engine:
// a deterministic, pure computation that turns a catalog snapshot plus
// quality audits and a pricing-coverage flag into priority cards, product
// badges, a global urgency ordering and catalog health metrics.
//
// The engine performs no I/O, holds no state between calls and never
// returns an error: missing fields are defaulted, invalid numerics are
// clamped at the boundary. Callers own persistence and memoization.
package engine

import "github.com/shopexio/backend-go/internal/domain"

// Engine evaluates catalog snapshots. Safe for concurrent use: it only
// reads its config.
type Engine struct {
	cfg    Config
	scorer *Scorer
	cards  *CardBuilder
}

// New creates an engine with the given thresholds.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:    cfg,
		scorer: NewScorer(cfg),
		cards:  NewCardBuilder(cfg),
	}
}

// Evaluate runs the full pipeline over one snapshot. Calling it twice with
// the same snapshot (including Now) produces identical results.
func (e *Engine) Evaluate(snap Snapshot) *Result {
	audits := indexAudits(snap.AuditResults)

	scores := make([]ProductScore, 0, len(snap.Products))
	for i := range snap.Products {
		p := &snap.Products[i]
		if p.ID == "" {
			continue
		}
		scores = append(scores, e.scorer.Score(p, audits[p.ID], snap.PriceRulesActive, snap.Now))
	}

	badges := make(map[string]ProductBadge, len(scores))
	for i := range scores {
		badges[scores[i].Product.ID] = Classify(scores[i])
	}

	return &Result{
		PriorityCards:    e.cards.Build(scores, snap.PriceRulesActive),
		ProductBadges:    badges,
		SortedProductIDs: SortedProductIDs(scores),
		Metrics:          BuildMetrics(scores),
		KPIs:             BuildKPIs(scores),
		Scores:           scores,
	}
}

// indexAudits builds the productID lookup. When a product has several
// audit rows the most recent one wins.
func indexAudits(audits []domain.AuditResult) map[string]*domain.AuditResult {
	byProduct := make(map[string]*domain.AuditResult, len(audits))
	for i := range audits {
		a := &audits[i]
		if existing, ok := byProduct[a.ProductID]; ok && existing.AuditedAt.After(a.AuditedAt) {
			continue
		}
		byProduct[a.ProductID] = a
	}
	return byProduct
}
