package engine

import (
	"time"

	"github.com/shopexio/backend-go/internal/domain"
)

// Opportunity heuristic constants. Unlike the risk weights these do not
// sum to anything meaningful; the score is open-ended (practical max 75).
const (
	opportunityMarginHigh = 30.0 // margin >= high threshold
	opportunityMarginMid  = 15.0 // margin >= 20%
	opportunityStockDeep  = 20.0 // stock > 50
	opportunityStockOK    = 10.0 // stock > 20
	opportunityQualityMid = 25.0 // audit score in [qualityLow, 70)

	marginMidThreshold = 20.0
	stockDeepThreshold = 50
	stockOKThreshold   = 20
	qualityMidUpper    = 70.0
)

// Scorer turns one product plus its audit into a ProductScore.
type Scorer struct {
	cfg     Config
	factors *FactorCalculator
}

// NewScorer creates a new scorer.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg, factors: NewFactorCalculator(cfg)}
}

// Score computes factors, risk score and opportunity score for one product.
func (s *Scorer) Score(p *domain.Product, audit *domain.AuditResult, priceRulesActive bool, now time.Time) ProductScore {
	factors := s.factors.Calculate(p, audit, priceRulesActive, now)

	return ProductScore{
		Product:          *p,
		RiskScore:        factors.Sum(),
		OpportunityScore: s.opportunityScore(p, audit),
		Factors:          factors,
		Margin:           MarginOf(p),
	}
}

// opportunityScore is an independent upside heuristic: healthy margins,
// deep stock and mid-range quality (good enough to sell, room to improve).
func (s *Scorer) opportunityScore(p *domain.Product, audit *domain.AuditResult) float64 {
	score := 0.0

	margin := MarginOf(p)
	if margin >= s.cfg.MarginHighThreshold {
		score += opportunityMarginHigh
	} else if margin >= marginMidThreshold {
		score += opportunityMarginMid
	}

	stock := stockOf(p)
	if stock > stockDeepThreshold {
		score += opportunityStockDeep
	} else if stock > stockOKThreshold {
		score += opportunityStockOK
	}

	quality := auditScoreOf(audit)
	if quality >= s.cfg.QualityLowThreshold && quality < qualityMidUpper {
		score += opportunityQualityMid
	}

	return score
}
