package engine

import (
	"math"
	"time"

	"github.com/shopexio/backend-go/internal/domain"
)

// FactorCalculator computes the five capped risk contributions for a product.
// Pure: no I/O, no clock access (now is passed in).
type FactorCalculator struct {
	cfg Config
}

// NewFactorCalculator creates a new factor calculator.
func NewFactorCalculator(cfg Config) *FactorCalculator {
	return &FactorCalculator{cfg: cfg}
}

// Calculate computes all risk factors for one product. A nil audit means
// the product has no known quality problem (score 100).
func (fc *FactorCalculator) Calculate(p *domain.Product, audit *domain.AuditResult, priceRulesActive bool, now time.Time) RiskFactors {
	factors := RiskFactors{}

	// 1. Stock factor: linear ramp from 0 at the threshold up to the full
	// weight at zero stock. Stock exactly at the threshold contributes 0.
	stock := stockOf(p)
	threshold := float64(fc.cfg.StockCriticalThreshold)
	if float64(stock) < threshold {
		factors.Stock = math.Min(WeightStock, (threshold-float64(stock))/threshold*WeightStock)
	}

	// 2. Quality factor: same ramp below the quality threshold.
	quality := auditScoreOf(audit)
	if quality < fc.cfg.QualityLowThreshold {
		factors.Quality = math.Min(WeightQuality, (fc.cfg.QualityLowThreshold-quality)/fc.cfg.QualityLowThreshold*WeightQuality)
	}

	// 3. Margin factor: only fires for positive margins below the low
	// threshold. Margin <= 0 is treated as "no signal", not as a loss.
	margin := MarginOf(p)
	if margin > 0 && margin < fc.cfg.MarginLowThreshold {
		factors.Margin = math.Min(WeightMargin, (fc.cfg.MarginLowThreshold-margin)/fc.cfg.MarginLowThreshold*WeightMargin)
	}

	// 4. Sync factor: all-or-nothing. Missing updated_at counts as stale.
	if p.UpdatedAt == nil || now.Sub(*p.UpdatedAt) > time.Duration(fc.cfg.SyncStaleHours*float64(time.Hour)) {
		factors.Sync = WeightSync
	}

	// 5. Price-rule factor: catalog-wide flag, identical for every product.
	if !priceRulesActive {
		factors.PriceRule = WeightPriceRule
	}

	return factors
}

// MarginOf returns the profit margin percentage for a product: the stored
// margin when present, otherwise derived from price and cost. Negative raw
// inputs are clamped to zero before scoring.
func MarginOf(p *domain.Product) float64 {
	if p.ProfitMargin != nil {
		return *p.ProfitMargin
	}
	price := priceOf(p)
	if price <= 0 || p.CostPrice == nil {
		return 0
	}
	cost := math.Max(0, *p.CostPrice)
	return (price - cost) / price * 100
}

func stockOf(p *domain.Product) int {
	if p.StockQuantity == nil || *p.StockQuantity < 0 {
		return 0
	}
	return *p.StockQuantity
}

func priceOf(p *domain.Product) float64 {
	if p.Price == nil || *p.Price < 0 {
		return 0
	}
	return *p.Price
}

func auditScoreOf(audit *domain.AuditResult) float64 {
	if audit == nil {
		return 100
	}
	return audit.GlobalScore
}
