package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shopexio/backend-go/internal/domain"
)

func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func freshProduct(id string) domain.Product {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	return domain.Product{
		ID:            id,
		StockQuantity: intPtr(100),
		Price:         floatPtr(50),
		CostPrice:     floatPtr(25),
		UpdatedAt:     timePtr(now),
	}
}

func TestFactorCalculator_StockFactor(t *testing.T) {
	calc := NewFactorCalculator(DefaultConfig())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		stock *int
		want  float64
	}{
		{"zero stock hits the full weight", intPtr(0), 35},
		{"missing stock treated as zero", nil, 35},
		{"half of threshold", intPtr(5), 17.5},
		{"exactly at threshold contributes nothing", intPtr(10), 0},
		{"above threshold contributes nothing", intPtr(50), 0},
		{"negative stock clamped to zero", intPtr(-3), 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := freshProduct("p1")
			p.StockQuantity = tt.stock
			factors := calc.Calculate(&p, nil, true, now)
			assert.InDelta(t, tt.want, factors.Stock, 1e-9)
		})
	}
}

func TestFactorCalculator_QualityFactor(t *testing.T) {
	calc := NewFactorCalculator(DefaultConfig())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	p := freshProduct("p1")

	tests := []struct {
		name  string
		audit *domain.AuditResult
		want  float64
	}{
		{"no audit assumes healthy", nil, 0},
		{"score at threshold contributes nothing", &domain.AuditResult{ProductID: "p1", GlobalScore: 40}, 0},
		{"score of 20 ramps halfway", &domain.AuditResult{ProductID: "p1", GlobalScore: 20}, 12.5},
		{"score of zero hits the full weight", &domain.AuditResult{ProductID: "p1", GlobalScore: 0}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors := calc.Calculate(&p, tt.audit, true, now)
			assert.InDelta(t, tt.want, factors.Quality, 1e-9)
		})
	}
}

func TestFactorCalculator_MarginFactor(t *testing.T) {
	calc := NewFactorCalculator(DefaultConfig())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		price   *float64
		cost    *float64
		precomp *float64
		want    float64
	}{
		{"10% margin ramps", floatPtr(100), floatPtr(90), nil, 20.0 / 3},
		{"margin at threshold contributes nothing", floatPtr(100), floatPtr(85), nil, 0},
		{"healthy margin contributes nothing", floatPtr(100), floatPtr(50), nil, 0},
		{"zero margin is no signal", floatPtr(100), floatPtr(100), nil, 0},
		{"negative margin is no signal", floatPtr(100), floatPtr(120), nil, 0},
		{"no price means no signal", nil, floatPtr(10), nil, 0},
		{"precomputed margin wins", floatPtr(100), floatPtr(50), floatPtr(7.5), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := freshProduct("p1")
			p.Price = tt.price
			p.CostPrice = tt.cost
			p.ProfitMargin = tt.precomp
			factors := calc.Calculate(&p, nil, true, now)
			assert.InDelta(t, tt.want, factors.Margin, 1e-9)
		})
	}
}

func TestFactorCalculator_SyncFactor(t *testing.T) {
	calc := NewFactorCalculator(DefaultConfig())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		updatedAt *time.Time
		want      float64
	}{
		{"fresh product", timePtr(now.Add(-time.Hour)), 0},
		{"exactly 24h is still fresh", timePtr(now.Add(-24 * time.Hour)), 0},
		{"just past 24h is stale", timePtr(now.Add(-24*time.Hour - time.Minute)), 10},
		{"missing updated_at is stale", nil, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := freshProduct("p1")
			p.UpdatedAt = tt.updatedAt
			factors := calc.Calculate(&p, nil, true, now)
			assert.InDelta(t, tt.want, factors.Sync, 1e-9)
		})
	}
}

func TestFactorCalculator_PriceRuleFactor(t *testing.T) {
	calc := NewFactorCalculator(DefaultConfig())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	p := freshProduct("p1")

	withRules := calc.Calculate(&p, nil, true, now)
	assert.Zero(t, withRules.PriceRule)

	withoutRules := calc.Calculate(&p, nil, false, now)
	assert.InDelta(t, 10, withoutRules.PriceRule, 1e-9)
}

func TestFactorCalculator_BoundsAndAdditivity(t *testing.T) {
	calc := NewFactorCalculator(DefaultConfig())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	// Worst product on every axis: factors must cap at their weights and
	// the risk score must be their exact sum.
	p := domain.Product{ID: "worst", Price: floatPtr(100), CostPrice: floatPtr(99)}
	audit := &domain.AuditResult{ProductID: "worst", GlobalScore: 0}

	factors := calc.Calculate(&p, audit, false, now)
	assert.LessOrEqual(t, factors.Stock, WeightStock)
	assert.LessOrEqual(t, factors.Quality, WeightQuality)
	assert.LessOrEqual(t, factors.Margin, WeightMargin)
	assert.LessOrEqual(t, factors.Sync, WeightSync)
	assert.LessOrEqual(t, factors.PriceRule, WeightPriceRule)

	sum := factors.Stock + factors.Quality + factors.Margin + factors.Sync + factors.PriceRule
	assert.InDelta(t, sum, factors.Sum(), 1e-12)
	assert.LessOrEqual(t, factors.Sum(), 100.0)
}

func TestMarginOf(t *testing.T) {
	tests := []struct {
		name    string
		product domain.Product
		want    float64
	}{
		{"derived from price and cost", domain.Product{Price: floatPtr(100), CostPrice: floatPtr(90)}, 10},
		{"precomputed takes precedence", domain.Product{Price: floatPtr(100), CostPrice: floatPtr(90), ProfitMargin: floatPtr(42)}, 42},
		{"no price", domain.Product{CostPrice: floatPtr(90)}, 0},
		{"no cost", domain.Product{Price: floatPtr(100)}, 0},
		{"negative cost clamped", domain.Product{Price: floatPtr(100), CostPrice: floatPtr(-10)}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MarginOf(&tt.product), 1e-9)
		})
	}
}
