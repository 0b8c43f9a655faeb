package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopexio/backend-go/internal/domain"
)

func TestBuildMetrics(t *testing.T) {
	result, _ := evaluateFixture(t, true)

	// Risk scores: p-critical ~51.33, p-healthy 0, p-thin-margin ~13.33,
	// p-bad-quality 15.625. Mean ~20.07, health ~79.93.
	mean := (28 + 200.0/15 + 10 + 0 + 200.0/15 + 15.625) / 4
	assert.InDelta(t, 100-mean, result.Metrics.HealthScore, 1e-9)

	// Only p-critical crosses the risk threshold (>40).
	assert.Equal(t, 1, result.Metrics.TotalRiskProducts)

	// ai_opportunities members: p-healthy and p-bad-quality.
	assert.Equal(t, 2, result.Metrics.TotalOpportunityProducts)

	// Gain = 15% of their margin value: (60*0.5 + 45*(25/45)) * 0.15.
	wantGain := (60*0.5 + 25) * 0.15
	assert.InDelta(t, wantGain, result.Metrics.EstimatedPotentialGain, 1e-9)
}

func TestBuildMetrics_HealthMonotonicity(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	base := Snapshot{
		Products: []domain.Product{
			{ID: "p1", StockQuantity: intPtr(8), Price: floatPtr(100), CostPrice: floatPtr(50), UpdatedAt: timePtr(now)},
			{ID: "p2", StockQuantity: intPtr(100), Price: floatPtr(30), CostPrice: floatPtr(10), UpdatedAt: timePtr(now)},
		},
		PriceRulesActive: true,
		Now:              now,
	}

	eng := New(DefaultConfig())
	healthBefore := eng.Evaluate(base).Metrics.HealthScore

	// Strictly increase p1's risk: drop its stock further.
	worse := base
	worse.Products = append([]domain.Product(nil), base.Products...)
	worse.Products[0].StockQuantity = intPtr(2)
	healthAfter := eng.Evaluate(worse).Metrics.HealthScore

	assert.Less(t, healthAfter, healthBefore,
		"raising one product's risk must not raise the health score")
}

func TestBuildMetrics_HealthClamped(t *testing.T) {
	scores := []ProductScore{
		{Product: domain.Product{ID: "p1"}, RiskScore: 100},
		{Product: domain.Product{ID: "p2"}, RiskScore: 100},
	}

	m := BuildMetrics(scores)
	assert.InDelta(t, 0, m.HealthScore, 1e-9)
	assert.GreaterOrEqual(t, m.HealthScore, 0.0)
	assert.LessOrEqual(t, m.HealthScore, 100.0)
}

func TestBuildMetrics_NegativeMarginGainClamped(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Products: []domain.Product{
			// Qualifies for the opportunity pool on stock (+20) and audit
			// quality (+25) alone, despite a negative stored margin.
			{ID: "neg", StockQuantity: intPtr(60), Price: floatPtr(100), ProfitMargin: floatPtr(-50), UpdatedAt: timePtr(now)},
		},
		AuditResults: []domain.AuditResult{
			{ProductID: "neg", GlobalScore: 55, AuditedAt: now},
		},
		PriceRulesActive: true,
		Now:              now,
	}

	result := New(DefaultConfig()).Evaluate(snap)
	require.Len(t, result.Scores, 1)
	assert.InDelta(t, 45, result.Scores[0].OpportunityScore, 1e-9)
	assert.Equal(t, 1, result.Metrics.TotalOpportunityProducts)

	assert.GreaterOrEqual(t, result.Metrics.EstimatedPotentialGain, 0.0)
	assert.InDelta(t, 0, result.Metrics.EstimatedPotentialGain, 1e-9)
}

func TestBuildKPIs(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Products: []domain.Product{
			// margin 50%, stock 10, price 100
			{ID: "p1", StockQuantity: intPtr(10), Price: floatPtr(100), CostPrice: floatPtr(50), UpdatedAt: timePtr(now)},
			// margin 10%, stock 5, price 40
			{ID: "p2", StockQuantity: intPtr(5), Price: floatPtr(40), CostPrice: floatPtr(36), UpdatedAt: timePtr(now)},
		},
		PriceRulesActive: true,
		Now:              now,
	}

	result := New(DefaultConfig()).Evaluate(snap)
	k := result.KPIs

	assert.InDelta(t, 30, k.AvgMargin, 1e-9)                         // (50+10)/2
	assert.InDelta(t, 100*10+40*5, k.StockValue, 1e-9)               // 1200
	assert.InDelta(t, 100*0.5*10+40*0.1*5, k.PotentialProfit, 1e-9)  // 520
	assert.Equal(t, 1, k.ProfitableProducts)                         // only p1 >= 20%
}

func TestBuildKPIs_Empty(t *testing.T) {
	k := BuildKPIs(nil)
	assert.Zero(t, k.AvgMargin)
	assert.Zero(t, k.StockValue)
	assert.Zero(t, k.PotentialProfit)
	assert.Zero(t, k.ProfitableProducts)
}
