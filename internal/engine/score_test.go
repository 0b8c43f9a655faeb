package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shopexio/backend-go/internal/domain"
)

func TestScorer_OpportunityScore(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	tests := []struct {
		name  string
		stock int
		price float64
		cost  float64
		audit *domain.AuditResult
		want  float64
	}{
		{
			name:  "nothing fires",
			stock: 10, price: 100, cost: 90,
			want: 0,
		},
		{
			name:  "high margin only",
			stock: 10, price: 100, cost: 60,
			want: 30,
		},
		{
			name:  "mid margin only",
			stock: 10, price: 100, cost: 78,
			want: 15,
		},
		{
			name:  "deep stock only",
			stock: 51, price: 100, cost: 90,
			want: 20,
		},
		{
			name:  "ok stock only",
			stock: 21, price: 100, cost: 90,
			want: 10,
		},
		{
			name:  "mid quality only",
			stock: 10, price: 100, cost: 90,
			audit: &domain.AuditResult{ProductID: "p1", GlobalScore: 55},
			want:  25,
		},
		{
			name:  "quality below low band does not count",
			stock: 10, price: 100, cost: 90,
			audit: &domain.AuditResult{ProductID: "p1", GlobalScore: 39},
			want:  0,
		},
		{
			name:  "quality at 70 does not count",
			stock: 10, price: 100, cost: 90,
			audit: &domain.AuditResult{ProductID: "p1", GlobalScore: 70},
			want:  0,
		},
		{
			name:  "everything fires",
			stock: 100, price: 100, cost: 50,
			audit: &domain.AuditResult{ProductID: "p1", GlobalScore: 60},
			want:  75,
		},
	}

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Product{
				ID:            "p1",
				StockQuantity: intPtr(tt.stock),
				Price:         floatPtr(tt.price),
				CostPrice:     floatPtr(tt.cost),
				UpdatedAt:     timePtr(now),
			}
			score := scorer.Score(&p, tt.audit, true, now)
			assert.InDelta(t, tt.want, score.OpportunityScore, 1e-9)
		})
	}
}

func TestScorer_RiskScoreIsFactorSum(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	p := domain.Product{
		ID:            "p1",
		StockQuantity: intPtr(3),
		Price:         floatPtr(80),
		CostPrice:     floatPtr(74),
	}
	audit := &domain.AuditResult{ProductID: "p1", GlobalScore: 25}

	score := scorer.Score(&p, audit, false, now)
	assert.InDelta(t, score.Factors.Sum(), score.RiskScore, 1e-12)
}
