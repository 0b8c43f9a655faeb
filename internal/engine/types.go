package engine

import (
	"time"

	"github.com/shopexio/backend-go/internal/domain"
)

// BadgeType classifies a product's overall state.
type BadgeType string

const (
	BadgeRisk        BadgeType = "risk"
	BadgeOpportunity BadgeType = "opportunity"
	BadgeOptimized   BadgeType = "optimized"
	BadgeNeutral     BadgeType = "neutral"
)

// PriorityLevel buckets a risk score for display.
type PriorityLevel string

const (
	PriorityCritical PriorityLevel = "critical"
	PriorityHigh     PriorityLevel = "high"
	PriorityMedium   PriorityLevel = "medium"
	PriorityLow      PriorityLevel = "low"
)

// CardType identifies one of the six fixed priority card categories.
type CardType string

const (
	CardStockCritical   CardType = "stock_critical"
	CardNoPriceRule     CardType = "no_price_rule"
	CardAIOpportunities CardType = "ai_opportunities"
	CardNotSynced       CardType = "not_synced"
	CardQualityLow      CardType = "quality_low"
	CardMarginLoss      CardType = "margin_loss"
)

// CardTypes lists all card categories in their canonical order.
var CardTypes = []CardType{
	CardStockCritical,
	CardNoPriceRule,
	CardAIOpportunities,
	CardNotSynced,
	CardQualityLow,
	CardMarginLoss,
}

// RiskFactors holds the five capped risk contributions for one product.
type RiskFactors struct {
	Stock     float64 `json:"stock"`
	Quality   float64 `json:"quality"`
	Margin    float64 `json:"margin"`
	Sync      float64 `json:"sync"`
	PriceRule float64 `json:"price_rule"`
}

// Sum returns the risk score: the exact sum of the five contributions.
func (f RiskFactors) Sum() float64 {
	return f.Stock + f.Quality + f.Margin + f.Sync + f.PriceRule
}

// ProductScore is the per-product scoring outcome.
type ProductScore struct {
	Product          domain.Product `json:"product"`
	RiskScore        float64        `json:"risk_score"`
	OpportunityScore float64        `json:"opportunity_score"`
	Factors          RiskFactors    `json:"factors"`
	Margin           float64        `json:"margin"`
}

// ProductBadge is the classifier output for one product.
type ProductBadge struct {
	ProductID string        `json:"product_id"`
	Type      BadgeType     `json:"type"`
	Priority  PriorityLevel `json:"priority"`
	Score     float64       `json:"score"`
	MainIssue string        `json:"main_issue,omitempty"`
}

// PriorityCard aggregates the products that share a triggered factor.
type PriorityCard struct {
	Type            CardType      `json:"type"`
	Count           int           `json:"count"`
	ProductIDs      []string      `json:"product_ids"`
	Priority        PriorityLevel `json:"priority"`
	PriorityScore   float64       `json:"priority_score"`
	EstimatedImpact float64       `json:"estimated_impact"`
	ImpactLabel     string        `json:"impact_label"`
}

// Metrics are the catalog-wide health figures.
type Metrics struct {
	HealthScore              float64 `json:"health_score"`
	EstimatedPotentialGain   float64 `json:"estimated_potential_gain"`
	TotalRiskProducts        int     `json:"total_risk_products"`
	TotalOpportunityProducts int     `json:"total_opportunity_products"`
}

// KPIs are the raw-catalog rollups, independent of audit data.
type KPIs struct {
	AvgMargin          float64 `json:"avg_margin"`
	StockValue         float64 `json:"stock_value"`
	PotentialProfit    float64 `json:"potential_profit"`
	ProfitableProducts int     `json:"profitable_products"`
}

// Snapshot is one immutable engine input. Now is injected so staleness
// checks are reproducible.
type Snapshot struct {
	Products         []domain.Product     `json:"products"`
	AuditResults     []domain.AuditResult `json:"audit_results"`
	PriceRulesActive bool                 `json:"price_rules_active"`
	Now              time.Time            `json:"now"`
}

// Result is everything one evaluation produces. All fields are rebuilt
// wholesale on each call; nothing is mutated in place.
type Result struct {
	PriorityCards    []PriorityCard          `json:"priority_cards"`
	ProductBadges    map[string]ProductBadge `json:"product_badges"`
	SortedProductIDs []string                `json:"sorted_product_ids"`
	Metrics          Metrics                 `json:"metrics"`
	KPIs             KPIs                    `json:"kpis"`
	Scores           []ProductScore          `json:"scores"`
}
