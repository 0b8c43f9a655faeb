package insights

// Urgency orders alerts from most to least pressing.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

var urgencyRank = map[Urgency]int{
	UrgencyCritical: 0,
	UrgencyHigh:     1,
	UrgencyMedium:   2,
	UrgencyLow:      3,
}

// ParseUrgency maps external urgency strings onto the known levels,
// defaulting unknown values to low.
func ParseUrgency(s string) Urgency {
	u := Urgency(s)
	if _, ok := urgencyRank[u]; ok {
		return u
	}
	return UrgencyLow
}

// AlertType identifies the alert families the insights module emits.
type AlertType string

const (
	AlertStockout      AlertType = "stockout"
	AlertMarginDecline AlertType = "margin_decline"
	AlertOpportunity   AlertType = "opportunity"
)

// Alert is one actionable signal, ready for display.
type Alert struct {
	Type              AlertType `json:"type"`
	ProductID         string    `json:"product_id"`
	ProductName       string    `json:"product_name,omitempty"`
	Urgency           Urgency   `json:"urgency"`
	Recommendation    string    `json:"recommendation,omitempty"`
	PotentialImpact   float64   `json:"potential_impact"`
	DaysUntilStockout int       `json:"days_until_stockout,omitempty"`
}

// ROIProjection is the catalog-level return estimate.
type ROIProjection struct {
	TotalCost    float64 `json:"total_cost"`
	TotalRevenue float64 `json:"total_revenue"`
	CurrentROI   float64 `json:"current_roi"`
	ProjectedROI float64 `json:"projected_roi"`
}

// TrendLabel classifies a category's direction.
type TrendLabel string

const (
	TrendGrowing   TrendLabel = "growing"
	TrendDeclining TrendLabel = "declining"
	TrendStable    TrendLabel = "stable"
)

// CategoryTrend summarizes one product category.
type CategoryTrend struct {
	Category      string     `json:"category"`
	ProductCount  int        `json:"product_count"`
	AvgMargin     float64    `json:"avg_margin"`
	LowStockRatio float64    `json:"low_stock_ratio"`
	Trend         TrendLabel `json:"trend"`
}
