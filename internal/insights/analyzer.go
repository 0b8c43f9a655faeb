// Package insights combines external stock-out predictions with the margin
// heuristics of the scoring engine to produce urgency-sorted alerts, a
// coarse ROI projection and per-category trend labels. It reuses the
// engine's margin derivation but never feeds back into it.
package insights

import (
	"sort"

	"github.com/shopexio/backend-go/internal/domain"
	"github.com/shopexio/backend-go/internal/engine"
)

// Heuristic thresholds.
const (
	marginDeclineCeiling   = 15.0 // margins below this raise a decline alert
	marginCriticalFloor    = 5.0
	marginHighFloor        = 10.0
	opportunityMarginMin   = 30.0
	opportunityStockMin    = 50
	trendMinGroupSize      = 5
	trendGrowingMargin     = 25.0
	trendGrowingLowStock   = 0.2
	trendDecliningMargin   = 15.0
	trendDecliningLowStock = 0.5

	// roiGrowthMultiplier is a flat placeholder, not a real projection.
	roiGrowthMultiplier = 1.1
)

// Analyzer derives predictive insights from a product list. Stateless and
// pure like the engine; safe for concurrent use.
type Analyzer struct {
	cfg engine.Config
}

// NewAnalyzer creates an analyzer sharing the engine's thresholds (the
// stock-critical threshold drives the low-stock ratio in trends).
func NewAnalyzer(cfg engine.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// BuildAlerts merges stock-out, margin-decline and opportunity alerts into
// one list ordered by urgency, then descending impact, then product ID.
func (a *Analyzer) BuildAlerts(products []domain.Product, predictions []domain.StockPrediction) []Alert {
	alerts := make([]Alert, 0, len(predictions)+len(products))

	alerts = append(alerts, a.stockoutAlerts(products, predictions)...)
	alerts = append(alerts, a.marginAlerts(products)...)
	alerts = append(alerts, a.opportunityAlerts(products)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		if urgencyRank[alerts[i].Urgency] != urgencyRank[alerts[j].Urgency] {
			return urgencyRank[alerts[i].Urgency] < urgencyRank[alerts[j].Urgency]
		}
		if alerts[i].PotentialImpact != alerts[j].PotentialImpact {
			return alerts[i].PotentialImpact > alerts[j].PotentialImpact
		}
		return alerts[i].ProductID < alerts[j].ProductID
	})

	return alerts
}

// stockoutAlerts wraps the external forecast rows. The impact is the stock
// value that disappears if the product runs out.
func (a *Analyzer) stockoutAlerts(products []domain.Product, predictions []domain.StockPrediction) []Alert {
	byID := indexProducts(products)

	alerts := make([]Alert, 0, len(predictions))
	for _, pred := range predictions {
		alert := Alert{
			Type:              AlertStockout,
			ProductID:         pred.ProductID,
			Urgency:           ParseUrgency(pred.Urgency),
			Recommendation:    pred.Recommendation,
			DaysUntilStockout: pred.DaysUntilStockout,
		}
		if p, ok := byID[pred.ProductID]; ok {
			alert.ProductName = p.Name
			alert.PotentialImpact = stockValue(p)
		}
		alerts = append(alerts, alert)
	}
	return alerts
}

func (a *Analyzer) marginAlerts(products []domain.Product) []Alert {
	alerts := make([]Alert, 0)
	for i := range products {
		p := &products[i]
		margin := engine.MarginOf(p)
		if margin <= 0 || margin >= marginDeclineCeiling {
			continue
		}

		urgency := UrgencyMedium
		switch {
		case margin < marginCriticalFloor:
			urgency = UrgencyCritical
		case margin < marginHighFloor:
			urgency = UrgencyHigh
		}

		alerts = append(alerts, Alert{
			Type:            AlertMarginDecline,
			ProductID:       p.ID,
			ProductName:     p.Name,
			Urgency:         urgency,
			Recommendation:  "Revoir le prix ou renégocier le coût d'achat",
			PotentialImpact: stockValue(p),
		})
	}
	return alerts
}

func (a *Analyzer) opportunityAlerts(products []domain.Product) []Alert {
	alerts := make([]Alert, 0)
	for i := range products {
		p := &products[i]
		margin := engine.MarginOf(p)
		if margin < opportunityMarginMin || stockOf(p) <= opportunityStockMin {
			continue
		}

		alerts = append(alerts, Alert{
			Type:            AlertOpportunity,
			ProductID:       p.ID,
			ProductName:     p.Name,
			Urgency:         UrgencyLow,
			Recommendation:  "Pousser la visibilité: marge forte et stock profond",
			PotentialImpact: stockValue(p) * margin / 100,
		})
	}
	return alerts
}

// ProjectROI computes the catalog ROI from cost and revenue totals and
// applies the flat growth multiplier. The projection is a placeholder the
// product defines; treat the projected figure as indicative only.
func (a *Analyzer) ProjectROI(products []domain.Product) ROIProjection {
	proj := ROIProjection{}
	for i := range products {
		p := &products[i]
		stock := float64(stockOf(p))
		proj.TotalRevenue += priceOf(p) * stock
		if p.CostPrice != nil && *p.CostPrice > 0 {
			proj.TotalCost += *p.CostPrice * stock
		}
	}

	if proj.TotalCost > 0 {
		proj.CurrentROI = (proj.TotalRevenue - proj.TotalCost) / proj.TotalCost * 100
	}
	proj.ProjectedROI = proj.CurrentROI * roiGrowthMultiplier
	return proj
}

// AnalyzeTrends labels each category with enough products. Categories with
// fewer than five products carry too little signal and are skipped.
func (a *Analyzer) AnalyzeTrends(products []domain.Product) []CategoryTrend {
	type group struct {
		count     int
		marginSum float64
		lowStock  int
	}

	groups := make(map[string]*group)
	for i := range products {
		p := &products[i]
		if p.Category == "" {
			continue
		}
		g := groups[p.Category]
		if g == nil {
			g = &group{}
			groups[p.Category] = g
		}
		g.count++
		g.marginSum += engine.MarginOf(p)
		if stockOf(p) < a.cfg.StockCriticalThreshold {
			g.lowStock++
		}
	}

	trends := make([]CategoryTrend, 0, len(groups))
	for category, g := range groups {
		if g.count < trendMinGroupSize {
			continue
		}

		trend := CategoryTrend{
			Category:      category,
			ProductCount:  g.count,
			AvgMargin:     g.marginSum / float64(g.count),
			LowStockRatio: float64(g.lowStock) / float64(g.count),
		}
		trend.Trend = trendLabel(trend.AvgMargin, trend.LowStockRatio)
		trends = append(trends, trend)
	}

	sort.Slice(trends, func(i, j int) bool { return trends[i].Category < trends[j].Category })
	return trends
}

func trendLabel(avgMargin, lowStockRatio float64) TrendLabel {
	switch {
	case avgMargin > trendGrowingMargin && lowStockRatio < trendGrowingLowStock:
		return TrendGrowing
	case avgMargin < trendDecliningMargin || lowStockRatio > trendDecliningLowStock:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func indexProducts(products []domain.Product) map[string]*domain.Product {
	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID
}

func stockValue(p *domain.Product) float64 {
	return priceOf(p) * float64(stockOf(p))
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
