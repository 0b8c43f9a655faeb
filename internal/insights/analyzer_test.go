package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopexio/backend-go/internal/domain"
	"github.com/shopexio/backend-go/internal/engine"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func product(id string, stock int, price, cost float64) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          "Produit " + id,
		StockQuantity: intPtr(stock),
		Price:         floatPtr(price),
		CostPrice:     floatPtr(cost),
	}
}

func newAnalyzer() *Analyzer {
	return NewAnalyzer(engine.DefaultConfig())
}

func TestParseUrgency(t *testing.T) {
	assert.Equal(t, UrgencyCritical, ParseUrgency("critical"))
	assert.Equal(t, UrgencyHigh, ParseUrgency("high"))
	assert.Equal(t, UrgencyLow, ParseUrgency("unknown value"))
	assert.Equal(t, UrgencyLow, ParseUrgency(""))
}

func TestAnalyzer_MarginAlertUrgency(t *testing.T) {
	tests := []struct {
		name   string
		cost   float64
		expect Urgency
		none   bool
	}{
		{"margin below 5 is critical", 97, UrgencyCritical, false},
		{"margin below 10 is high", 92, UrgencyHigh, false},
		{"margin below 15 is medium", 88, UrgencyMedium, false},
		{"margin at 15 raises nothing", 85, "", true},
		{"negative margin raises nothing", 120, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := []domain.Product{product("p1", 10, 100, tt.cost)}
			alerts := newAnalyzer().BuildAlerts(products, nil)

			if tt.none {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, AlertMarginDecline, alerts[0].Type)
			assert.Equal(t, tt.expect, alerts[0].Urgency)
		})
	}
}

func TestAnalyzer_OpportunityAlerts(t *testing.T) {
	products := []domain.Product{
		product("deep", 60, 100, 50),    // margin 50, stock 60: fires
		product("shallow", 50, 100, 50), // stock not above 50: no alert
		product("thin", 60, 100, 80),    // margin 20: no alert
	}

	alerts := newAnalyzer().BuildAlerts(products, nil)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertOpportunity, alerts[0].Type)
	assert.Equal(t, "deep", alerts[0].ProductID)
	assert.Equal(t, UrgencyLow, alerts[0].Urgency)
	assert.InDelta(t, 100*60*0.5, alerts[0].PotentialImpact, 1e-9)
}

func TestAnalyzer_AlertOrdering(t *testing.T) {
	products := []domain.Product{
		product("m-critical", 10, 100, 96), // margin 4: critical margin alert
		product("m-high", 10, 100, 92),     // margin 8: high margin alert
		product("opp", 80, 100, 40),        // opportunity: low urgency
		product("out", 20, 50, 25),
	}
	predictions := []domain.StockPrediction{
		{ProductID: "out", DaysUntilStockout: 3, Urgency: "critical", Recommendation: "Réapprovisionner sous 3 jours"},
	}

	alerts := newAnalyzer().BuildAlerts(products, predictions)
	require.Len(t, alerts, 4)

	// Both critical alerts carry the same impact (1000), so the product
	// ID breaks the tie.
	assert.Equal(t, UrgencyCritical, alerts[0].Urgency)
	assert.Equal(t, UrgencyCritical, alerts[1].Urgency)
	assert.Equal(t, "m-critical", alerts[0].ProductID)
	assert.Equal(t, "out", alerts[1].ProductID)
	assert.Equal(t, UrgencyHigh, alerts[2].Urgency)
	assert.Equal(t, UrgencyLow, alerts[3].Urgency)

	// Stockout metadata carried through.
	assert.Equal(t, 3, alerts[1].DaysUntilStockout)
	assert.Equal(t, "Réapprovisionner sous 3 jours", alerts[1].Recommendation)
	assert.Equal(t, "Produit out", alerts[1].ProductName)
}

func TestAnalyzer_ProjectROI(t *testing.T) {
	products := []domain.Product{
		product("p1", 10, 100, 50), // revenue 1000, cost 500
		product("p2", 5, 40, 20),   // revenue 200, cost 100
	}

	proj := newAnalyzer().ProjectROI(products)
	assert.InDelta(t, 1200, proj.TotalRevenue, 1e-9)
	assert.InDelta(t, 600, proj.TotalCost, 1e-9)
	assert.InDelta(t, 100, proj.CurrentROI, 1e-9)
	assert.InDelta(t, 110, proj.ProjectedROI, 1e-9)
}

func TestAnalyzer_ProjectROI_NoCost(t *testing.T) {
	products := []domain.Product{{ID: "p1", StockQuantity: intPtr(10), Price: floatPtr(100)}}

	proj := newAnalyzer().ProjectROI(products)
	assert.Zero(t, proj.CurrentROI)
	assert.Zero(t, proj.ProjectedROI)
}

func TestAnalyzer_AnalyzeTrends(t *testing.T) {
	products := make([]domain.Product, 0, 16)

	// "forte": 5 products, margin 40%, full stock => growing.
	for i := 0; i < 5; i++ {
		p := product(ids("f", i), 50, 100, 60)
		p.Category = "forte"
		products = append(products, p)
	}
	// "faible": 5 products, margin 10% => declining.
	for i := 0; i < 5; i++ {
		p := product(ids("w", i), 50, 100, 90)
		p.Category = "faible"
		products = append(products, p)
	}
	// "moyenne": 5 products, margin 20%, some low stock => stable.
	for i := 0; i < 5; i++ {
		stock := 50
		if i < 2 {
			stock = 2 // 40% low-stock ratio
		}
		p := product(ids("m", i), stock, 100, 80)
		p.Category = "moyenne"
		products = append(products, p)
	}
	// Too small a group: ignored.
	small := product("tiny", 50, 100, 50)
	small.Category = "confidentielle"
	products = append(products, small)

	trends := newAnalyzer().AnalyzeTrends(products)
	require.Len(t, trends, 3)

	byCategory := make(map[string]CategoryTrend)
	for _, tr := range trends {
		byCategory[tr.Category] = tr
	}

	assert.Equal(t, TrendGrowing, byCategory["forte"].Trend)
	assert.Equal(t, TrendDeclining, byCategory["faible"].Trend)
	assert.Equal(t, TrendStable, byCategory["moyenne"].Trend)
	assert.NotContains(t, byCategory, "confidentielle")
	assert.InDelta(t, 0.4, byCategory["moyenne"].LowStockRatio, 1e-9)
}

func TestAnalyzer_TrendsHighLowStockDeclines(t *testing.T) {
	products := make([]domain.Product, 0, 5)
	for i := 0; i < 5; i++ {
		stock := 1
		if i == 0 {
			stock = 50
		}
		p := product(ids("s", i), stock, 100, 60) // margin 40 but 80% low stock
		p.Category = "rupture"
		products = append(products, p)
	}

	trends := newAnalyzer().AnalyzeTrends(products)
	require.Len(t, trends, 1)
	assert.Equal(t, TrendDeclining, trends[0].Trend)
}

func ids(prefix string, i int) string {
	return prefix + string(rune('a'+i))
}
