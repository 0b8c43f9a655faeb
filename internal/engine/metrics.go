package engine

import "math"

const (
	// gainCaptureRate is the flat share of opportunity margin assumed
	// realizable. Placeholder agreed with product, not a model.
	gainCaptureRate = 0.15

	riskProductThreshold    = 40.0
	profitableMarginMinimum = 20.0
)

// BuildMetrics rolls per-product scores into the catalog-wide figures.
func BuildMetrics(scores []ProductScore) Metrics {
	m := Metrics{HealthScore: 100}
	if len(scores) == 0 {
		return m
	}

	var riskSum float64
	for i := range scores {
		s := &scores[i]
		riskSum += s.RiskScore

		if s.RiskScore > riskProductThreshold {
			m.TotalRiskProducts++
		}
		if s.OpportunityScore > aiOpportunityCardThreshold {
			m.TotalOpportunityProducts++
			// A product can qualify on stock and quality alone; a negative
			// margin must not pull the gain below zero.
			m.EstimatedPotentialGain += priceOf(&s.Product) * math.Max(0, s.Margin) / 100 * gainCaptureRate
		}
	}

	m.HealthScore = clamp(100-riskSum/float64(len(scores)), 0, 100)
	return m
}

// BuildKPIs computes the raw-catalog rollups. These ignore audits and
// pricing rules entirely; only price, cost and stock matter.
func BuildKPIs(scores []ProductScore) KPIs {
	k := KPIs{}
	if len(scores) == 0 {
		return k
	}

	var marginSum float64
	for i := range scores {
		s := &scores[i]
		price := priceOf(&s.Product)
		stock := float64(stockOf(&s.Product))

		marginSum += s.Margin
		k.StockValue += price * stock
		k.PotentialProfit += price * s.Margin / 100 * stock
		if s.Margin >= profitableMarginMinimum {
			k.ProfitableProducts++
		}
	}

	k.AvgMargin = marginSum / float64(len(scores))
	return k
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
