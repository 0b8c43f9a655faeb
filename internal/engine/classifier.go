package engine

// Classification thresholds.
const (
	riskBadgeThreshold          = 50.0
	opportunityBadgeThreshold   = 40.0
	optimizedRiskCeiling        = 10.0
	optimizedOpportunityCeiling = 20.0

	priorityCriticalThreshold = 60.0
	priorityHighThreshold     = 40.0
	priorityMediumThreshold   = 20.0
)

// Classify maps a product score to its badge. Total and deterministic:
// the same score always yields the same badge.
func Classify(score ProductScore) ProductBadge {
	badge := ProductBadge{
		ProductID: score.Product.ID,
		Type:      badgeType(score.RiskScore, score.OpportunityScore),
		Priority:  PriorityFor(score.RiskScore),
		Score:     score.RiskScore,
	}

	if badge.Type == BadgeRisk {
		badge.MainIssue = mainIssue(score.Factors)
	}

	return badge
}

func badgeType(riskScore, opportunityScore float64) BadgeType {
	switch {
	case riskScore > riskBadgeThreshold:
		return BadgeRisk
	case opportunityScore > opportunityBadgeThreshold:
		return BadgeOpportunity
	case riskScore < optimizedRiskCeiling && opportunityScore < optimizedOpportunityCeiling:
		return BadgeOptimized
	default:
		return BadgeNeutral
	}
}

// PriorityFor buckets a risk score into a priority level.
func PriorityFor(riskScore float64) PriorityLevel {
	switch {
	case riskScore > priorityCriticalThreshold:
		return PriorityCritical
	case riskScore > priorityHighThreshold:
		return PriorityHigh
	case riskScore > priorityMediumThreshold:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// mainIssue picks the single largest per-product factor. Ties resolve in
// the fixed order stock > quality > margin > sync. The price-rule factor is
// catalog-wide and never reported as an individual product's issue.
func mainIssue(f RiskFactors) string {
	issue := "stock"
	best := f.Stock

	if f.Quality > best {
		issue, best = "quality", f.Quality
	}
	if f.Margin > best {
		issue, best = "margin", f.Margin
	}
	if f.Sync > best {
		issue = "sync"
	}

	return issue
}
