package engine

import "sort"

// SortedProductIDs produces the global urgency ordering: risk score
// descending, then opportunity score descending, then product ID ascending
// so identical inputs always yield identical orderings.
func SortedProductIDs(scores []ProductScore) []string {
	ordered := make([]*ProductScore, len(scores))
	for i := range scores {
		ordered[i] = &scores[i]
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].RiskScore != ordered[j].RiskScore {
			return ordered[i].RiskScore > ordered[j].RiskScore
		}
		if ordered[i].OpportunityScore != ordered[j].OpportunityScore {
			return ordered[i].OpportunityScore > ordered[j].OpportunityScore
		}
		return ordered[i].Product.ID < ordered[j].Product.ID
	})

	ids := make([]string, len(ordered))
	for i, s := range ordered {
		ids[i] = s.Product.ID
	}
	return ids
}
