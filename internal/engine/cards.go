package engine

import (
	"fmt"
	"math"
	"sort"
)

// Card-specific thresholds.
const (
	aiOpportunityCardThreshold = 30.0 // opportunityScore above which a product joins ai_opportunities
	cardCountWeight            = 50.0 // share of priorityScore driven by member ratio
)

// CardBuilder groups scored products into the six priority cards.
type CardBuilder struct {
	cfg Config
}

// NewCardBuilder creates a new card builder.
func NewCardBuilder(cfg Config) *CardBuilder {
	return &CardBuilder{cfg: cfg}
}

// Build produces all six cards, sorted by descending priority score.
// Zero-count cards are well-formed; consumers conventionally hide them.
func (cb *CardBuilder) Build(scores []ProductScore, priceRulesActive bool) []PriorityCard {
	cards := make([]PriorityCard, 0, len(CardTypes))
	for _, cardType := range CardTypes {
		cards = append(cards, cb.buildCard(cardType, scores, priceRulesActive))
	}

	// Descending by priority score; canonical type order breaks ties so
	// repeated evaluations emit identical card lists.
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].PriorityScore != cards[j].PriorityScore {
			return cards[i].PriorityScore > cards[j].PriorityScore
		}
		return cardTypeRank(cards[i].Type) < cardTypeRank(cards[j].Type)
	})

	return cards
}

func (cb *CardBuilder) buildCard(cardType CardType, scores []ProductScore, priceRulesActive bool) PriorityCard {
	members := make([]ProductScore, 0)
	for i := range scores {
		if cardMember(cardType, &scores[i], priceRulesActive) {
			members = append(members, scores[i])
		}
	}

	card := PriorityCard{
		Type:       cardType,
		Count:      len(members),
		ProductIDs: make([]string, 0, len(members)),
	}

	var riskSum, impact float64
	for i := range members {
		card.ProductIDs = append(card.ProductIDs, members[i].Product.ID)
		riskSum += members[i].RiskScore
		// Negative margins contribute nothing; impact stays non-negative.
		impact += priceOf(&members[i].Product) * math.Max(0, members[i].Margin) / 100
	}
	card.EstimatedImpact = impact

	// priorityScore mixes how much of the catalog is affected with how
	// risky the affected products are on average.
	if len(members) > 0 && len(scores) > 0 {
		ratio := float64(len(members)) / float64(len(scores))
		card.PriorityScore = ratio*cardCountWeight + riskSum/float64(len(members))
	}
	card.Priority = PriorityFor(card.PriorityScore)
	card.ImpactLabel = impactLabel(cardType, card.Count, impact)

	return card
}

// cardMember is the membership predicate for each card category.
func cardMember(cardType CardType, s *ProductScore, priceRulesActive bool) bool {
	switch cardType {
	case CardStockCritical:
		return s.Factors.Stock > 0
	case CardQualityLow:
		return s.Factors.Quality > 0
	case CardNotSynced:
		return s.Factors.Sync > 0
	case CardMarginLoss:
		return s.Factors.Margin > 0
	case CardAIOpportunities:
		return s.OpportunityScore > aiOpportunityCardThreshold
	case CardNoPriceRule:
		// Catalog-wide signal: without an all-scope rule every product
		// is uncovered. Coarse on purpose, see pricing coverage note.
		return !priceRulesActive
	default:
		return false
	}
}

func impactLabel(cardType CardType, count int, impact float64) string {
	switch cardType {
	case CardAIOpportunities:
		return fmt.Sprintf("+%.0f€ potentiel", impact)
	case CardMarginLoss:
		return fmt.Sprintf("%.0f€ à risque", impact)
	default:
		return fmt.Sprintf("%d produits", count)
	}
}

func cardTypeRank(t CardType) int {
	for i, ct := range CardTypes {
		if ct == t {
			return i
		}
	}
	return len(CardTypes)
}
