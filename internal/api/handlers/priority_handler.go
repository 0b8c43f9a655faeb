package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopexio/backend-go/internal/engine"
	"github.com/shopexio/backend-go/internal/service"
)

type PriorityHandler struct {
	service *service.PriorityService
}

func NewPriorityHandler(service *service.PriorityService) *PriorityHandler {
	return &PriorityHandler{service: service}
}

// GetAnalysis returns the full engine result: cards, badges, ordering,
// metrics and KPIs in one payload.
func (h *PriorityHandler) GetAnalysis(c *gin.Context) {
	result, err := h.service.Analyze(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to compute priority analysis: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCards returns the priority cards. Zero-count cards are hidden by
// default; pass include_empty=true to get all six.
func (h *PriorityHandler) GetCards(c *gin.Context) {
	result, err := h.service.Analyze(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to compute priority cards: "+err.Error())
		return
	}

	cards := result.PriorityCards
	if c.Query("include_empty") != "true" {
		filtered := make([]engine.PriorityCard, 0, len(cards))
		for _, card := range cards {
			if card.Count > 0 {
				filtered = append(filtered, card)
			}
		}
		cards = filtered
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

func (h *PriorityHandler) GetBadges(c *gin.Context) {
	result, err := h.service.Analyze(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to compute product badges: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"badges":             result.ProductBadges,
		"sorted_product_ids": result.SortedProductIDs,
	})
}

func (h *PriorityHandler) GetMetrics(c *gin.Context) {
	result, err := h.service.Analyze(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to compute metrics: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result.Metrics)
}

func (h *PriorityHandler) GetKPIs(c *gin.Context) {
	result, err := h.service.Analyze(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to compute KPIs: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result.KPIs)
}

// Invalidate drops the cached analysis. Catalog mutations call this so the
// next read recomputes.
func (h *PriorityHandler) Invalidate(c *gin.Context) {
	if err := h.service.Invalidate(c.Request.Context()); err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to invalidate cache: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
