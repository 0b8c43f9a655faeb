package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopexio/backend-go/internal/service"
)

type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// GetSummary returns the catalog rollup: product count and active rules.
func (h *CatalogHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to build catalog summary: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *CatalogHandler) ActivateRule(c *gin.Context) {
	h.setRuleActive(c, true)
}

func (h *CatalogHandler) DeactivateRule(c *gin.Context) {
	h.setRuleActive(c, false)
}

func (h *CatalogHandler) setRuleActive(c *gin.Context, active bool) {
	id := c.Param("id")
	if err := h.service.SetRuleActive(c.Request.Context(), id, active); err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			errorResponse(c, http.StatusNotFound, "price rule not found: "+id)
			return
		}
		errorResponse(c, http.StatusInternalServerError, "failed to update price rule: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "is_active": active})
}
