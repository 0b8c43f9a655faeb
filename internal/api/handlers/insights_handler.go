package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopexio/backend-go/internal/service"
)

type InsightsHandler struct {
	service *service.InsightsService
}

func NewInsightsHandler(service *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

func (h *InsightsHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.service.GetAlerts(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to build alerts: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

func (h *InsightsHandler) GetROI(c *gin.Context) {
	projection, err := h.service.GetROIProjection(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to project ROI: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, projection)
}

func (h *InsightsHandler) GetTrends(c *gin.Context) {
	trends, err := h.service.GetTrends(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to analyze trends: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": trends})
}
