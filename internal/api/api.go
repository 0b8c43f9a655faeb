// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shopexio/backend-go/internal/api/handlers"
	"github.com/shopexio/backend-go/internal/api/middleware"
	"github.com/shopexio/backend-go/internal/service"
)

type Services struct {
	PriorityService *service.PriorityService
	InsightsService *service.InsightsService
	CatalogService  *service.CatalogService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.PriorityService != nil {
			priorityHandler := handlers.NewPriorityHandler(services.PriorityService)
			priorityGroup := apiGroup.Group("/priority")
			{
				priorityGroup.GET("/analysis", priorityHandler.GetAnalysis)
				priorityGroup.GET("/cards", priorityHandler.GetCards)
				priorityGroup.GET("/badges", priorityHandler.GetBadges)
				priorityGroup.GET("/metrics", priorityHandler.GetMetrics)
				priorityGroup.GET("/kpis", priorityHandler.GetKPIs)
				priorityGroup.POST("/invalidate", priorityHandler.Invalidate)
			}
		}

		if services.InsightsService != nil {
			insightsHandler := handlers.NewInsightsHandler(services.InsightsService)
			insightsGroup := apiGroup.Group("/insights")
			{
				insightsGroup.GET("/alerts", insightsHandler.GetAlerts)
				insightsGroup.GET("/roi", insightsHandler.GetROI)
				insightsGroup.GET("/trends", insightsHandler.GetTrends)
			}
		}

		if services.CatalogService != nil {
			catalogHandler := handlers.NewCatalogHandler(services.CatalogService)
			catalogGroup := apiGroup.Group("/catalog")
			{
				catalogGroup.GET("/summary", catalogHandler.GetSummary)
				catalogGroup.POST("/rules/:id/activate", catalogHandler.ActivateRule)
				catalogGroup.POST("/rules/:id/deactivate", catalogHandler.DeactivateRule)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
