package service

import (
	"context"
	"fmt"

	"github.com/shopexio/backend-go/internal/domain"
	"github.com/shopexio/backend-go/internal/insights"
	"github.com/shopexio/backend-go/internal/repository"
)

// InsightsService feeds the predictive-insights analyzer with catalog data
// and externally supplied stock-out forecasts.
type InsightsService struct {
	products    repository.ProductRepository
	predictions repository.PredictionRepository
	analyzer    *insights.Analyzer
}

func NewInsightsService(
	products repository.ProductRepository,
	predictions repository.PredictionRepository,
	analyzer *insights.Analyzer,
) *InsightsService {
	return &InsightsService{
		products:    products,
		predictions: predictions,
		analyzer:    analyzer,
	}
}

func (s *InsightsService) GetAlerts(ctx context.Context) ([]insights.Alert, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	predictions, err := s.predictions.ListPredictions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stock predictions: %w", err)
	}

	return s.analyzer.BuildAlerts(products, predictions), nil
}

func (s *InsightsService) GetROIProjection(ctx context.Context) (insights.ROIProjection, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return insights.ROIProjection{}, err
	}
	return s.analyzer.ProjectROI(products), nil
}

func (s *InsightsService) GetTrends(ctx context.Context) ([]insights.CategoryTrend, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	return s.analyzer.AnalyzeTrends(products), nil
}

func (s *InsightsService) loadProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return products, nil
}
