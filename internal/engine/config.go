package engine

import "github.com/shopexio/backend-go/internal/config"

// Factor weights. They sum to 100 so the risk score stays in [0,100].
const (
	WeightStock     = 35.0
	WeightQuality   = 25.0
	WeightMargin    = 20.0
	WeightSync      = 10.0
	WeightPriceRule = 10.0
)

// Config holds the scoring thresholds. Immutable per evaluation.
type Config struct {
	StockCriticalThreshold int     // units below which stock is critical
	QualityLowThreshold    float64 // audit score below which quality fires
	MarginLowThreshold     float64 // margin % below which margin risk fires
	MarginHighThreshold    float64 // margin % above which opportunity fires
	SyncStaleHours         float64 // hours after which a product is stale
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		StockCriticalThreshold: 10,
		QualityLowThreshold:    40,
		MarginLowThreshold:     15,
		MarginHighThreshold:    30,
		SyncStaleHours:         24,
	}
}

// ConfigFrom maps the app-level engine settings onto a scoring config,
// falling back to defaults for unset values.
func ConfigFrom(cfg config.EngineConfig) Config {
	c := DefaultConfig()
	if cfg.StockCriticalThreshold > 0 {
		c.StockCriticalThreshold = cfg.StockCriticalThreshold
	}
	if cfg.QualityLowThreshold > 0 {
		c.QualityLowThreshold = cfg.QualityLowThreshold
	}
	if cfg.MarginLowThreshold > 0 {
		c.MarginLowThreshold = cfg.MarginLowThreshold
	}
	if cfg.MarginHighThreshold > 0 {
		c.MarginHighThreshold = cfg.MarginHighThreshold
	}
	if cfg.SyncStaleHours > 0 {
		c.SyncStaleHours = cfg.SyncStaleHours
	}
	return c
}
