// internal/domain/models.go
package domain

import "time"

// Product is one catalog entry as stored by the catalog service.
// Numeric fields are nullable because imported feeds frequently omit them;
// the scoring engine defaults absent values rather than rejecting the row.
type Product struct {
	ID            string     `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Category      string     `json:"category" db:"category"`
	StockQuantity *int       `json:"stock_quantity" db:"stock_quantity"`
	Price         *float64   `json:"price" db:"price"`
	CostPrice     *float64   `json:"cost_price" db:"cost_price"`
	ProfitMargin  *float64   `json:"profit_margin" db:"profit_margin"`
	UpdatedAt     *time.Time `json:"updated_at" db:"updated_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// AuditResult is the latest quality audit outcome for a product,
// produced by the external audit service. GlobalScore is 0-100.
type AuditResult struct {
	ProductID       string    `json:"product_id" db:"product_id"`
	GlobalScore     float64   `json:"global_score" db:"global_score"`
	NeedsCorrection bool      `json:"needs_correction" db:"needs_correction"`
	AuditedAt       time.Time `json:"audited_at" db:"audited_at"`
}

// PriceRule is a pricing rule definition. The engine only cares whether
// any active rule has catalog-wide scope (apply_to = "all").
type PriceRule struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	ApplyTo   string    `json:"apply_to" db:"apply_to"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PriceRuleScopeAll marks a rule that applies to the whole catalog.
const PriceRuleScopeAll = "all"

// StockPrediction is a stock-out forecast row written by the external
// forecasting service and consumed as-is by the insights module.
type StockPrediction struct {
	ProductID         string    `json:"product_id" db:"product_id"`
	DaysUntilStockout int       `json:"days_until_stockout" db:"days_until_stockout"`
	Urgency           string    `json:"urgency" db:"urgency"`
	Recommendation    string    `json:"recommendation" db:"recommendation"`
	PredictedAt       time.Time `json:"predicted_at" db:"predicted_at"`
}
