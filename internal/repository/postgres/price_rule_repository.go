package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopexio/backend-go/internal/domain"
	"github.com/shopexio/backend-go/internal/repository"
)

type priceRuleRepository struct {
	db *DB
}

// NewPriceRuleRepository creates a Postgres-backed price-rule repository.
// It takes the wrapped DB because rule activation writes run through WithTx.
func NewPriceRuleRepository(db *DB) repository.PriceRuleRepository {
	return &priceRuleRepository{db: db}
}

func (r *priceRuleRepository) ListActiveRules(ctx context.Context) ([]domain.PriceRule, error) {
	query := `
		SELECT id, name, is_active, apply_to, created_at
		FROM price_rules
		WHERE is_active = TRUE
		ORDER BY created_at DESC
	`

	rules := make([]domain.PriceRule, 0)
	if err := r.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("error listing price rules: %w", err)
	}

	return rules, nil
}

// HasCatalogWideRule reports whether any active rule covers the whole
// catalog. This is the coarse per-catalog flag the engine consumes;
// partial rule coverage is deliberately not modeled here.
func (r *priceRuleRepository) HasCatalogWideRule(ctx context.Context) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM price_rules
			WHERE is_active = TRUE AND apply_to = $1
		)
	`
	if err := r.db.GetContext(ctx, &exists, query, domain.PriceRuleScopeAll); err != nil {
		return false, fmt.Errorf("error checking catalog-wide price rule: %w", err)
	}
	return exists, nil
}

// SetRuleActive toggles one rule's is_active flag. Returns false when no
// rule with that id exists.
func (r *priceRuleRepository) SetRuleActive(ctx context.Context, id string, active bool) (bool, error) {
	var found bool
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE price_rules SET is_active = $1 WHERE id = $2`, active, id)
		if err != nil {
			return fmt.Errorf("error updating price rule %s: %w", id, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error checking price rule update: %w", err)
		}
		found = rows > 0
		return nil
	})
	return found, err
}
