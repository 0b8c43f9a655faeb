package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shopexio/backend-go/internal/domain"
	"github.com/shopexio/backend-go/internal/repository"
)

type auditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a Postgres-backed audit repository.
func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

// ListLatestAudits returns the most recent audit row per product. The
// audit service appends rows; older audits stay for history but only the
// latest one feeds the engine.
func (r *auditRepository) ListLatestAudits(ctx context.Context) ([]domain.AuditResult, error) {
	query := `
		SELECT DISTINCT ON (product_id)
			product_id,
			global_score,
			needs_correction,
			audited_at
		FROM audit_results
		ORDER BY product_id, audited_at DESC
	`

	audits := make([]domain.AuditResult, 0)
	if err := r.db.SelectContext(ctx, &audits, query); err != nil {
		return nil, fmt.Errorf("error listing audit results: %w", err)
	}

	return audits, nil
}
