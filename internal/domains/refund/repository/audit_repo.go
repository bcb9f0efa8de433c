package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"commerce-admin-backend/internal/domains/refund/model"
)

// =====================================================
// AUDIT REPOSITORY IMPLEMENTATION
// =====================================================
type auditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) AuditRepoInterface {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.RefundAuditEntry) error {
	query := `
		INSERT INTO refund_audit_log (
			id, order_id, mode, amount, reason, method,
			status, platform_refund_id, error_message, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.OrderID,
		entry.Mode,
		entry.Amount,
		entry.Reason,
		entry.Method,
		entry.Status,
		entry.PlatformRefundID,
		entry.ErrorMessage,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create refund audit entry: %w", err)
	}

	return nil
}

func (r *auditRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.RefundAuditEntry, error) {
	query := `
		SELECT id, order_id, mode, amount, reason, method,
			status, platform_refund_id, error_message, created_at
		FROM refund_audit_log
		WHERE order_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query refund audit entries: %w", err)
	}
	defer rows.Close()

	var entries []model.RefundAuditEntry
	for rows.Next() {
		var entry model.RefundAuditEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&entry.Mode,
			&entry.Amount,
			&entry.Reason,
			&entry.Method,
			&entry.Status,
			&entry.PlatformRefundID,
			&entry.ErrorMessage,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan refund audit entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read refund audit entries: %w", err)
	}

	return entries, nil
}
