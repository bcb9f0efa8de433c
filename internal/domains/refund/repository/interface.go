package repository

import (
	"context"

	"github.com/google/uuid"

	"commerce-admin-backend/internal/domains/refund/model"
)

// =====================================================
// REPOSITORY INTERFACES
// =====================================================

// AuditRepoInterface persists the local refund submission audit trail.
// Append-only: entries are never updated or deleted.
type AuditRepoInterface interface {
	// Create appends one submission attempt.
	Create(ctx context.Context, entry *model.RefundAuditEntry) error

	// ListByOrder returns an order's audit entries, newest first.
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.RefundAuditEntry, error)
}
