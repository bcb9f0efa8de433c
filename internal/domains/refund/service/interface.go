package service

import (
	"context"

	"github.com/google/uuid"

	"commerce-admin-backend/internal/domains/refund/model"
)

// =====================================================
// REFUND SERVICE INTERFACE
// =====================================================

// RefundService drives one refund dialog per order: open a session
// against a fresh order snapshot, normalize the operator's selections,
// build and submit the refund, and fold the result back into the
// session so the dialog reflects it without a re-fetch.
type RefundService interface {
	// OpenSession fetches a fresh order snapshot and starts (or
	// restarts) the refund session with cleared selections.
	OpenSession(ctx context.Context, orderID uuid.UUID) (*model.RefundSessionResponse, error)

	// GetSession returns the current session view without mutating it.
	GetSession(ctx context.Context, orderID uuid.UUID) (*model.RefundSessionResponse, error)

	// SetQuantity updates one line item's refund quantity, clamped to
	// availability, re-deriving the item's amount.
	SetQuantity(ctx context.Context, orderID uuid.UUID, req model.SetQuantityRequest) (*model.RefundSessionResponse, error)

	// SetCustomAmount overrides one line item's refund amount, clamped
	// to availability and the selected quantity's value.
	SetCustomAmount(ctx context.Context, orderID uuid.UUID, req model.SetAmountRequest) (*model.RefundSessionResponse, error)

	// Submit builds the refund request from the session and issues it
	// to the platform. Single-flight per order: a second call while one
	// is in flight is rejected, never queued.
	Submit(ctx context.Context, orderID uuid.UUID, req model.SubmitRefundRequest) (*model.SubmitRefundResponse, error)

	// CloseSession discards the session and its selections.
	CloseSession(ctx context.Context, orderID uuid.UUID) error

	// ListAudit returns the order's local submission audit trail.
	ListAudit(ctx context.Context, orderID uuid.UUID) ([]model.RefundAuditEntry, error)
}

// =====================================================
// SESSION STORE INTERFACE
// =====================================================

// SessionStore persists the dialog-scoped refund session. One session
// per order; sessions are short-lived and disposable.
type SessionStore interface {
	Get(ctx context.Context, orderID uuid.UUID) (*model.RefundSession, bool, error)
	Save(ctx context.Context, session *model.RefundSession) error
	Delete(ctx context.Context, orderID uuid.UUID) error
}
