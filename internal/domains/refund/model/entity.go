package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderModel "commerce-admin-backend/internal/domains/order/model"
)

// =====================================================
// ENTITY: Selection (ephemeral user input)
// =====================================================

// Selection is the operator's current refund choice for a single line
// item. It only ever holds values already clamped to the item's
// availability.
type Selection struct {
	// Quantity is the selected refund quantity, clamped to what is
	// still available on the item.
	Quantity int `json:"quantity"`

	// Amount is the refund amount for the item. Recomputed from
	// UnitPrice * Quantity on every quantity edit, or set explicitly by
	// the operator.
	Amount decimal.Decimal `json:"amount"`

	// Custom marks Amount as an explicit operator override rather than
	// a derived default.
	Custom bool `json:"custom"`
}

// SelectionSet maps LineItemRef.Key() to the item's current selection.
// Items the operator never touched have no entry.
type SelectionSet map[string]Selection

// IsEmpty reports whether every selection is at zero quantity and zero
// amount.
func (s SelectionSet) IsEmpty() bool {
	for _, sel := range s {
		if sel.Quantity > 0 || sel.Amount.IsPositive() {
			return false
		}
	}
	return true
}

// =====================================================
// ENTITY: RefundSession
// =====================================================

// RefundSession is the dialog-scoped state of one refund flow: the order
// snapshot it was opened against, the working selections, and the
// submission state. Re-opening a session always starts from a fresh
// snapshot with cleared selections.
type RefundSession struct {
	OrderID    uuid.UUID         `json:"order_id"`
	Order      *orderModel.Order `json:"order"`
	Selections SelectionSet      `json:"selections"`
	State      string            `json:"state"`
	OpenedAt   time.Time         `json:"opened_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// IsSubmitting reports whether a submission is currently in flight.
// While true, all mutating actions on the session are rejected.
func (s *RefundSession) IsSubmitting() bool {
	return s.State == SubmissionStateSubmitting
}

// =====================================================
// ENTITY: RefundAuditEntry
// =====================================================

// RefundAuditEntry records one submission attempt and its outcome.
// Append-only; failures are recorded too so an operator can see what was
// attempted even when the platform's final state is uncertain.
type RefundAuditEntry struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          uuid.UUID       `json:"order_id"`
	Mode             string          `json:"mode"`
	Amount           decimal.Decimal `json:"amount"`
	Reason           string          `json:"reason"`
	Method           string          `json:"method"`
	Status           string          `json:"status"`
	PlatformRefundID *uuid.UUID      `json:"platform_refund_id,omitempty"`
	ErrorMessage     *string         `json:"error_message,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}
