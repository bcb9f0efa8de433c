package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"commerce-admin-backend/internal/domains/order/model"
)

// =====================================================
// COMMERCE PLATFORM GATEWAY INTERFACE
// =====================================================

// CommerceGateway is the outbound surface to the commerce platform's
// REST API. The engine only ever fetches order snapshots and submits
// refund mutations; everything else the dashboard does with the
// platform lives outside this module.
type CommerceGateway interface {
	// GetOrder fetches the order snapshot including both refund
	// histories.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error)

	// SubmitRefund issues the refund mutation. No retries: a failure is
	// surfaced to the caller and the operator must explicitly resubmit.
	// Once dispatched the call runs to completion; there is no abort.
	SubmitRefund(ctx context.Context, req RefundSubmission) (*SubmitRefundResult, error)
}

// =====================================================
// COMMON REQUEST/RESPONSE TYPES
// =====================================================

// RefundSubmission is the validated refund instruction sent to the
// platform. Lines is empty for full-mode refunds; the platform
// interprets mode=full with no lines as "close out the remaining
// balance".
type RefundSubmission struct {
	OrderID     uuid.UUID       `json:"order_id"`
	Mode        string          `json:"mode"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Reason      string          `json:"reason"`
	Note        *string         `json:"note,omitempty"`
	Method      string          `json:"method"`
	Lines       []RefundLine    `json:"lines,omitempty"`
}

// RefundLine is one per-line-item refund instruction. Only persisted
// line items ever appear here.
type RefundLine struct {
	LineItemID uuid.UUID       `json:"line_item_id"`
	Quantity   int             `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
}

// SubmitRefundResult is the platform's acknowledgement of an applied
// refund.
type SubmitRefundResult struct {
	RefundID      uuid.UUID       `json:"refund_id"`
	AppliedAmount decimal.Decimal `json:"applied_amount"`
	OrderStatus   string          `json:"order_status"`
}
