package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// ENTITY: Order (snapshot from the commerce platform)
// =====================================================

// Order is the read-only snapshot the commerce platform returns for one
// order, including both refund histories. The platform owns this data;
// the refund engine only derives from it.
type Order struct {
	ID            uuid.UUID `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CurrencyCode  string    `json:"currency_code"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`

	// Total is the authoritative order value. All refund math is bounded
	// by this figure, never by a caller-supplied subtotal.
	Total decimal.Decimal `json:"total"`

	LineItems []LineItem `json:"line_items"`

	// RefundSubRecords is the per-refund breakdown history (carries the
	// per-line-item detail).
	RefundSubRecords []RefundSubRecord `json:"refund_sub_records"`

	// RefundLedger is the flat per-refund amount history, accumulated
	// independently of the sub-records.
	RefundLedger []RefundLedgerEntry `json:"refund_ledger"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupportsAutomaticRefund reports whether the order's payment method can
// return funds through the original gateway. Bank transfers and COD are
// settled outside the platform, so only manual refunds apply.
func (o *Order) SupportsAutomaticRefund() bool {
	return o.PaymentMethod == PaymentMethodCard || o.PaymentMethod == PaymentMethodWallet
}

// =====================================================
// ENTITY: LineItem
// =====================================================

// LineItemRef identifies a line item as either persisted on the platform
// or a draft created in the current unsaved editing session. Drafts have
// nothing on the platform to refund against and must never reach the
// refund mutation.
type LineItemRef struct {
	Kind   string    `json:"kind"`
	ID     uuid.UUID `json:"id,omitempty"`
	TempID string    `json:"temp_id,omitempty"`
}

// PersistedRef builds a reference to a platform-persisted line item.
func PersistedRef(id uuid.UUID) LineItemRef {
	return LineItemRef{Kind: LineItemKindPersisted, ID: id}
}

// DraftRef builds a reference to an unsaved, session-local line item.
func DraftRef(tempID string) LineItemRef {
	return LineItemRef{Kind: LineItemKindDraft, TempID: tempID}
}

// IsDraft reports whether the reference points at an unsaved line item.
func (r LineItemRef) IsDraft() bool {
	return r.Kind == LineItemKindDraft
}

// Key returns a stable map key for the reference. Persisted items key by
// their UUID, drafts by their session-local temp id.
func (r LineItemRef) Key() string {
	if r.IsDraft() {
		return "draft:" + r.TempID
	}
	return r.ID.String()
}

type LineItem struct {
	Ref       LineItemRef     `json:"ref"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`

	// LineTotal defaults to UnitPrice * Quantity when the platform did
	// not supply a separate figure (e.g. line-level discounts).
	LineTotal decimal.Decimal `json:"line_total"`
}

// EffectiveLineTotal returns the line total, falling back to
// UnitPrice * Quantity when no explicit total was supplied.
func (li *LineItem) EffectiveLineTotal() decimal.Decimal {
	if li.LineTotal.IsPositive() {
		return li.LineTotal
	}
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// =====================================================
// ENTITY: RefundSubRecord (history A)
// =====================================================

// RefundSubRecord describes one previously completed refund and the line
// items it covered.
type RefundSubRecord struct {
	ID        uuid.UUID             `json:"id"`
	Amount    decimal.Decimal       `json:"amount"`
	Reason    string                `json:"reason,omitempty"`
	Items     []RefundSubRecordItem `json:"items"`
	CreatedAt time.Time             `json:"created_at"`
}

type RefundSubRecordItem struct {
	LineItemID uuid.UUID       `json:"line_item_id"`
	Quantity   int             `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
}

// =====================================================
// ENTITY: RefundLedgerEntry (history B)
// =====================================================

// RefundLedgerEntry is one flat amount entry in the order's refund
// ledger, used as an independent cross-check against the sub-records.
type RefundLedgerEntry struct {
	ID         uuid.UUID       `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	RecordedAt time.Time       `json:"recorded_at"`
}
