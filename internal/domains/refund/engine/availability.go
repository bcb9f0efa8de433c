package engine

import (
	"github.com/shopspring/decimal"

	orderModel "commerce-admin-backend/internal/domains/order/model"
)

// ItemAvailability is what is still refundable on one line item.
type ItemAvailability struct {
	Quantity int
	Amount   decimal.Decimal
}

// FullyRefunded reports whether nothing meaningful is left on the item.
// Sub-cent residue from rounding counts as fully refunded.
func (a ItemAvailability) FullyRefunded() bool {
	return a.Amount.LessThanOrEqual(Tolerance)
}

// Availability is the remaining refundable state of an order, derived
// from the snapshot and the reconciled history.
type Availability struct {
	TotalRefunded       decimal.Decimal
	RemainingRefundable decimal.Decimal

	// Items and Refunded are keyed by LineItemRef.Key().
	Items    map[string]ItemAvailability
	Refunded map[string]ItemRefunded
}

// ItemFor returns the availability for a line item reference. Unknown
// references get zero availability.
func (a Availability) ItemFor(ref orderModel.LineItemRef) ItemAvailability {
	if avail, ok := a.Items[ref.Key()]; ok {
		return avail
	}
	return ItemAvailability{Amount: decimal.Zero}
}

// ComputeAvailability derives per-item and order-level remaining
// refundable figures. Results are clamped at zero: a history that
// over-reports (e.g. a platform-side adjustment) can never produce a
// negative balance here.
func ComputeAvailability(order *orderModel.Order, hist ReconciledHistory) Availability {
	items := make(map[string]ItemAvailability, len(order.LineItems))
	refunded := make(map[string]ItemRefunded, len(order.LineItems))

	for _, li := range order.LineItems {
		var rec ItemRefunded
		if !li.Ref.IsDraft() {
			rec = hist.PerItem[li.Ref.ID]
		}
		rec.Amount = nonNegative(rec.Amount)

		items[li.Ref.Key()] = ItemAvailability{
			Quantity: maxInt(0, li.Quantity-rec.Quantity),
			Amount:   nonNegative(li.EffectiveLineTotal().Sub(rec.Amount)),
		}
		refunded[li.Ref.Key()] = rec
	}

	return Availability{
		TotalRefunded:       hist.TotalRefunded,
		RemainingRefundable: nonNegative(order.Total.Sub(hist.TotalRefunded)),
		Items:               items,
		Refunded:            refunded,
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
