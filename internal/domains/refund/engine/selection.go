package engine

import (
	"github.com/shopspring/decimal"

	orderModel "commerce-admin-backend/internal/domains/order/model"
	"commerce-admin-backend/internal/domains/refund/model"
)

// SetQuantity clamps a requested refund quantity to what is still
// available on the item and re-derives the item's amount from
// UnitPrice * quantity, capped at the item's available amount. A
// quantity edit always recomputes the amount: a custom amount override
// survives unrelated recomputations, never an explicit quantity change.
// Idempotent for a given input.
func SetQuantity(selections model.SelectionSet, item orderModel.LineItem, avail ItemAvailability, requested int) model.Selection {
	qty := clampInt(requested, 0, avail.Quantity)

	amount := item.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	if amount.GreaterThan(avail.Amount) {
		amount = avail.Amount
	}

	sel := model.Selection{
		Quantity: qty,
		Amount:   amount,
		Custom:   false,
	}
	selections[item.Ref.Key()] = sel
	return sel
}

// SetCustomAmount replaces the item's derived amount with an explicit
// one, clamped to both the item's available amount and the value of the
// currently selected quantity. With quantity zero the cap is simply the
// available amount, which permits amount-only refunds such as waiving a
// restocking fee.
func SetCustomAmount(selections model.SelectionSet, item orderModel.LineItem, avail ItemAvailability, requested decimal.Decimal) model.Selection {
	current := selections[item.Ref.Key()]

	maxForQty := avail.Amount
	if current.Quantity > 0 {
		maxForQty = item.UnitPrice.Mul(decimal.NewFromInt(int64(current.Quantity)))
	}

	limit := decimal.Min(avail.Amount, maxForQty)
	amount := requested
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	if amount.GreaterThan(limit) {
		amount = limit
	}

	sel := model.Selection{
		Quantity: current.Quantity,
		Amount:   amount,
		Custom:   true,
	}
	selections[item.Ref.Key()] = sel
	return sel
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
