package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"commerce-admin-backend/internal/domains/order/gateway"
	orderModel "commerce-admin-backend/internal/domains/order/model"
	"commerce-admin-backend/internal/domains/refund/model"
)

// BuildInput carries everything needed to assemble a refund submission.
type BuildInput struct {
	Order        *orderModel.Order
	Availability Availability
	Selections   model.SelectionSet

	Mode   string
	Reason string
	Note   *string
	Method string
}

// BuildRequest assembles a validated refund submission, or rejects it
// with a coded error before anything leaves the process.
//
// Full mode refunds the entire remaining balance with no per-line
// breakdown. Partial mode collects every touched line item, caps each
// at its availability, then applies a final order-level cap so rounding
// drift across lines can never sum above the order's true remaining
// balance. Draft line items are dropped: nothing persisted exists on
// the platform to refund for them.
func BuildRequest(in BuildInput) (*gateway.RefundSubmission, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, model.NewMissingReasonError()
	}

	if in.Method == model.RefundMethodAutomatic && !in.Order.SupportsAutomaticRefund() {
		return nil, model.NewInvalidMethodError(in.Method)
	}

	remaining := in.Availability.RemainingRefundable

	if in.Mode == model.RefundModeFull {
		if !remaining.IsPositive() {
			return nil, model.NewZeroAmountError()
		}
		return &gateway.RefundSubmission{
			OrderID:     in.Order.ID,
			Mode:        model.RefundModeFull,
			TotalAmount: remaining,
			Reason:      in.Reason,
			Note:        in.Note,
			Method:      in.Method,
		}, nil
	}

	if in.Selections.IsEmpty() {
		return nil, model.NewNoSelectionError()
	}

	rawTotal := decimal.Zero
	var lines []gateway.RefundLine

	// Order iteration follows the snapshot's line order so the
	// submission is deterministic.
	for _, li := range in.Order.LineItems {
		sel, ok := in.Selections[li.Ref.Key()]
		if !ok || (sel.Quantity <= 0 && !sel.Amount.IsPositive()) {
			continue
		}
		if li.Ref.IsDraft() {
			continue
		}

		avail := in.Availability.ItemFor(li.Ref)
		amount := decimal.Min(sel.Amount, avail.Amount)
		if !amount.IsPositive() {
			continue
		}

		rawTotal = rawTotal.Add(amount)
		lines = append(lines, gateway.RefundLine{
			LineItemID: li.Ref.ID,
			Quantity:   sel.Quantity,
			Amount:     amount,
		})
	}

	totalAmount := decimal.Min(rawTotal, remaining)
	if !totalAmount.IsPositive() {
		return nil, model.NewZeroAmountError()
	}

	return &gateway.RefundSubmission{
		OrderID:     in.Order.ID,
		Mode:        model.RefundModePartial,
		TotalAmount: totalAmount,
		Reason:      in.Reason,
		Note:        in.Note,
		Method:      in.Method,
		Lines:       lines,
	}, nil
}
