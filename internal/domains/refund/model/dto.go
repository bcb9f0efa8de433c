package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// SET QUANTITY REQUEST
// =====================================================
type SetQuantityRequest struct {
	LineItemKey string `json:"line_item_key"`
	Quantity    int    `json:"quantity"`
}

// Validate validates SetQuantityRequest
func (req SetQuantityRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.LineItemKey, validation.Required),
		validation.Field(&req.Quantity, validation.Min(0)),
	)
}

// =====================================================
// SET CUSTOM AMOUNT REQUEST
// =====================================================
type SetAmountRequest struct {
	LineItemKey string          `json:"line_item_key"`
	Amount      decimal.Decimal `json:"amount"`
}

// Validate validates SetAmountRequest
func (req SetAmountRequest) Validate() error {
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.LineItemKey, validation.Required),
	); err != nil {
		return err
	}
	if req.Amount.IsNegative() {
		return validation.NewError("validation_min", "amount must not be negative")
	}
	return nil
}

// =====================================================
// SUBMIT REFUND REQUEST
// =====================================================
type SubmitRefundRequest struct {
	Mode   string  `json:"mode"`
	Reason string  `json:"reason"`
	Note   *string `json:"note,omitempty"`
	Method string  `json:"method"`
}

// Validate validates SubmitRefundRequest.
// Reason is deliberately not checked here: an empty reason must surface
// as the MISSING_REASON rejection code, not a generic validation error.
func (req SubmitRefundRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Mode, validation.Required, validation.In(
			RefundModeFull,
			RefundModePartial,
		)),
		validation.Field(&req.Method, validation.Required, validation.In(
			RefundMethodManual,
			RefundMethodAutomatic,
		)),
	)
}

// =====================================================
// REFUND SESSION RESPONSE
// =====================================================
type RefundSessionResponse struct {
	OrderID             uuid.UUID       `json:"order_id"`
	OrderNumber         string          `json:"order_number"`
	OrderTotal          decimal.Decimal `json:"order_total"`
	TotalRefunded       decimal.Decimal `json:"total_refunded"`
	RemainingRefundable decimal.Decimal `json:"remaining_refundable"`

	// FullRefundAvailable is false once the remaining balance reaches
	// zero; the dashboard greys out full mode on it.
	FullRefundAvailable      bool `json:"full_refund_available"`
	AutomaticMethodAvailable bool `json:"automatic_method_available"`

	State string                  `json:"state"`
	Items []RefundSessionItemView `json:"items"`
}

type RefundSessionItemView struct {
	Key               string          `json:"key"`
	Name              string          `json:"name"`
	Draft             bool            `json:"draft"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	OrderedQuantity   int             `json:"ordered_quantity"`
	RefundedQuantity  int             `json:"refunded_quantity"`
	RefundedAmount    decimal.Decimal `json:"refunded_amount"`
	AvailableQuantity int             `json:"available_quantity"`
	AvailableAmount   decimal.Decimal `json:"available_amount"`
	FullyRefunded     bool            `json:"fully_refunded"`
	SelectedQuantity  int             `json:"selected_quantity"`
	SelectedAmount    decimal.Decimal `json:"selected_amount"`
}

// =====================================================
// SUBMIT REFUND RESPONSE
// =====================================================
type SubmitRefundResponse struct {
	RefundID            uuid.UUID       `json:"refund_id"`
	AppliedAmount       decimal.Decimal `json:"applied_amount"`
	OrderStatus         string          `json:"order_status"`
	RemainingRefundable decimal.Decimal `json:"remaining_refundable"`
}
