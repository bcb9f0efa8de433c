package model

import (
	"errors"
	"fmt"
)

// =====================================================
// PREDEFINED ERRORS
// =====================================================

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrSessionNotFound    = errors.New("no active refund session for order")
	ErrSubmissionInFlight = errors.New("a refund submission is already in flight")
	ErrSubmissionFailed   = errors.New("refund submission failed")
	ErrMissingReason      = errors.New("refund reason is required")
	ErrZeroAmount         = errors.New("computed refund amount is zero")
	ErrNoSelection        = errors.New("no line item selected for partial refund")
	ErrInvalidMethod      = errors.New("refund method not supported for this order")
	ErrUnknownLineItem    = errors.New("line item does not belong to order")
	ErrInvalidMode        = errors.New("invalid refund mode")
)

// =====================================================
// CUSTOM REFUND ERROR
// =====================================================

type RefundError struct {
	Code    string
	Message string
	Err     error
}

func (e *RefundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RefundError) Unwrap() error {
	return e.Err
}

// NewRefundError creates a new coded refund error
func NewRefundError(code, message string, err error) *RefundError {
	return &RefundError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewMissingReasonError() *RefundError {
	return NewRefundError(
		ErrCodeMissingReason,
		"A refund reason must be provided",
		ErrMissingReason,
	)
}

func NewZeroAmountError() *RefundError {
	return NewRefundError(
		ErrCodeZeroAmount,
		"The computed refund amount is zero - nothing left to refund",
		ErrZeroAmount,
	)
}

func NewNoSelectionError() *RefundError {
	return NewRefundError(
		ErrCodeNoSelection,
		"Select at least one line item quantity or amount for a partial refund",
		ErrNoSelection,
	)
}

func NewSubmissionInFlightError(orderID string) *RefundError {
	return NewRefundError(
		ErrCodeSubmissionInFlight,
		fmt.Sprintf("Order %s already has a refund submission in flight", orderID),
		ErrSubmissionInFlight,
	)
}

func NewInvalidMethodError(method string) *RefundError {
	return NewRefundError(
		ErrCodeInvalidMethod,
		fmt.Sprintf("Refund method '%s' is not available for this order's payment method", method),
		ErrInvalidMethod,
	)
}

func NewUnknownLineItemError(key string) *RefundError {
	return NewRefundError(
		ErrCodeUnknownLineItem,
		fmt.Sprintf("Line item %s does not belong to this order", key),
		ErrUnknownLineItem,
	)
}
