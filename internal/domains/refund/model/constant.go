package model

// =====================================================
// REFUND MODES
// =====================================================
const (
	RefundModeFull    = "full"
	RefundModePartial = "partial"
)

var ValidRefundModes = []string{
	RefundModeFull,
	RefundModePartial,
}

// =====================================================
// REFUND METHODS
// =====================================================
const (
	RefundMethodManual    = "manual"
	RefundMethodAutomatic = "automatic"
)

var ValidRefundMethods = []string{
	RefundMethodManual,
	RefundMethodAutomatic,
}

// =====================================================
// SUBMISSION STATES
// =====================================================
const (
	SubmissionStateIdle       = "idle"
	SubmissionStateSubmitting = "submitting"
)

// =====================================================
// AUDIT OUTCOMES
// =====================================================
const (
	AuditStatusSucceeded = "succeeded"
	AuditStatusFailed    = "failed"
)

// =====================================================
// BUILD REJECTION CODES
// =====================================================
// These codes are a contract with the dashboard: it switches its inline
// validation messages on them. Do not rename.
const (
	ErrCodeMissingReason = "MISSING_REASON"
	ErrCodeZeroAmount    = "ZERO_AMOUNT"
	ErrCodeNoSelection   = "NO_SELECTION"
)

// =====================================================
// INTERNAL ERROR CODES
// =====================================================
const (
	ErrCodeOrderNotFound      = "REF001"
	ErrCodeSessionNotFound    = "REF002"
	ErrCodeSubmissionInFlight = "REF003"
	ErrCodeSubmissionFailed   = "REF004"
	ErrCodeInvalidMethod      = "REF005"
	ErrCodeUnknownLineItem    = "REF006"
	ErrCodeInvalidMode        = "REF007"
	ErrCodeInternalError      = "REF008"
)
