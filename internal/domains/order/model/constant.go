package model

// =====================================================
// ORDER STATUS CONSTANTS
// =====================================================
const (
	OrderStatusPending           = "pending"
	OrderStatusProcessing        = "processing"
	OrderStatusCompleted         = "completed"
	OrderStatusCancelled         = "cancelled"
	OrderStatusPartiallyRefunded = "partially_refunded"
	OrderStatusRefunded          = "refunded"
)

// =====================================================
// PAYMENT METHOD CONSTANTS
// =====================================================
const (
	PaymentMethodCard         = "card"
	PaymentMethodWallet       = "wallet"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCOD          = "cod"
)

var ValidPaymentMethods = []string{
	PaymentMethodCard,
	PaymentMethodWallet,
	PaymentMethodBankTransfer,
	PaymentMethodCOD,
}

// =====================================================
// LINE ITEM KIND CONSTANTS
// =====================================================
const (
	LineItemKindPersisted = "persisted"
	LineItemKindDraft     = "draft"
)
