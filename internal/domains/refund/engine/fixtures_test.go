package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderModel "commerce-admin-backend/internal/domains/order/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// twoItemOrder builds an order with two persisted items:
//   - itemA: 3 x 25.00 = 75.00
//   - itemB: 5 x 25.00 = 125.00
//
// order total 200.00.
func twoItemOrder() (*orderModel.Order, uuid.UUID, uuid.UUID) {
	itemA := uuid.New()
	itemB := uuid.New()

	order := &orderModel.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-1001",
		CurrencyCode:  "USD",
		PaymentMethod: orderModel.PaymentMethodCard,
		Status:        orderModel.OrderStatusCompleted,
		Total:         dec("200.00"),
		LineItems: []orderModel.LineItem{
			{
				Ref:       orderModel.PersistedRef(itemA),
				Name:      "Widget",
				UnitPrice: dec("25.00"),
				Quantity:  3,
				LineTotal: dec("75.00"),
			},
			{
				Ref:       orderModel.PersistedRef(itemB),
				Name:      "Gadget",
				UnitPrice: dec("25.00"),
				Quantity:  5,
				LineTotal: dec("125.00"),
			},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return order, itemA, itemB
}

func subRecord(amount string, items ...orderModel.RefundSubRecordItem) orderModel.RefundSubRecord {
	return orderModel.RefundSubRecord{
		ID:        uuid.New(),
		Amount:    dec(amount),
		Items:     items,
		CreatedAt: time.Now(),
	}
}

func ledgerEntry(amount string) orderModel.RefundLedgerEntry {
	return orderModel.RefundLedgerEntry{
		ID:         uuid.New(),
		Amount:     dec(amount),
		RecordedAt: time.Now(),
	}
}
