package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	orderModel "commerce-admin-backend/internal/domains/order/model"
	"commerce-admin-backend/internal/domains/refund/model"
)

func TestSetQuantity_ClampsAndIsIdempotent(t *testing.T) {
	order, itemA, _ := twoItemOrder()
	item := order.LineItems[0]
	avail := ItemAvailability{Quantity: 3, Amount: dec("75.00")}
	selections := make(model.SelectionSet)

	sel := SetQuantity(selections, item, avail, 1000)
	assert.Equal(t, 3, sel.Quantity)
	assert.True(t, sel.Amount.Equal(dec("75.00")))

	// Repeating the same oversized request changes nothing.
	again := SetQuantity(selections, item, avail, 1000)
	assert.Equal(t, sel, again)
	assert.Equal(t, sel, selections[orderModel.PersistedRef(itemA).Key()])
}

func TestSetQuantity_DerivesAmountFromUnitPrice(t *testing.T) {
	order, _, _ := twoItemOrder()
	item := order.LineItems[0]
	avail := ItemAvailability{Quantity: 3, Amount: dec("75.00")}
	selections := make(model.SelectionSet)

	sel := SetQuantity(selections, item, avail, 2)
	assert.Equal(t, 2, sel.Quantity)
	assert.True(t, sel.Amount.Equal(dec("50.00")))
	assert.False(t, sel.Custom)
}

func TestSetQuantity_AmountCappedByAvailability(t *testing.T) {
	order, _, _ := twoItemOrder()
	item := order.LineItems[0]

	// Part of the line's value has already been refunded: 2 units are
	// still available but only 30.00 of value remains.
	avail := ItemAvailability{Quantity: 2, Amount: dec("30.00")}
	selections := make(model.SelectionSet)

	sel := SetQuantity(selections, item, avail, 2)
	assert.Equal(t, 2, sel.Quantity)
	assert.True(t, sel.Amount.Equal(dec("30.00")), "derived 50.00 capped at remaining 30.00")
}

func TestSetQuantity_OverridesCustomAmount(t *testing.T) {
	order, _, _ := twoItemOrder()
	item := order.LineItems[0]
	avail := ItemAvailability{Quantity: 3, Amount: dec("75.00")}
	selections := make(model.SelectionSet)

	SetQuantity(selections, item, avail, 2)
	SetCustomAmount(selections, item, avail, dec("12.34"))

	// An explicit quantity edit always recomputes the amount.
	sel := SetQuantity(selections, item, avail, 1)
	assert.True(t, sel.Amount.Equal(dec("25.00")))
	assert.False(t, sel.Custom)
}

func TestSetCustomAmount_CappedByQuantityValue(t *testing.T) {
	order, _, _ := twoItemOrder()
	item := order.LineItems[0]
	avail := ItemAvailability{Quantity: 3, Amount: dec("75.00")}
	selections := make(model.SelectionSet)

	SetQuantity(selections, item, avail, 2)

	// 2 units at 25.00 are worth 50.00; a larger custom amount clamps.
	sel := SetCustomAmount(selections, item, avail, dec("60.00"))
	assert.Equal(t, 2, sel.Quantity)
	assert.True(t, sel.Amount.Equal(dec("50.00")))
	assert.True(t, sel.Custom)
}

func TestSetCustomAmount_ZeroQuantityAllowsAmountOnlyRefund(t *testing.T) {
	order, _, _ := twoItemOrder()
	item := order.LineItems[0]
	avail := ItemAvailability{Quantity: 3, Amount: dec("75.00")}
	selections := make(model.SelectionSet)

	// No quantity selected: the cap is the full remaining value, which
	// covers cases like waiving a restocking fee.
	sel := SetCustomAmount(selections, item, avail, dec("5.00"))
	assert.Equal(t, 0, sel.Quantity)
	assert.True(t, sel.Amount.Equal(dec("5.00")))

	over := SetCustomAmount(selections, item, avail, dec("100.00"))
	assert.True(t, over.Amount.Equal(dec("75.00")))
}

func TestSetCustomAmount_NegativeClampsToZero(t *testing.T) {
	order, _, _ := twoItemOrder()
	item := order.LineItems[0]
	avail := ItemAvailability{Quantity: 3, Amount: dec("75.00")}
	selections := make(model.SelectionSet)

	sel := SetCustomAmount(selections, item, avail, dec("-10.00"))
	assert.True(t, sel.Amount.IsZero())
}
