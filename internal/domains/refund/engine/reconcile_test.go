package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderModel "commerce-admin-backend/internal/domains/order/model"
)

func TestReconcile_LedgerWinsOnDisagreement(t *testing.T) {
	tests := []struct {
		name        string
		recordTotal string
		ledgerTotal string
		want        string
	}{
		{
			name:        "small drift still resolves to ledger",
			recordTotal: "80.00",
			ledgerTotal: "80.02",
			want:        "80.02",
		},
		{
			name:        "large disagreement resolves to ledger",
			recordTotal: "50.00",
			ledgerTotal: "65.00",
			want:        "65.00",
		},
		{
			name:        "exact agreement",
			recordTotal: "30.00",
			ledgerTotal: "30.00",
			want:        "30.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hist := Reconcile(
				[]orderModel.RefundSubRecord{subRecord(tt.recordTotal)},
				[]orderModel.RefundLedgerEntry{ledgerEntry(tt.ledgerTotal)},
			)

			assert.True(t, hist.TotalRefunded.Equal(dec(tt.want)),
				"got %s, want %s", hist.TotalRefunded, tt.want)
		})
	}
}

func TestReconcile_PerItemAlwaysFromSubRecords(t *testing.T) {
	itemA := uuid.New()
	itemB := uuid.New()

	subRecords := []orderModel.RefundSubRecord{
		subRecord("30.00",
			orderModel.RefundSubRecordItem{LineItemID: itemA, Quantity: 1, Amount: dec("10.00")},
			orderModel.RefundSubRecordItem{LineItemID: itemB, Quantity: 2, Amount: dec("20.00")},
		),
		subRecord("15.00",
			orderModel.RefundSubRecordItem{LineItemID: itemA, Quantity: 1, Amount: dec("15.00")},
		),
	}
	ledger := []orderModel.RefundLedgerEntry{ledgerEntry("45.00")}

	hist := Reconcile(subRecords, ledger)

	require.Len(t, hist.PerItem, 2)

	refundedA := hist.PerItem[itemA]
	assert.Equal(t, 2, refundedA.Quantity)
	assert.True(t, refundedA.Amount.Equal(dec("25.00")))

	refundedB := hist.PerItem[itemB]
	assert.Equal(t, 2, refundedB.Quantity)
	assert.True(t, refundedB.Amount.Equal(dec("20.00")))
}

func TestReconcile_EmptyHistories(t *testing.T) {
	hist := Reconcile(nil, nil)

	assert.True(t, hist.TotalRefunded.IsZero())
	assert.Empty(t, hist.PerItem)
}
