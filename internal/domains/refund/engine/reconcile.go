// Package engine holds the partial-refund computation core: history
// reconciliation, per-item availability, selection normalization and
// request building. Everything here is a pure function of the order
// snapshot plus the working selection set, safe to recompute on every
// input change.
package engine

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	orderModel "commerce-admin-backend/internal/domains/order/model"
)

// Tolerance is the monetary epsilon used both for the history tie-break
// and for treating a line item as fully refunded.
var Tolerance = decimal.New(1, -2) // 0.01

// ItemRefunded is the accumulated refund history for one line item.
type ItemRefunded struct {
	Quantity int
	Amount   decimal.Decimal
}

// ReconciledHistory is the canonical view of everything already
// refunded on an order, merged from the two independent histories.
type ReconciledHistory struct {
	TotalRefunded decimal.Decimal
	PerItem       map[uuid.UUID]ItemRefunded
}

// Reconcile merges the sub-record history and the flat ledger into one
// canonical total plus a per-item breakdown. The per-item figures always
// come from the sub-records; the ledger carries no item detail.
func Reconcile(subRecords []orderModel.RefundSubRecord, ledger []orderModel.RefundLedgerEntry) ReconciledHistory {
	totalFromRecords := decimal.Zero
	perItem := make(map[uuid.UUID]ItemRefunded)

	for _, rec := range subRecords {
		totalFromRecords = totalFromRecords.Add(rec.Amount)
		for _, item := range rec.Items {
			acc := perItem[item.LineItemID]
			acc.Quantity += item.Quantity
			acc.Amount = acc.Amount.Add(item.Amount)
			perItem[item.LineItemID] = acc
		}
	}

	totalFromLedger := decimal.Zero
	for _, entry := range ledger {
		totalFromLedger = totalFromLedger.Add(entry.Amount)
	}

	return ReconciledHistory{
		TotalRefunded: resolveTotal(totalFromRecords, totalFromLedger),
		PerItem:       perItem,
	}
}

// resolveTotal is the tie-break between the two historical totals. The
// flat ledger is canonical: sub-record data can lag behind the write
// path, so on disagreement beyond the tolerance the ledger figure wins,
// and within the tolerance it is still the deterministic pick. Kept as
// its own function so a stronger consistency rule can replace it
// without touching the rest of the engine.
func resolveTotal(totalFromRecords, totalFromLedger decimal.Decimal) decimal.Decimal {
	if totalFromRecords.Sub(totalFromLedger).Abs().GreaterThan(Tolerance) {
		log.Warn().
			Str("sub_records_total", totalFromRecords.String()).
			Str("ledger_total", totalFromLedger.String()).
			Msg("Refund histories disagree, using ledger total")
	}
	return totalFromLedger
}
