package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gatewayMock "commerce-admin-backend/internal/domains/order/gateway/mock"
	orderModel "commerce-admin-backend/internal/domains/order/model"
	"commerce-admin-backend/internal/domains/refund/model"
)

// =====================================================
// TEST DOUBLES
// =====================================================

type stubAuditRepo struct {
	mu      sync.Mutex
	entries []model.RefundAuditEntry
}

func (s *stubAuditRepo) Create(ctx context.Context, entry *model.RefundAuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *stubAuditRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.RefundAuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.RefundAuditEntry
	for _, e := range s.entries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

// =====================================================
// FIXTURES
// =====================================================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedOrder() (*orderModel.Order, uuid.UUID) {
	itemID := uuid.New()
	return &orderModel.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-2002",
		CurrencyCode:  "USD",
		PaymentMethod: orderModel.PaymentMethodCard,
		Status:        orderModel.OrderStatusCompleted,
		Total:         dec("200.00"),
		LineItems: []orderModel.LineItem{
			{
				Ref:       orderModel.PersistedRef(itemID),
				Name:      "Widget",
				UnitPrice: dec("50.00"),
				Quantity:  4,
				LineTotal: dec("200.00"),
			},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, itemID
}

type fixture struct {
	service RefundService
	gateway *gatewayMock.MockCommerceGateway
	store   SessionStore
	audit   *stubAuditRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gw := gatewayMock.NewMockCommerceGateway()
	store := NewMemorySessionStore()
	audit := &stubAuditRepo{}

	return &fixture{
		service: NewRefundService(gw, store, audit),
		gateway: gw,
		store:   store,
		audit:   audit,
	}
}

// =====================================================
// SESSION LIFECYCLE
// =====================================================

func TestOpenSession_ResetsSelections(t *testing.T) {
	f := newFixture(t)
	order, itemID := seedOrder()
	f.gateway.SeedOrder(order)
	ctx := context.Background()

	_, err := f.service.OpenSession(ctx, order.ID)
	require.NoError(t, err)

	view, err := f.service.SetQuantity(ctx, order.ID, model.SetQuantityRequest{
		LineItemKey: itemID.String(),
		Quantity:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Items[0].SelectedQuantity)

	// Re-opening the dialog discards the previous selection.
	view, err = f.service.OpenSession(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Items[0].SelectedQuantity)
	assert.True(t, view.Items[0].SelectedAmount.IsZero())
}

func TestGetSession_RequiresOpen(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetSession(context.Background(), uuid.New())

	var refundErr *model.RefundError
	require.ErrorAs(t, err, &refundErr)
	assert.Equal(t, model.ErrCodeSessionNotFound, refundErr.Code)
}

func TestSetQuantity_UnknownLineItem(t *testing.T) {
	f := newFixture(t)
	order, _ := seedOrder()
	f.gateway.SeedOrder(order)
	ctx := context.Background()

	_, err := f.service.OpenSession(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.service.SetQuantity(ctx, order.ID, model.SetQuantityRequest{
		LineItemKey: uuid.New().String(),
		Quantity:    1,
	})

	var refundErr *model.RefundError
	require.ErrorAs(t, err, &refundErr)
	assert.Equal(t, model.ErrCodeUnknownLineItem, refundErr.Code)
}

func TestSetQuantity_ClampsToAvailability(t *testing.T) {
	f := newFixture(t)
	order, itemID := seedOrder()

	// One unit (50.00) already refunded.
	order.RefundSubRecords = []orderModel.RefundSubRecord{{
		ID:     uuid.New(),
		Amount: dec("50.00"),
		Items: []orderModel.RefundSubRecordItem{
			{LineItemID: itemID, Quantity: 1, Amount: dec("50.00")},
		},
		CreatedAt: time.Now(),
	}}
	order.RefundLedger = []orderModel.RefundLedgerEntry{{
		ID: uuid.New(), Amount: dec("50.00"), RecordedAt: time.Now(),
	}}
	f.gateway.SeedOrder(order)
	ctx := context.Background()

	_, err := f.service.OpenSession(ctx, order.ID)
	require.NoError(t, err)

	view, err := f.service.SetQuantity(ctx, order.ID, model.SetQuantityRequest{
		LineItemKey: itemID.String(),
		Quantity:    99,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, view.Items[0].SelectedQuantity)
	assert.True(t, view.Items[0].SelectedAmount.Equal(dec("150.00")))
	assert.True(t, view.RemainingRefundable.Equal(dec("150.00")))
}

// =====================================================
// SUBMISSION
// =====================================================

func TestSubmit_SuccessFoldsIntoHistories(t *testing.T) {
	f := newFixture(t)
	order, itemID := seedOrder()
	f.gateway.SeedOrder(order)
	ctx := context.Background()

	_, err := f.service.OpenSession(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.service.SetQuantity(ctx, order.ID, model.SetQuantityRequest{
		LineItemKey: itemID.String(),
		Quantity:    2,
	})
	require.NoError(t, err)

	result, err := f.service.Submit(ctx, order.ID, model.SubmitRefundRequest{
		Mode:   model.RefundModePartial,
		Reason: "damaged in transit",
		Method: model.RefundMethodAutomatic,
	})
	require.NoError(t, err)

	assert.True(t, result.AppliedAmount.Equal(dec("100.00")))
	assert.True(t, result.RemainingRefundable.Equal(dec("100.00")),
		"fold-in reflects the refund without a re-fetch")

	// The session view sees the folded-in history and cleared selection.
	view, err := f.service.GetSession(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, view.TotalRefunded.Equal(dec("100.00")))
	assert.Equal(t, 2, view.Items[0].RefundedQuantity)
	assert.Equal(t, 0, view.Items[0].SelectedQuantity)
	assert.Equal(t, model.SubmissionStateIdle, view.State)

	// The submission was recorded locally.
	entries, err := f.service.ListAudit(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.AuditStatusSucceeded, entries[0].Status)
	require.NotNil(t, entries[0].PlatformRefundID)
}

func TestSubmit_FullModeUsesRemainingBalance(t *testing.T) {
	f := newFixture(t)
	order, _ := seedOrder()
	order.RefundSubRecords = []orderModel.RefundSubRecord{{
		ID: uuid.New(), Amount: dec("50.00"), CreatedAt: time.Now(),
	}}
	order.RefundLedger = []orderModel.RefundLedgerEntry{{
		ID: uuid.New(), Amount: dec("50.00"), RecordedAt: time.Now(),
	}}
	f.gateway.SeedOrder(order)
	ctx := context.Background()

	_, err := f.service.OpenSession(ctx, order.ID)
	require.NoError(t, err)

	result, err := f.service.Submit(ctx, order.ID, model.SubmitRefundRequest{
		Mode:   model.RefundModeFull,
		Reason: "order cancelled",
		Method: model.RefundMethodManual,
	})
	require.NoError(t, err)

	assert.True(t, result.AppliedAmount.Equal(dec("150.00")))
	assert.True(t, result.RemainingRefundable.IsZero())

	require.Len(t, f.gateway.SubmitCalls, 1)
	assert.Empty(t, f.gateway.SubmitCalls[0].Lines, "full mode carries no line breakdown")

	// Nothing remains: a second full refund is rejected locally.
	_, err = f.service.Submit(ctx, order.ID, model.SubmitRefundRequest{
		Mode:   model.RefundModeFull,
		Reason: "again",
		Method: model.RefundMethodManual,
	})
	var refundErr *model.RefundError
	require.ErrorAs(t, err, &refundErr)
	assert.Equal(t, model.ErrCodeZeroAmount, refundErr.Code)
	assert.Len(t, f.gateway.SubmitCalls, 1, "rejected build never reaches the platform")
}

func TestSubmit_FailureLeavesHistoriesUntouched(t *testing.T) {
	f := newFixture(t)
	order, itemID := seedOrder()
	f.gateway.SeedOrder(order)
	f.gateway.ShouldFailSubmit = true
	ctx := context.Background()

	_, err := f.service.OpenSession(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.service.SetQuantity(ctx, order.ID, model.SetQuantityRequest{
		LineItemKey: itemID.String(),
		Quantity:    1,
	})
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, order.ID, model.SubmitRefundRequest{
		Mode:   model.RefundModePartial,
		Reason: "damaged",
		Method: model.RefundMethodManual,
	})

	var refundErr *model.RefundError
	require.ErrorAs(t, err, &refundErr)
	assert.Equal(t, model.ErrCodeSubmissionFailed, refundErr.Code)

	view, err := f.service.GetSession(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, view.TotalRefunded.IsZero(), "failed submission must not mutate history")
	assert.Equal(t, model.SubmissionStateIdle, view.State)
	assert.Equal(t, 1, view.Items[0].SelectedQuantity, "selection survives a failed submit for retry")

	entries, err := f.service.ListAudit(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.AuditStatusFailed, entries[0].Status)
	require.NotNil(t, entries[0].ErrorMessage)
}

func TestSubmit_RejectedWhileInFlight(t *testing.T) {
	f := newFixture(t)
	order, _ := seedOrder()
	f.gateway.SeedOrder(order)
	ctx := context.Background()

	_, err := f.service.OpenSession(ctx, order.ID)
	require.NoError(t, err)

	// Simulate a submission already in flight (e.g. another instance
	// sharing the session store).
	session, found, err := f.store.Get(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, found)
	session.State = model.SubmissionStateSubmitting
	require.NoError(t, f.store.Save(ctx, session))

	_, err = f.service.Submit(ctx, order.ID, model.SubmitRefundRequest{
		Mode:   model.RefundModeFull,
		Reason: "cancelled",
		Method: model.RefundMethodManual,
	})

	var refundErr *model.RefundError
	require.ErrorAs(t, err, &refundErr)
	assert.Equal(t, model.ErrCodeSubmissionInFlight, refundErr.Code)
	assert.Empty(t, f.gateway.SubmitCalls)
}

func TestSubmit_EditsRejectedWhileInFlight(t *testing.T) {
	f := newFixture(t)
	order, itemID := seedOrder()
	f.gateway.SeedOrder(order)
	ctx := context.Background()

	_, err := f.service.OpenSession(ctx, order.ID)
	require.NoError(t, err)

	session, found, err := f.store.Get(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, found)
	session.State = model.SubmissionStateSubmitting
	require.NoError(t, f.store.Save(ctx, session))

	_, err = f.service.SetQuantity(ctx, order.ID, model.SetQuantityRequest{
		LineItemKey: itemID.String(),
		Quantity:    1,
	})

	var refundErr *model.RefundError
	require.ErrorAs(t, err, &refundErr)
	assert.Equal(t, model.ErrCodeSubmissionInFlight, refundErr.Code)
}

func TestSubmit_NoOverdraftAcrossRepeatedRefunds(t *testing.T) {
	f := newFixture(t)
	order, itemID := seedOrder()
	f.gateway.SeedOrder(order)
	ctx := context.Background()

	_, err := f.service.OpenSession(ctx, order.ID)
	require.NoError(t, err)

	// Refund two units, then try to refund four more: the second pass
	// clamps to the two that remain.
	for _, step := range []struct {
		quantity int
		want     string
	}{
		{2, "100.00"},
		{4, "100.00"},
	} {
		_, err = f.service.SetQuantity(ctx, order.ID, model.SetQuantityRequest{
			LineItemKey: itemID.String(),
			Quantity:    step.quantity,
		})
		require.NoError(t, err)

		result, err := f.service.Submit(ctx, order.ID, model.SubmitRefundRequest{
			Mode:   model.RefundModePartial,
			Reason: "customer request",
			Method: model.RefundMethodManual,
		})
		require.NoError(t, err)
		assert.True(t, result.AppliedAmount.Equal(dec(step.want)))
	}

	view, err := f.service.GetSession(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, view.TotalRefunded.Equal(order.Total), "refunded never exceeds the order total")
	assert.True(t, view.RemainingRefundable.IsZero())
	assert.False(t, view.FullRefundAvailable)
}
