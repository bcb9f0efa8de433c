package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"commerce-admin-backend/internal/domains/order/gateway"
	"commerce-admin-backend/internal/domains/order/model"
)

// =====================================================
// MOCK COMMERCE GATEWAY FOR TESTING / LOCAL RUNS
// =====================================================

type MockCommerceGateway struct {
	mu sync.Mutex

	Orders map[uuid.UUID]*model.Order

	// ShouldFailSubmit makes SubmitRefund return an error without
	// touching any order.
	ShouldFailSubmit bool

	// SubmitCalls records every submission for assertions.
	SubmitCalls []gateway.RefundSubmission
}

func NewMockCommerceGateway() *MockCommerceGateway {
	return &MockCommerceGateway{
		Orders: make(map[uuid.UUID]*model.Order),
	}
}

// SeedOrder registers an order snapshot the mock will serve.
func (m *MockCommerceGateway) SeedOrder(order *model.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Orders[order.ID] = order
}

func (m *MockCommerceGateway) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.Orders[orderID]
	if !ok {
		return nil, fmt.Errorf("mock: order %s not found", orderID)
	}

	// Return a shallow copy so callers cannot mutate the seed.
	clone := *order
	return &clone, nil
}

func (m *MockCommerceGateway) SubmitRefund(ctx context.Context, req gateway.RefundSubmission) (*gateway.SubmitRefundResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SubmitCalls = append(m.SubmitCalls, req)

	if m.ShouldFailSubmit {
		return nil, fmt.Errorf("mock: refund submission failed")
	}

	order, ok := m.Orders[req.OrderID]
	status := model.OrderStatusPartiallyRefunded
	if ok {
		refunded := decimal.Zero
		for _, entry := range order.RefundLedger {
			refunded = refunded.Add(entry.Amount)
		}
		if refunded.Add(req.TotalAmount).GreaterThanOrEqual(order.Total) {
			status = model.OrderStatusRefunded
		}
	}

	return &gateway.SubmitRefundResult{
		RefundID:      uuid.New(),
		AppliedAmount: req.TotalAmount,
		OrderStatus:   status,
	}, nil
}
