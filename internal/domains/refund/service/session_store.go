package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"commerce-admin-backend/internal/domains/refund/model"
	"commerce-admin-backend/pkg/cache"
)

// Sessions are dialog-scoped; anything older than this is stale and may
// be dropped by the backing store.
const sessionTTL = 30 * time.Minute

// =====================================================
// IN-MEMORY SESSION STORE
// =====================================================

// memorySessionStore keeps sessions in process memory. Used by tests
// and single-instance deployments.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.RefundSession
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[uuid.UUID]*model.RefundSession),
	}
}

func (m *memorySessionStore) Get(ctx context.Context, orderID uuid.UUID) (*model.RefundSession, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[orderID]
	if !ok {
		return nil, false, nil
	}
	return session, true, nil
}

func (m *memorySessionStore) Save(ctx context.Context, session *model.RefundSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.OrderID] = session
	return nil
}

func (m *memorySessionStore) Delete(ctx context.Context, orderID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, orderID)
	return nil
}

// =====================================================
// CACHE-BACKED SESSION STORE
// =====================================================

// cacheSessionStore keeps sessions in the shared cache so the dialog
// survives a restart and multi-instance deployments see one session per
// order.
type cacheSessionStore struct {
	cache cache.Cache
}

func NewCacheSessionStore(c cache.Cache) SessionStore {
	return &cacheSessionStore{cache: c}
}

func sessionKey(orderID uuid.UUID) string {
	return fmt.Sprintf("refund:session:%s", orderID)
}

func (s *cacheSessionStore) Get(ctx context.Context, orderID uuid.UUID) (*model.RefundSession, bool, error) {
	var session model.RefundSession
	found, err := s.cache.Get(ctx, sessionKey(orderID), &session)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load refund session: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return &session, true, nil
}

func (s *cacheSessionStore) Save(ctx context.Context, session *model.RefundSession) error {
	if err := s.cache.Set(ctx, sessionKey(session.OrderID), session, sessionTTL); err != nil {
		return fmt.Errorf("failed to save refund session: %w", err)
	}
	return nil
}

func (s *cacheSessionStore) Delete(ctx context.Context, orderID uuid.UUID) error {
	if err := s.cache.Delete(ctx, sessionKey(orderID)); err != nil {
		return fmt.Errorf("failed to delete refund session: %w", err)
	}
	return nil
}
