package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"commerce-admin-backend/internal/domains/order/gateway"
	orderModel "commerce-admin-backend/internal/domains/order/model"
	"commerce-admin-backend/internal/domains/refund/engine"
	"commerce-admin-backend/internal/domains/refund/model"
	repo "commerce-admin-backend/internal/domains/refund/repository"
)

// =====================================================
// REFUND SERVICE IMPLEMENTATION
// =====================================================
type refundService struct {
	commerce gateway.CommerceGateway
	sessions SessionStore
	audit    repo.AuditRepoInterface

	// inFlight guards the single-flight submission rule per order. The
	// session's State mirrors it for the dashboard, but this map is the
	// authoritative in-process lock.
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewRefundService(
	commerce gateway.CommerceGateway,
	sessions SessionStore,
	audit repo.AuditRepoInterface,
) RefundService {
	return &refundService{
		commerce: commerce,
		sessions: sessions,
		audit:    audit,
		inFlight: make(map[uuid.UUID]struct{}),
	}
}

// =====================================================
// SESSION LIFECYCLE
// =====================================================

// OpenSession starts (or restarts) the refund dialog for an order.
//
// Business Logic:
// 1. Fetch a fresh order snapshot from the platform
// 2. Discard any previous session - selections always reset on open
// 3. Persist the new idle session
// 4. Return the derived availability view
func (s *refundService) OpenSession(ctx context.Context, orderID uuid.UUID) (*model.RefundSessionResponse, error) {
	order, err := s.commerce.GetOrder(ctx, orderID)
	if err != nil {
		return nil, model.NewRefundError(model.ErrCodeOrderNotFound, "Order not found on platform", err)
	}

	now := time.Now()
	session := &model.RefundSession{
		OrderID:    orderID,
		Order:      order,
		Selections: make(model.SelectionSet),
		State:      model.SubmissionStateIdle,
		OpenedAt:   now,
		UpdatedAt:  now,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save refund session: %w", err)
	}

	return s.buildSessionResponse(session), nil
}

func (s *refundService) GetSession(ctx context.Context, orderID uuid.UUID) (*model.RefundSessionResponse, error) {
	session, err := s.loadSession(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.buildSessionResponse(session), nil
}

func (s *refundService) CloseSession(ctx context.Context, orderID uuid.UUID) error {
	return s.sessions.Delete(ctx, orderID)
}

// =====================================================
// SELECTION EDITS
// =====================================================

func (s *refundService) SetQuantity(ctx context.Context, orderID uuid.UUID, req model.SetQuantityRequest) (*model.RefundSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewRefundError(model.ErrCodeInternalError, "Invalid request", err)
	}

	session, err := s.loadSession(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if session.IsSubmitting() {
		return nil, model.NewSubmissionInFlightError(orderID.String())
	}

	item, err := findLineItem(session.Order, req.LineItemKey)
	if err != nil {
		return nil, err
	}

	avail := s.availability(session.Order)
	engine.SetQuantity(session.Selections, *item, avail.ItemFor(item.Ref), req.Quantity)

	session.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save refund session: %w", err)
	}

	return s.buildSessionResponse(session), nil
}

func (s *refundService) SetCustomAmount(ctx context.Context, orderID uuid.UUID, req model.SetAmountRequest) (*model.RefundSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewRefundError(model.ErrCodeInternalError, "Invalid request", err)
	}

	session, err := s.loadSession(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if session.IsSubmitting() {
		return nil, model.NewSubmissionInFlightError(orderID.String())
	}

	item, err := findLineItem(session.Order, req.LineItemKey)
	if err != nil {
		return nil, err
	}

	avail := s.availability(session.Order)
	engine.SetCustomAmount(session.Selections, *item, avail.ItemFor(item.Ref), req.Amount)

	session.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save refund session: %w", err)
	}

	return s.buildSessionResponse(session), nil
}

// =====================================================
// SUBMISSION
// =====================================================

// Submit builds and issues the refund.
//
// Business Logic:
// 1. Validate mode/method
// 2. Load the session; reject if a submission is already in flight
// 3. Build the request (engine validation: reason, amounts, selection)
// 4. Mark the session submitting and dispatch the mutation - no retry,
//    no cancellation once dispatched
// 5. On success fold the refund into the session's in-memory histories
//    and clear the selections
// 6. On failure leave the histories untouched and return to idle
// 7. Record the attempt in the local audit log either way
func (s *refundService) Submit(ctx context.Context, orderID uuid.UUID, req model.SubmitRefundRequest) (*model.SubmitRefundResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewRefundError(model.ErrCodeInvalidMode, "Invalid refund request", err)
	}

	session, err := s.loadSession(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !s.acquire(orderID) {
		return nil, model.NewSubmissionInFlightError(orderID.String())
	}
	defer s.release(orderID)

	if session.IsSubmitting() {
		return nil, model.NewSubmissionInFlightError(orderID.String())
	}

	avail := s.availability(session.Order)
	submission, err := engine.BuildRequest(engine.BuildInput{
		Order:        session.Order,
		Availability: avail,
		Selections:   session.Selections,
		Mode:         req.Mode,
		Reason:       req.Reason,
		Note:         req.Note,
		Method:       req.Method,
	})
	if err != nil {
		return nil, err
	}

	session.State = model.SubmissionStateSubmitting
	session.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save refund session: %w", err)
	}

	result, submitErr := s.commerce.SubmitRefund(ctx, *submission)

	session.State = model.SubmissionStateIdle
	session.UpdatedAt = time.Now()

	if submitErr != nil {
		// Histories stay untouched: the refund is assumed not applied.
		// The audit row keeps the attempt visible in case the platform
		// partially applied it after all.
		s.recordAudit(ctx, orderID, submission, nil, submitErr)

		if err := s.sessions.Save(ctx, session); err != nil {
			log.Error().Err(err).Str("order_id", orderID.String()).Msg("Failed to reset refund session after error")
		}
		return nil, model.NewRefundError(model.ErrCodeSubmissionFailed, "Platform rejected the refund", submitErr)
	}

	s.foldIn(session, submission, result)
	session.Selections = make(model.SelectionSet)

	if err := s.sessions.Save(ctx, session); err != nil {
		log.Error().Err(err).Str("order_id", orderID.String()).Msg("Failed to save refund session after fold-in")
	}

	s.recordAudit(ctx, orderID, submission, result, nil)

	return &model.SubmitRefundResponse{
		RefundID:            result.RefundID,
		AppliedAmount:       result.AppliedAmount,
		OrderStatus:         result.OrderStatus,
		RemainingRefundable: s.availability(session.Order).RemainingRefundable,
	}, nil
}

func (s *refundService) ListAudit(ctx context.Context, orderID uuid.UUID) ([]model.RefundAuditEntry, error) {
	entries, err := s.audit.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list refund audit entries: %w", err)
	}
	return entries, nil
}

// =====================================================
// INTERNALS
// =====================================================

func (s *refundService) acquire(orderID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[orderID]; busy {
		return false
	}
	s.inFlight[orderID] = struct{}{}
	return true
}

func (s *refundService) release(orderID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, orderID)
}

func (s *refundService) loadSession(ctx context.Context, orderID uuid.UUID) (*model.RefundSession, error) {
	session, found, err := s.sessions.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load refund session: %w", err)
	}
	if !found {
		return nil, model.NewRefundError(model.ErrCodeSessionNotFound, "Open a refund session first", model.ErrSessionNotFound)
	}
	return session, nil
}

func (s *refundService) availability(order *orderModel.Order) engine.Availability {
	hist := engine.Reconcile(order.RefundSubRecords, order.RefundLedger)
	return engine.ComputeAvailability(order, hist)
}

// foldIn appends the applied refund to both in-memory histories so the
// dialog reflects it immediately, without waiting for a platform
// re-fetch.
func (s *refundService) foldIn(session *model.RefundSession, submission *gateway.RefundSubmission, result *gateway.SubmitRefundResult) {
	now := time.Now()

	subRecord := orderModel.RefundSubRecord{
		ID:        result.RefundID,
		Amount:    result.AppliedAmount,
		Reason:    submission.Reason,
		CreatedAt: now,
	}
	for _, line := range submission.Lines {
		subRecord.Items = append(subRecord.Items, orderModel.RefundSubRecordItem{
			LineItemID: line.LineItemID,
			Quantity:   line.Quantity,
			Amount:     line.Amount,
		})
	}

	session.Order.RefundSubRecords = append(session.Order.RefundSubRecords, subRecord)
	session.Order.RefundLedger = append(session.Order.RefundLedger, orderModel.RefundLedgerEntry{
		ID:         result.RefundID,
		Amount:     result.AppliedAmount,
		RecordedAt: now,
	})
	session.Order.Status = result.OrderStatus
}

// recordAudit appends the attempt to the local audit log. Audit failure
// never fails the refund itself.
func (s *refundService) recordAudit(ctx context.Context, orderID uuid.UUID, submission *gateway.RefundSubmission, result *gateway.SubmitRefundResult, submitErr error) {
	entry := &model.RefundAuditEntry{
		ID:        uuid.New(),
		OrderID:   orderID,
		Mode:      submission.Mode,
		Amount:    submission.TotalAmount,
		Reason:    submission.Reason,
		Method:    submission.Method,
		Status:    model.AuditStatusSucceeded,
		CreatedAt: time.Now(),
	}
	if result != nil {
		refundID := result.RefundID
		entry.PlatformRefundID = &refundID
		entry.Amount = result.AppliedAmount
	}
	if submitErr != nil {
		entry.Status = model.AuditStatusFailed
		msg := submitErr.Error()
		entry.ErrorMessage = &msg
	}

	if err := s.audit.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Str("order_id", orderID.String()).Msg("Failed to record refund audit entry")
	}
}

func findLineItem(order *orderModel.Order, key string) (*orderModel.LineItem, error) {
	for i := range order.LineItems {
		if order.LineItems[i].Ref.Key() == key {
			return &order.LineItems[i], nil
		}
	}
	return nil, model.NewUnknownLineItemError(key)
}

// buildSessionResponse maps the session plus derived availability into
// the dashboard view.
func (s *refundService) buildSessionResponse(session *model.RefundSession) *model.RefundSessionResponse {
	avail := s.availability(session.Order)

	resp := &model.RefundSessionResponse{
		OrderID:                  session.OrderID,
		OrderNumber:              session.Order.OrderNumber,
		OrderTotal:               session.Order.Total,
		TotalRefunded:            avail.TotalRefunded,
		RemainingRefundable:      avail.RemainingRefundable,
		FullRefundAvailable:      avail.RemainingRefundable.IsPositive(),
		AutomaticMethodAvailable: session.Order.SupportsAutomaticRefund(),
		State:                    session.State,
	}

	for _, li := range session.Order.LineItems {
		key := li.Ref.Key()
		itemAvail := avail.ItemFor(li.Ref)
		refunded := avail.Refunded[key]
		sel := session.Selections[key]

		resp.Items = append(resp.Items, model.RefundSessionItemView{
			Key:               key,
			Name:              li.Name,
			Draft:             li.Ref.IsDraft(),
			UnitPrice:         li.UnitPrice,
			OrderedQuantity:   li.Quantity,
			RefundedQuantity:  refunded.Quantity,
			RefundedAmount:    refunded.Amount,
			AvailableQuantity: itemAvail.Quantity,
			AvailableAmount:   itemAvail.Amount,
			FullyRefunded:     itemAvail.FullyRefunded(),
			SelectedQuantity:  sel.Quantity,
			SelectedAmount:    sel.Amount,
		})
	}

	return resp
}
