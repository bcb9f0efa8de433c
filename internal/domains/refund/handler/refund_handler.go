package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"commerce-admin-backend/internal/domains/refund/model"
	"commerce-admin-backend/internal/domains/refund/service"
	res "commerce-admin-backend/internal/shared/response"
)

type RefundHandler struct {
	refundService service.RefundService
}

// NewRefundHandler creates new refund handler
func NewRefundHandler(refundService service.RefundService) *RefundHandler {
	return &RefundHandler{refundService: refundService}
}

// =====================================================
// SESSION ENDPOINTS
// =====================================================

// OpenSession starts the refund dialog for an order
// POST /api/v1/orders/:order_id/refund-session
func (h *RefundHandler) OpenSession(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	session, err := h.refundService.OpenSession(c.Request.Context(), orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res.Success(c, http.StatusCreated, session)
}

// GetSession returns the current availability and selection view
// GET /api/v1/orders/:order_id/refund-session
func (h *RefundHandler) GetSession(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	session, err := h.refundService.GetSession(c.Request.Context(), orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res.Success(c, http.StatusOK, session)
}

// CloseSession discards the refund dialog state
// DELETE /api/v1/orders/:order_id/refund-session
func (h *RefundHandler) CloseSession(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	if err := h.refundService.CloseSession(c.Request.Context(), orderID); err != nil {
		h.respondError(c, err)
		return
	}

	res.Success(c, http.StatusOK, gin.H{"closed": true})
}

// =====================================================
// SELECTION ENDPOINTS
// =====================================================

// SetQuantity updates one line item's selected refund quantity
// PUT /api/v1/orders/:order_id/refund-session/quantity
func (h *RefundHandler) SetQuantity(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req model.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	session, err := h.refundService.SetQuantity(c.Request.Context(), orderID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res.Success(c, http.StatusOK, session)
}

// SetCustomAmount overrides one line item's refund amount
// PUT /api/v1/orders/:order_id/refund-session/amount
func (h *RefundHandler) SetCustomAmount(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req model.SetAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	session, err := h.refundService.SetCustomAmount(c.Request.Context(), orderID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res.Success(c, http.StatusOK, session)
}

// =====================================================
// SUBMISSION ENDPOINTS
// =====================================================

// Submit builds and issues the refund to the platform
// POST /api/v1/orders/:order_id/refund-session/submit
func (h *RefundHandler) Submit(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req model.SubmitRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.refundService.Submit(c.Request.Context(), orderID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res.Success(c, http.StatusOK, result)
}

// ListAudit returns the order's local submission audit trail
// GET /api/v1/orders/:order_id/refunds
func (h *RefundHandler) ListAudit(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	entries, err := h.refundService.ListAudit(c.Request.Context(), orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res.Success(c, http.StatusOK, entries)
}

// =====================================================
// HELPERS
// =====================================================

func (h *RefundHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		res.ErrorResponse(c, http.StatusBadRequest, "INVALID_ORDER_ID", "Invalid order ID")
		return uuid.Nil, false
	}
	return orderID, true
}

func (h *RefundHandler) respondError(c *gin.Context, err error) {
	status, code := mapRefundError(err)
	res.ErrorResponse(c, status, code, err.Error())
}

// mapRefundError maps service errors to HTTP status + error code
func mapRefundError(err error) (int, string) {
	var refundErr *model.RefundError
	if !errors.As(err, &refundErr) {
		return http.StatusInternalServerError, model.ErrCodeInternalError
	}

	switch refundErr.Code {
	case model.ErrCodeOrderNotFound, model.ErrCodeSessionNotFound:
		return http.StatusNotFound, refundErr.Code
	case model.ErrCodeSubmissionInFlight:
		return http.StatusConflict, refundErr.Code
	case model.ErrCodeSubmissionFailed:
		return http.StatusBadGateway, refundErr.Code
	case model.ErrCodeMissingReason, model.ErrCodeZeroAmount, model.ErrCodeNoSelection,
		model.ErrCodeInvalidMethod, model.ErrCodeUnknownLineItem, model.ErrCodeInvalidMode:
		return http.StatusUnprocessableEntity, refundErr.Code
	default:
		return http.StatusInternalServerError, refundErr.Code
	}
}
