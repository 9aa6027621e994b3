package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photoset/api/internal/provider/paypal"
	"photoset/api/internal/service"
	"photoset/api/pkg/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func (h *PaymentHandler) ListPlans(c *gin.Context) {
	response.Success(c, gin.H{"plans": service.Plans()})
}

type createOrderRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "plan_id is required")
		return
	}

	result, err := h.paymentService.CreateOrder(c.Request.Context(), user, req.PlanID)
	if err != nil {
		var provErr *paypal.Error
		switch {
		case errors.Is(err, service.ErrInvalidPlan):
			response.ErrorWithCode(c, 400, "INVALID_PLAN", err.Error())
		case errors.As(err, &provErr):
			h.logger.Error("order creation rejected by provider",
				zap.Int("provider_status", provErr.StatusCode),
				zap.String("plan", req.PlanID))
			response.Error(c, 502, 502, "payment provider error")
		default:
			h.logger.Error("order creation failed", zap.Error(err))
			response.InternalError(c, "failed to create order")
		}
		return
	}

	response.Created(c, result)
}

type captureOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

func (h *PaymentHandler) CaptureOrder(c *gin.Context) {
	var req captureOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "order_id is required")
		return
	}

	result, err := h.paymentService.CaptureOrder(c.Request.Context(), req.OrderID)
	if err != nil {
		var provErr *paypal.Error
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrAlreadyCaptured):
			response.ErrorWithCode(c, 409, "ALREADY_CAPTURED", err.Error())
		case errors.As(err, &provErr):
			h.logger.Error("capture rejected by provider",
				zap.Int("provider_status", provErr.StatusCode),
				zap.String("order_id", req.OrderID))
			response.Error(c, 502, 502, "payment provider error")
		default:
			h.logger.Error("capture failed", zap.Error(err))
			response.InternalError(c, "failed to capture order")
		}
		return
	}

	response.Success(c, result)
}

// Webhook acknowledges provider event notifications. Order state changes go
// through the capture endpoint, so events are logged and accepted as-is.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		response.BadRequest(c, "unreadable payload")
		return
	}

	var event struct {
		ID        string `json:"id"`
		EventType string `json:"event_type"`
	}
	if err := json.Unmarshal(body, &event); err == nil && event.EventType != "" {
		h.logger.Info("payment webhook received",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.EventType))
	}

	response.Success(c, gin.H{"received": true})
}
