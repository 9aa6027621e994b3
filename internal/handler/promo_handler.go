package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photoset/api/internal/service"
	"photoset/api/pkg/response"
)

type PromoHandler struct {
	promoService service.PromoService
	logger       *zap.Logger
}

func NewPromoHandler(promoService service.PromoService, logger *zap.Logger) *PromoHandler {
	return &PromoHandler{
		promoService: promoService,
		logger:       logger,
	}
}

type redeemRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *PromoHandler) Redeem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "code is required")
		return
	}

	result, err := h.promoService.Redeem(c.Request.Context(), user.ID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromoNotFound):
			response.ErrorWithCode(c, 404, "PROMO_NOT_FOUND", err.Error())
		case errors.Is(err, service.ErrPromoInactive):
			response.ErrorWithCode(c, 403, "PROMO_INACTIVE", err.Error())
		case errors.Is(err, service.ErrPromoExhausted):
			response.ErrorWithCode(c, 403, "PROMO_EXHAUSTED", err.Error())
		case errors.Is(err, service.ErrPromoAlreadyUsed):
			response.ErrorWithCode(c, 403, "PROMO_ALREADY_USED", err.Error())
		default:
			h.logger.Error("promo redemption failed", zap.Error(err))
			response.InternalError(c, "promo redemption failed")
		}
		return
	}

	response.Success(c, result)
}
