package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photoset/api/internal/provider/openai"
	"photoset/api/internal/service"
	"photoset/api/pkg/response"
)

type GenerationHandler struct {
	generationService service.GenerationService
	logger            *zap.Logger
}

func NewGenerationHandler(generationService service.GenerationService, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		logger:            logger,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Size   string `json:"size"`
	Model  string `json:"model"`
}

func (h *GenerationHandler) Generate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "prompt is required")
		return
	}

	result, err := h.generationService.Generate(c.Request.Context(), user, service.GenerateInput{
		Prompt: req.Prompt,
		Size:   req.Size,
		Model:  req.Model,
	})
	if err != nil {
		var provErr *openai.Error
		switch {
		case errors.Is(err, service.ErrPromptRequired):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrFreeLimitExceeded):
			response.ErrorWithCode(c, 403, "LIMIT_EXCEEDED", err.Error())
		case errors.Is(err, service.ErrNoCredits):
			response.ErrorWithCode(c, 403, "NO_CREDITS", err.Error())
		case errors.As(err, &provErr):
			// The provider's own status and message pass through unchanged.
			response.Error(c, provErr.StatusCode, provErr.StatusCode, provErr.Message)
		default:
			h.logger.Error("generation failed", zap.Error(err))
			response.InternalError(c, "image generation failed")
		}
		return
	}

	response.Success(c, result)
}
