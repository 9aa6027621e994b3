package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"photoset/api/internal/service"
	"photoset/api/pkg/response"
)

type ImageHandler struct {
	imageService service.ImageService
	logger       *zap.Logger
}

func NewImageHandler(imageService service.ImageService, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		logger:       logger,
	}
}

type saveImageRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	ImageURL string `json:"image_url" binding:"required"`
	Theme    string `json:"theme"`
	Model    string `json:"model"`
}

// Save persists a generated image for the session user. Ownership comes from
// the session, never from the request body.
func (h *ImageHandler) Save(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req saveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "prompt and image_url are required")
		return
	}

	image, err := h.imageService.Save(c.Request.Context(), user, service.SaveImageInput{
		Prompt:   req.Prompt,
		ImageURL: req.ImageURL,
		Theme:    req.Theme,
		Model:    req.Model,
	})
	if err != nil {
		if errors.Is(err, service.ErrImageFieldsRequired) {
			response.BadRequest(c, err.Error())
			return
		}
		h.logger.Error("image save failed", zap.Error(err))
		response.InternalError(c, "failed to save image")
		return
	}

	response.Created(c, image)
}

func (h *ImageHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	images, err := h.imageService.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("image list failed", zap.Error(err))
		response.InternalError(c, "failed to list images")
		return
	}

	response.Success(c, gin.H{"images": images, "count": len(images)})
}

type favoriteRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}

func (h *ImageHandler) SetFavorite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "favorite is required")
		return
	}

	if err := h.imageService.SetFavorite(c.Request.Context(), imageID, user.ID, *req.Favorite); err != nil {
		h.logger.Error("favorite update failed", zap.Error(err))
		response.InternalError(c, "failed to update image")
		return
	}

	response.Success(c, gin.H{"id": imageID, "favorite": *req.Favorite})
}

type archiveRequest struct {
	Archived *bool `json:"archived" binding:"required"`
}

func (h *ImageHandler) SetArchived(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "archived is required")
		return
	}

	if err := h.imageService.SetArchived(c.Request.Context(), imageID, user.ID, *req.Archived); err != nil {
		h.logger.Error("archive update failed", zap.Error(err))
		response.InternalError(c, "failed to update image")
		return
	}

	response.Success(c, gin.H{"id": imageID, "archived": *req.Archived})
}
