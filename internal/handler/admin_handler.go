package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"photoset/api/internal/service"
	"photoset/api/pkg/crypto"
	"photoset/api/pkg/response"
)

// AdminKeyHeader authenticates the dashboard export without a user session.
const AdminKeyHeader = "X-Admin-Key"

type AdminHandler struct {
	adminService service.AdminService
	promoService service.PromoService
	exportKey    string
	logger       *zap.Logger
}

func NewAdminHandler(adminService service.AdminService, promoService service.PromoService, exportKey string, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		promoService: promoService,
		exportKey:    exportKey,
		logger:       logger,
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("stats query failed", zap.Error(err))
		response.InternalError(c, "failed to load stats")
		return
	}
	response.Success(c, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("user list failed", zap.Error(err))
		response.InternalError(c, "failed to list users")
		return
	}
	response.Success(c, gin.H{"users": users, "count": len(users)})
}

func (h *AdminHandler) ListImages(c *gin.Context) {
	images, err := h.adminService.ListImages(c.Request.Context())
	if err != nil {
		h.logger.Error("image list failed", zap.Error(err))
		response.InternalError(c, "failed to list images")
		return
	}
	response.Success(c, gin.H{"images": images, "count": len(images)})
}

type createPromoRequest struct {
	Generations int  `json:"generations"`
	MaxUses     *int `json:"max_uses"`
}

func (h *AdminHandler) CreatePromo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req createPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	promo, err := h.promoService.Create(c.Request.Context(), user.ID, req.Generations, req.MaxUses)
	if err != nil {
		h.logger.Error("promo creation failed", zap.Error(err))
		response.InternalError(c, "failed to create promo code")
		return
	}

	response.Created(c, promo)
}

func (h *AdminHandler) ListPromos(c *gin.Context) {
	promos, err := h.promoService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("promo list failed", zap.Error(err))
		response.InternalError(c, "failed to list promo codes")
		return
	}
	response.Success(c, gin.H{"promo_codes": promos, "count": len(promos)})
}

func (h *AdminHandler) TogglePromo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid promo code id")
		return
	}

	active, err := h.promoService.Toggle(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("promo toggle failed", zap.Error(err))
		response.InternalError(c, "failed to toggle promo code")
		return
	}

	response.Success(c, gin.H{"id": id, "is_active": active})
}

type galleryItemRequest struct {
	ImageURL    string `json:"image_url" binding:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
	Category    string `json:"category"`
}

func (h *AdminHandler) AddGalleryItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req galleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "image_url is required")
		return
	}

	item, err := h.adminService.AddGalleryItem(c.Request.Context(), user.ID, service.GalleryItemInput{
		ImageURL:    req.ImageURL,
		Title:       req.Title,
		Description: req.Description,
		Theme:       req.Theme,
		Category:    req.Category,
	})
	if err != nil {
		h.logger.Error("gallery item creation failed", zap.Error(err))
		response.InternalError(c, "failed to add gallery item")
		return
	}

	response.Created(c, item)
}

func (h *AdminHandler) ListGallery(c *gin.Context) {
	items, err := h.adminService.ListGallery(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.logger.Error("gallery list failed", zap.Error(err))
		response.InternalError(c, "failed to list gallery items")
		return
	}
	response.Success(c, gin.H{"items": items, "count": len(items)})
}

type galleryUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsVisible   *bool   `json:"is_visible"`
}

func (h *AdminHandler) UpdateGalleryItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid gallery item id")
		return
	}

	var req galleryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	err = h.adminService.UpdateGalleryItem(c.Request.Context(), id, service.GalleryItemUpdate{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsVisible:   req.IsVisible,
	})
	if err != nil {
		h.logger.Error("gallery item update failed", zap.Error(err))
		response.InternalError(c, "failed to update gallery item")
		return
	}

	response.Success(c, gin.H{"id": id})
}

type photoshootRequest struct {
	ImageURL    string `json:"image_url" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ThemeID     string `json:"theme_id"`
	Icon        string `json:"icon"`
}

func (h *AdminHandler) AddPhotoshoot(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req photoshootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "image_url and title are required")
		return
	}

	example, err := h.adminService.AddPhotoshoot(c.Request.Context(), user.ID, service.PhotoshootInput{
		ImageURL:    req.ImageURL,
		Title:       req.Title,
		Description: req.Description,
		ThemeID:     req.ThemeID,
		Icon:        req.Icon,
	})
	if err != nil {
		h.logger.Error("photoshoot creation failed", zap.Error(err))
		response.InternalError(c, "failed to add photoshoot example")
		return
	}

	response.Created(c, example)
}

func (h *AdminHandler) ListPhotoshoots(c *gin.Context) {
	examples, err := h.adminService.ListPhotoshoots(c.Request.Context())
	if err != nil {
		h.logger.Error("photoshoot list failed", zap.Error(err))
		response.InternalError(c, "failed to list photoshoot examples")
		return
	}
	response.Success(c, gin.H{"examples": examples, "count": len(examples)})
}

// ExportImages serves the dashboard export. It is keyed by a shared secret
// rather than a user session; the comparison is constant-time.
func (h *AdminHandler) ExportImages(c *gin.Context) {
	if h.exportKey == "" {
		response.InternalError(c, "export key not configured")
		return
	}
	if !crypto.SecureCompare(c.GetHeader(AdminKeyHeader), h.exportKey) {
		response.Forbidden(c, "invalid admin key")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	images, total, err := h.adminService.ExportImages(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("image export failed", zap.Error(err))
		response.InternalError(c, "failed to export images")
		return
	}

	response.Success(c, gin.H{
		"images": images,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
