package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photoset/api/internal/config"
	"photoset/api/internal/handler/middleware"
	"photoset/api/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authService service.AuthService,
	auth *AuthHandler,
	promo *PromoHandler,
	generation *GenerationHandler,
	images *ImageHandler,
	payments *PaymentHandler,
	admin *AdminHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public endpoints.
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/password-reset/request", auth.RequestPasswordReset)
	api.POST("/auth/password-reset/complete", auth.CompletePasswordReset)

	api.GET("/plans", payments.ListPlans)
	// Capture carries its own order id; the buyer returns from the provider's
	// approval page without a session.
	api.POST("/payments/capture-order", payments.CaptureOrder)
	api.POST("/payments/webhook", payments.Webhook)

	api.GET("/gallery", admin.ListGallery)
	api.GET("/photoshoot-examples", admin.ListPhotoshoots)

	// Dashboard export, keyed by the shared admin key.
	api.GET("/admin/export/images", admin.ExportImages)

	// Session-authenticated endpoints.
	authed := api.Group("")
	authed.Use(middleware.SessionAuth(authService))
	{
		authed.GET("/auth/me", auth.Me)
		authed.POST("/auth/logout", auth.Logout)

		authed.POST("/promo/redeem", promo.Redeem)

		authed.POST("/generate", generation.Generate)

		authed.POST("/images", images.Save)
		authed.GET("/images", images.List)
		authed.PUT("/images/:id/favorite", images.SetFavorite)
		authed.PUT("/images/:id/archive", images.SetArchived)

		authed.POST("/payments/create-order", payments.CreateOrder)
	}

	// Admin endpoints require an admin user on top of a valid session.
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.SessionAuth(authService), middleware.AdminOnly())
	{
		adminGroup.GET("/stats", admin.Stats)
		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.GET("/images", admin.ListImages)

		adminGroup.POST("/promo-codes", admin.CreatePromo)
		adminGroup.GET("/promo-codes", admin.ListPromos)
		adminGroup.POST("/promo-codes/:id/toggle", admin.TogglePromo)

		adminGroup.POST("/gallery", admin.AddGalleryItem)
		adminGroup.PATCH("/gallery/:id", admin.UpdateGalleryItem)

		adminGroup.POST("/photoshoots", admin.AddPhotoshoot)
	}

	return r
}
