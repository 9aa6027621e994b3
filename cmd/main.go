package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"photoset/api/internal/config"
	"photoset/api/internal/handler"
	"photoset/api/internal/model"
	"photoset/api/internal/provider/openai"
	"photoset/api/internal/provider/paypal"
	"photoset/api/internal/repository"
	"photoset/api/internal/service"
	"photoset/api/internal/storage"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize token store (Redis or in-memory)
	var tokenStore repository.TokenStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		tokenStore = repository.NewRedisTokenStore(redisClient)
		logger.Info("using Redis token store")
	case "memory":
		tokenStore = repository.NewMemoryTokenStore()
		logger.Info("using in-memory token store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 6. Initialize repositories
	userRepo := repository.NewPGUserRepository(db)
	sessionRepo := repository.NewPGSessionRepository(db)
	promoRepo := repository.NewPGPromoCodeRepository(db)
	txnRepo := repository.NewPGTransactionRepository(db)
	imageRepo := repository.NewPGImageRepository(db)
	galleryRepo := repository.NewPGGalleryRepository(db)
	logRepo := repository.NewPGSecurityLogRepository(db)

	// 7. Initialize external providers
	openaiClient := openai.NewClient(cfg.OpenAI, logger)
	paypalClient := paypal.NewClient(cfg.PayPal, logger)

	var rehoster service.ImageRehoster
	if cfg.S3.Enabled {
		uploader, err := storage.NewUploader(cfg.S3)
		if err != nil {
			logger.Fatal("failed to init s3 uploader", zap.Error(err))
		}
		rehoster = uploader
		logger.Info("S3 re-hosting enabled", zap.String("bucket", cfg.S3.Bucket))
	}

	// 8. Initialize services
	authService := service.NewAuthService(
		userRepo, sessionRepo, logRepo, tokenStore,
		cfg.Session.TTL, cfg.Session.ResetTokenTTL,
		cfg.Generation.InitialCredits, cfg.Generation.FreeLimit,
	)
	promoService := service.NewPromoService(promoRepo)
	generationService := service.NewGenerationService(userRepo, openaiClient, logger)
	imageService := service.NewImageService(imageRepo, rehoster, logger)
	paymentService := service.NewPaymentService(txnRepo, paypalClient)
	adminService := service.NewAdminService(userRepo, sessionRepo, imageRepo, galleryRepo)

	// 9. Initialize handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	promoHandler := handler.NewPromoHandler(promoService, logger)
	generationHandler := handler.NewGenerationHandler(generationService, logger)
	imageHandler := handler.NewImageHandler(imageService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)
	adminHandler := handler.NewAdminHandler(adminService, promoService, cfg.Admin.ExportKey, logger)

	// 10. Setup router
	router := handler.SetupRouter(cfg, logger, authService,
		authHandler, promoHandler, generationHandler, imageHandler, paymentHandler, adminHandler)

	// 11. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 12. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
