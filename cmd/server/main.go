package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Maron09/Product-Store/internal/adapter/httpserver"
	"github.com/Maron09/Product-Store/internal/adapter/messaging/nats"
	"github.com/Maron09/Product-Store/internal/adapter/postgres"
	"github.com/Maron09/Product-Store/internal/adapter/redis"
	"github.com/Maron09/Product-Store/internal/adapter/storage/s3"
	"github.com/Maron09/Product-Store/internal/config"
	"github.com/Maron09/Product-Store/internal/mailer"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/platform/metrics"
	"github.com/Maron09/Product-Store/internal/token"
	"github.com/Maron09/Product-Store/internal/usecase"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewZapLogger(logger.ZapLoggerConfig{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	blacklist := redis.NewTokenBlacklist(redisClient)

	publisher, err := nats.NewPublisher(cfg.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer publisher.Close()

	imageStorage, err := s3.NewS3Storage(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL, log)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	metricsManager := metrics.NewManager("product_store")

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	otpRepo := postgres.NewOTPRepository(db)
	resetTokenRepo := postgres.NewResetTokenRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	productRepo := postgres.NewProductRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	wishlistRepo := postgres.NewWishlistRepository(db)

	authUsecase := usecase.NewAuthUsecase(
		userRepo, profileRepo, otpRepo, resetTokenRepo,
		db, tokens, blacklist, smtpMailer, publisher,
		metricsManager, log, cfg.BaseURL,
	)
	profileUsecase := usecase.NewProfileUsecase(userRepo, profileRepo, db, log)
	categoryUsecase := usecase.NewCategoryUsecase(categoryRepo, log)
	productUsecase := usecase.NewProductUsecase(productRepo, imageStorage, publisher, metricsManager, log)
	cartUsecase := usecase.NewCartUsecase(cartRepo, productRepo, db, log)
	wishlistUsecase := usecase.NewWishlistUsecase(wishlistRepo, productRepo, log)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Auth:     authUsecase,
		Profiles: profileUsecase,
		Catalog:  categoryUsecase,
		Products: productUsecase,
		Cart:     cartUsecase,
		Wishlist: wishlistUsecase,
		Users:    userRepo,
		Tokens:   tokens,
		Metrics:  metricsManager,
		Log:      log,
	})

	go func() {
		if err := metrics.StartServer(cfg.MetricsPort, log, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Metrics server stopped: %v", err)
		}
	}()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Infof("HTTP server listening on :%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}
