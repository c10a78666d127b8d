package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Suyog-Rijal/Makeover-me-backend/docs"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/auth"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/cart"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/catalog"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/config"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/email"
	httpServer "github.com/Suyog-Rijal/Makeover-me-backend/internal/http"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/location"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/notify"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/ratelimit"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/signing"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/user"
)

// @title           Makeover Me API
// @version         1.0
// @description     E-commerce backend with account, catalog, cart and location endpoints.

// @contact.name   API Support
// @contact.email  support@example.com

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"production", cfg.Server.Production,
		"port", cfg.Server.Port,
		"token_store", cfg.Auth.TokenStore,
		"email_provider", cfg.Email.Provider,
	)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	db, err := database.Open(startupCtx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.MigrateUp(startupCtx, db.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := database.OpenRedis(startupCtx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Token handling
	tokenStore, err := auth.NewTokenStore(cfg.Auth.TokenStore, db, redisClient)
	if err != nil {
		return err
	}
	tokens, err := auth.NewJWTService(cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	verifier, err := signing.New(cfg.Auth.SecretKey, signing.EmailConfirmationSalt)
	if err != nil {
		return fmt.Errorf("failed to initialize verification codec: %w", err)
	}

	// Outbound email runs on the notification workers
	sender, err := email.New(cfg.Email, cfg.Auth.VerificationMaxAge, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}
	queue := notify.NewRedisQueue(redisClient, cfg.Notify.QueueKey)
	dispatcher := notify.NewDispatcher(queue, sender, cfg.Notify.Workers, cfg.Notify.MaxAttempts, cfg.Notify.BaseDelay, logger)

	dispatcher.Start(context.Background())

	var google auth.GoogleVerifier
	if cfg.Auth.GoogleClientID != "" {
		google = auth.NewGoogleVerifier(cfg.Auth.GoogleClientID)
	}

	users := user.NewStore(db, user.NewHasher(user.DefaultHashParams))
	authService := auth.NewService(
		users,
		tokens,
		tokenStore,
		verifier,
		notify.NewVerificationNotifier(queue),
		google,
		cfg.Auth,
		logger,
	)

	rateLimiter := ratelimit.NewLimiter(redisClient, time.Minute, map[string]int{
		ratelimit.PurposeLogin:  cfg.Auth.LoginRateLimit,
		ratelimit.PurposeSignup: cfg.Auth.SignupRateLimit,
	})

	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:           auth.NewHandler(authService, rateLimiter, cfg.Server.Production, cfg.Auth.RefreshTokenTTL),
		AuthMiddleware: auth.NewMiddleware(tokens),
		Catalog:        catalog.NewHandler(catalog.NewRepository(db)),
		Cart:           cart.NewHandler(cart.NewService(db)),
		Location:       location.NewHandler(location.NewRepository(db)),
		Health: func(ctx context.Context) error {
			if err := database.Ping(ctx, db); err != nil {
				return err
			}
			return redisClient.Ping(ctx).Err()
		},
	}, logger)

	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		dispatcher.Stop()
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		// workers finish the job in hand, queued jobs stay in Redis
		dispatcher.Stop()
	}

	return nil
}
