package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-gateway/config"
	v1 "go-jobboard-gateway/internal/delivery/http/v1"
	"go-jobboard-gateway/internal/repository/redisstore"
	"go-jobboard-gateway/internal/repository/remote"
	"go-jobboard-gateway/internal/usecase"
	"go-jobboard-gateway/pkg/auth"
	"go-jobboard-gateway/pkg/database"
	"go-jobboard-gateway/pkg/logger"
	"go-jobboard-gateway/pkg/redis"
	"go-jobboard-gateway/pkg/security"
	"go-jobboard-gateway/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Job Board Session Gateway
// @version         1.0
// @description     Session and profile-completion gateway for the job board frontend.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job board gateway", "port", cfg.Port)

	// 3. Setup Redis (sessions, login tracking, rate limits)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redis.Close()

	// 4. Setup Security Logging
	securityLogger := security.InitSecurityLogger("jobboard-gateway", os.Getenv("APP_ENV"))
	defer securityLogger.Sync()
	if cfg.SecurityLogToDB && cfg.SecurityDBUrl != "" {
		dbPool, err := database.NewPostgresConnection(cfg.SecurityDBUrl)
		if err != nil {
			logger.Log.Warn("Security event DB unavailable, logging to stdout only", "error", err)
		} else {
			defer dbPool.Close()
			eventRepo := security.NewSecurityEventRepository(dbPool)
			securityLogger.SetPersistFunc(eventRepo.CreatePersistFunc())
		}
	}
	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	})

	// 5. Setup Repositories
	platformClient := remote.NewClient(cfg)
	authGateway := remote.NewAuthRepository(platformClient)
	profileRepo := remote.NewProfileRepository(platformClient)
	skillRepo := remote.NewSkillRepository(platformClient)
	documentStore := remote.NewStorageRepository(cfg)
	sessionStore := redisstore.NewSessionStore(redis.Client(), cfg.RefreshTokenTTL)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	sessionUC := usecase.NewSessionUsecase(sessionStore, profileRepo, authGateway)
	profileUC := usecase.NewProfileUsecase(profileRepo, validate)
	skillUC := usecase.NewSkillUsecase(skillRepo, validate)

	// 7. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.PlatformAPIURL + "/auth/.well-known/jwks.json")

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		SessionUC:    sessionUC,
		ProfileUC:    profileUC,
		SkillUC:      skillUC,
		AuthGateway:  authGateway,
		Documents:    documentStore,
		LoginTracker: loginTracker,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
