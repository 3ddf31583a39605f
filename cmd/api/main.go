package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-contact-relay/config"
	v1 "go-contact-relay/internal/delivery/http/v1"
	"go-contact-relay/internal/usecase"
	"go-contact-relay/pkg/captcha"
	"go-contact-relay/pkg/email"
	"go-contact-relay/pkg/logger"
	"go-contact-relay/pkg/ratelimit"
	"go-contact-relay/pkg/redis"
	"go-contact-relay/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting contact relay", "port", cfg.Port)

	// 3. Setup Rate Limiter (Redis-backed when configured, in-memory otherwise)
	var primary ratelimit.Store
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting stays in-memory", "error", err)
		} else {
			primary = ratelimit.NewRedisStore(redis.Client())
			defer redis.Close()
		}
	}
	limiter := ratelimit.New(primary, ratelimit.NewMemoryStore())

	dailyWindow := ratelimit.Window{
		Limit:  cfg.RateLimitDailyThreshold,
		Period: time.Duration(cfg.RateLimitDailyWindowHours) * time.Hour,
		Prefix: "rl:day:",
	}
	shortWindow := ratelimit.Window{
		Limit:  cfg.RateLimitShortThreshold,
		Period: time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		Prefix: "rl:msg:",
	}

	// 4. Setup Captcha Verifier
	verifier := captcha.NewClient(cfg.RecaptchaSecret, "")
	if !verifier.IsConfigured() {
		logger.Log.Warn("Captcha secret not configured - all submissions will be rejected")
	}

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will fail to relay")
	}

	// 6. Setup UseCases
	contactUC := usecase.NewContactUsecase(limiter, dailyWindow, shortWindow, verifier, emailService)
	healthUC := usecase.NewHealthUsecase()

	// 7. Setup Router (register custom validation tags on gin's binder)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 8. Start Server
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
