package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"openlater/config"
	_ "openlater/docs"
	"openlater/internal/adapters/email"
	delivery "openlater/internal/delivery/http"
	"openlater/internal/delivery/http/controllers"
	"openlater/internal/delivery/http/middleware"
	"openlater/internal/repository/postgres"
	"openlater/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title OpenLater API
// @version 1.0
// @description Time-capsule service: seal a message until a future unlock time.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("couldn't open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("couldn't reach database", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	capsuleRepo := postgres.NewCapsuleRepository(db)
	capsuleService := services.NewCapsuleService(capsuleRepo, serviceTimeout)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	})
	if err != nil {
		logger.Error("couldn't create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	notifier := services.NewUnlockNotifier(logger, capsuleRepo, emailService, cfg.NotifierInterval)
	go notifier.Run(ctx)

	capsuleController := controllers.NewCapsuleController(logger, capsuleService)
	mux := delivery.NewRouter(capsuleController)
	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.RequestID(
			middleware.LoggingMiddleware(logger, mux)))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
