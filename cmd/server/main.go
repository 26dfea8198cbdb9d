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

	"github.com/alimgiray/gitossum/internal/handlers"
	"github.com/alimgiray/gitossum/internal/middleware"
	"github.com/alimgiray/gitossum/internal/repositories"
	"github.com/alimgiray/gitossum/internal/services"
	"github.com/alimgiray/gitossum/pkg/config"
	"github.com/alimgiray/gitossum/pkg/database"
	"github.com/alimgiray/gitossum/pkg/kafka"
	"github.com/alimgiray/gitossum/pkg/logger"
	"github.com/alimgiray/gitossum/pkg/mailer"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	githubService, err := services.NewGitHubService(cfg.GitHub)
	if err != nil {
		logger.Fatalf("Failed to initialize GitHub client: %v", err)
	}

	publisher := kafka.New(cfg.Kafka)
	defer publisher.Close()

	mail := mailer.New(cfg.Mail)

	// Initialize dependencies
	trManager := manager.Must(trmsqlx.NewDefaultFactory(db))

	userRepo := repositories.NewUserRepository(db, trmsqlx.DefaultCtxGetter)
	minedRepoRepo := repositories.NewMinedRepoRepository(db)
	miningRequestRepo := repositories.NewMiningRequestRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)

	tokens := services.NewActivationTokenService(cfg.Activation.Secret, cfg.Activation.TTL)

	router, err := handlers.NewRouter(handlers.Dependencies{
		DB:                   db,
		Sessions:             middleware.NewSessions(cfg.Session.Secret),
		UserService:          services.NewUserService(userRepo, trManager, tokens, mail, cfg.Server.BaseURL),
		MinedRepoService:     services.NewMinedRepoService(minedRepoRepo, githubService),
		MiningRequestService: services.NewMiningRequestService(miningRequestRepo, publisher),
		FeedbackService:      services.NewFeedbackService(feedbackRepo, mail, cfg.Mail.FeedbackRecipient),
		ChartService:         services.NewChartService(),
		ExportService:        services.NewExportService(),
	})
	if err != nil {
		logger.Fatalf("Failed to build router: %v", err)
	}

	// Setup server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shut down: %v", err)
	}
	logger.Infof("Server stopped")
}
