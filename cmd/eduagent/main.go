package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduagent/internal/api"
	"eduagent/internal/api/handlers"
	"eduagent/internal/ingest"
	"eduagent/internal/repository"
	"eduagent/internal/service"
	"eduagent/pkg/auth"
	"eduagent/pkg/config"
	"eduagent/pkg/logger"
	"eduagent/pkg/ollama"
	"eduagent/pkg/postgres"

	"go.uber.org/zap"
)

// @title EduAgent Helpdesk API
// @version 1.0
// @description Campus helpdesk chat assistant grounded in institutional records and uploaded documents

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting EduAgent helpdesk service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	faqRepo := repository.NewFAQRepository(db, appLogger)
	examRepo := repository.NewExamRepository(db, appLogger)
	feeRepo := repository.NewFeeRepository(db, appLogger)
	escalationRepo := repository.NewEscalationRepository(db, appLogger)
	passageRepo := repository.NewPassageRepository(db, appLogger)
	staffRepo := repository.NewStaffRepository(db, appLogger)

	// Initialize Ollama client. The service starts even when the model
	// server is down; the chat pipeline degrades to a fixed notice.
	llm := ollama.NewClient(&cfg.Ollama, appLogger)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := llm.Ping(pingCtx); err != nil {
		appLogger.Warn("Ollama is not reachable, chat answers will be degraded until it comes up",
			zap.String("base_url", cfg.Ollama.BaseURL),
			zap.Error(err),
		)
	} else {
		appLogger.Info("Ollama is reachable",
			zap.String("base_url", cfg.Ollama.BaseURL),
			zap.String("model", cfg.Ollama.Model),
		)
	}
	cancel()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(staffRepo, jwtManager, appLogger)

	passageIndex := service.NewPassageIndex(llm, passageRepo, appLogger)
	retriever := service.NewRetriever(faqRepo, examRepo, feeRepo, passageIndex, cfg.RAG.TopK, appLogger)
	responder := service.NewResponder(llm, cfg.Institution, appLogger)
	history := service.NewConversationHistory(cfg.Chat.HistoryTurns)

	pipeline := service.NewPipeline(
		service.NewEscalationGate(escalationRepo, appLogger),
		service.NewDocumentMatcher(cfg.Documents.Dir),
		service.NewClassifier(),
		retriever,
		responder,
		history,
		appLogger,
	)

	ingestor := ingest.NewIngestor(llm, passageRepo, appLogger)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(pipeline, appLogger)
	docHandler := handlers.NewDocumentHandler(cfg.Documents.Dir, ingestor, appLogger)
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	adminHandler := handlers.NewAdminHandler(escalationRepo, faqRepo, examRepo, feeRepo, passageRepo, appLogger)

	// Setup router
	app := api.SetupRouter(chatHandler, docHandler, authHandler, adminHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
