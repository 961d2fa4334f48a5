package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"donorlink/internal/api"
	"donorlink/internal/api/handlers"
	"donorlink/internal/chatbot"
	"donorlink/internal/repository"
	"donorlink/internal/service"
	"donorlink/pkg/auth"
	"donorlink/pkg/config"
	"donorlink/pkg/logger"
	"donorlink/pkg/postgres"

	"go.uber.org/zap"
)

// @title DonorLink Chat API
// @version 1.0
// @description Blood-donation assistant backend: keyword intent classification, personalized responses, donation records and chat analytics

// @contact.name API Support
// @contact.email support@donorlink.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

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
	appLogger.Info("Starting DonorLink chat service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	donationRepo := repository.NewDonationRepository(db, appLogger)
	conversationRepo := repository.NewConversationRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Build the chat pipeline: static knowledge base, classifier, composer
	kb := chatbot.NewKnowledgeBase()
	classifier := chatbot.NewClassifier(kb)
	composer := chatbot.NewComposer(kb, cfg.Chatbot.EmergencyLine, cfg.Chatbot.DirectoryURL, nil, nil)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	chatService := service.NewChatService(classifier, composer, donationRepo, conversationRepo, appLogger)
	donationService := service.NewDonationService(donationRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	donationHandler := handlers.NewDonationHandler(donationService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, chatHandler, donationHandler, jwtManager, appLogger)

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
