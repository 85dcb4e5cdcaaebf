package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prepforge/internal/api"
	"prepforge/internal/app/judge"
	"prepforge/internal/app/service"
	"prepforge/internal/common/security"
	"prepforge/internal/domain/repository"
	"prepforge/internal/llm"
	"prepforge/internal/platform/config"
	"prepforge/internal/platform/database"
	"prepforge/internal/platform/tokenstore"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	tokenstore.ConnectRedis()
	defer tokenstore.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize the generative-text provider (injected, never a hidden singleton)
	provider, err := llm.NewProvider(context.Background(), config.AppConfig)
	if err != nil {
		log.Fatalf("Could not initialize LLM provider: %v", err)
	}
	fmt.Printf("LLM provider ready (model %s).\n", provider.ModelID())

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	questionRepo := repository.NewPgQuestionRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	// 7. Initialize Services
	resetTokens := tokenstore.NewRedisResetTokenStore(tokenstore.RDB)
	authService := service.NewAuthService(userRepo, resetTokens)
	questionService := service.NewQuestionService(questionRepo, provider)
	practiceService := service.NewPracticeService(questionRepo, submissionRepo, provider)
	submissionService := service.NewSubmissionService(submissionRepo, questionRepo, judge.NewSimulatedJudge(), provider)
	leaderboardService := service.NewLeaderboardService(questionRepo, userRepo, config.AppConfig.LeaderboardLimit)
	quizService := service.NewQuizService(provider)
	resumeService := service.NewResumeService(provider)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(
		authService,
		questionService,
		practiceService,
		submissionService,
		leaderboardService,
		quizService,
		resumeService,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // AI calls dominate; keep room for retries
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
