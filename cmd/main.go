package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/marchalgreen/rundeklar/config"
	"github.com/marchalgreen/rundeklar/db"
	"github.com/marchalgreen/rundeklar/handlers"
	"github.com/marchalgreen/rundeklar/repositories"
	api "github.com/marchalgreen/rundeklar/routes"
	"github.com/marchalgreen/rundeklar/scheduler"
	"github.com/marchalgreen/rundeklar/services"
	"github.com/marchalgreen/rundeklar/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// the archive bucket is optional; a club without R2 credentials
	// simply keeps nothing beyond Postgres
	var archiver storage.FileUploader
	if cfg.R2AccountID != "" {
		archiver, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("session archiving enabled", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("session archiving disabled")
	}

	wsHub := scheduler.NewHub(logger)
	go wsHub.Run()

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	checkInRepo := repositories.NewPostgresCheckInRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)
	courtRepo := repositories.NewPostgresCourtRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)

	live := services.NewLiveBoard()
	authService := services.NewAuthService(cfg.BoardAccessCodeHash, cfg.JWTSecretKey)
	sessionService := services.NewSessionService(
		dbConn, live, sessionRepo, checkInRepo, courtRepo, resultRepo,
		archiver, wsHub, logger, cfg.MaxCourts, cfg.MaxRounds,
	)
	boardService := services.NewBoardService(live, checkInRepo, courtRepo, wsHub)
	checkInService := services.NewCheckInService(live, checkInRepo, playerRepo, wsHub)
	resultService := services.NewResultService(live, resultRepo)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		handlers.NewAuthHandler(authService),
		handlers.NewPlayerHandler(playerRepo),
		handlers.NewSessionHandler(sessionService),
		handlers.NewCheckInHandler(checkInService),
		handlers.NewBoardHandler(boardService),
		handlers.NewResultHandler(resultService),
		handlers.NewWebSocketHandler(wsHub, logger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
