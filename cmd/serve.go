package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Dosada05/trade-machine/assistant"
	"github.com/Dosada05/trade-machine/config"
	"github.com/Dosada05/trade-machine/db"
	"github.com/Dosada05/trade-machine/fixtures"
	"github.com/Dosada05/trade-machine/handlers"
	"github.com/Dosada05/trade-machine/live"
	"github.com/Dosada05/trade-machine/repositories"
	api "github.com/Dosada05/trade-machine/routes"
	"github.com/Dosada05/trade-machine/services"
	"github.com/Dosada05/trade-machine/storage"
	"github.com/Dosada05/trade-machine/utils"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func serve(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	logger.Info().Int("port", cfg.ServerPort).Msg("configuration loaded")

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close database connection")
		} else {
			logger.Info().Msg("database connection closed")
		}
	}()
	logger.Info().Msg("database connection established")

	league, err := fixtures.Load()
	if err != nil {
		return err
	}

	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info().Str("bucket", cfg.R2.BucketName).Msg("trade report export enabled")
	} else {
		logger.Warn().Msg("R2 settings incomplete, trade report export disabled")
	}

	var generator services.TextGenerator
	if cfg.Gemini.Enabled() {
		gemini, err := assistant.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		generator = gemini
		logger.Info().Str("model", cfg.Gemini.Model).Msg("trade chat enabled")
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set, trade chat disabled")
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := live.NewHub(logger)
	go hub.Run(hubCtx)

	clock := clockwork.NewRealClock()
	tokens := utils.NewTokenManager(cfg.JWTSecretKey, utils.DefaultTokenTTL, clock)

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	pickRepo := repositories.NewPostgresDraftPickRepository(dbConn)
	tradeRepo := repositories.NewPostgresTradeRepository(dbConn)

	tradeService := services.NewTradeService(services.TradeServiceDeps{
		Trades:    tradeRepo,
		Validator: services.TradeValidator{RejectDuplicatePicks: cfg.RejectDuplicatePicks},
		League:    league,
		Events:    hub,
		Reports:   uploader,
		Clock:     clock,
		Logger:    logger,
	})
	authService := services.NewAuthService(userRepo, tokens, logger)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, pickRepo)
	dashboardService := services.NewDashboardService(userRepo, tradeService)
	chatService := services.NewChatService(tradeService, generator, league, logger)
	exportService := services.NewExportService(tradeService, uploader, clock, logger)
	adminService := newAdminService(cfg, dbConn, league, clock, logger, userRepo, teamRepo, pickRepo, tradeRepo)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Options{
		Logger:             logger,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		ExposeErrorDetails: cfg.ExposeErrorDetails,
		AdminAPIKey:        cfg.AdminAPIKey,
		Tokens:             tokens,
	}, api.Handlers{
		Health:    handlers.NewHealthHandler(dbConn),
		Auth:      handlers.NewAuthHandler(authService),
		Teams:     handlers.NewTeamHandler(teamService),
		Users:     handlers.NewUserHandler(userService, dashboardService),
		Trades:    handlers.NewTradeHandler(tradeService, chatService, exportService),
		Admin:     handlers.NewAdminHandler(adminService),
		WebSocket: handlers.NewWebSocketHandler(hub, cfg.CORSAllowedOrigins),
	})
	if cfg.AdminAPIKey == "" {
		logger.Warn().Msg("ADMIN_API_KEY not set, admin routes disabled")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 40 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     log.New(logger.With().Str("component", "http").Logger(), "", 0),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("address", server.Addr).Msg("starting server")
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to force close server")
			}
			return err
		}
	}

	stopHub()
	logger.Info().Msg("server shutdown complete")
	return nil
}
