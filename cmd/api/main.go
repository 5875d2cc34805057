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

	"altrion/internal/collateral"
	"altrion/internal/config"
	"altrion/internal/connect"
	"altrion/internal/database"
	"altrion/internal/logger"
	"altrion/internal/oauth"
	"altrion/internal/server"
	"altrion/internal/services"
	"altrion/internal/validator"

	_ "altrion/internal/docs" // Import swagger docs
)

// @title           Altrion API
// @version         1.0
// @description     Altrion lets users pledge linked crypto, stock and stablecoin holdings as collateral and apply for loans against them.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Shared key of the holdings sync pipeline.

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if cfg.DBAutoMigrate {
		if err := dbManager.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	db := dbManager.DB()
	policy := collateral.Policy{MaxLTV: cfg.LoanMaxLTV, InterestRate: cfg.LoanInterestRate}
	auditService := services.NewAuditService(db)
	connectionService := services.NewConnectionService(ctx, db, newConnector(cfg), cfg.ConnectTimeout, auditService)

	router := server.NewRouter(cfg, server.Dependencies{
		Users:       services.NewUserService(db),
		Holdings:    services.NewHoldingService(db),
		Collateral:  services.NewCollateralService(db, policy),
		Loans:       services.NewLoanService(db, policy, cfg.LoanTermMonths, cfg.LoanStrictTransitions),
		Connections: connectionService,
		Audit:       auditService,
		OAuth:       oauth.NewRegistry(cfg),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Altrion backend server on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	// In-flight platform connections observe the cancelled context.
	connectionService.Wait()
	log.Info("Server stopped")
	return nil
}

func newConnector(cfg *config.Config) connect.Connector {
	if cfg.ConnectMode == config.ConnectModeHTTP {
		logger.Get().Infof("Using platform gateway at %s", cfg.ConnectBaseURL)
		client := &http.Client{Timeout: cfg.ConnectTimeout}
		return connect.NewHTTPConnector(cfg.ConnectBaseURL, cfg.ConnectAPIKey, client, cfg.ConnectRateLimit)
	}
	logger.Get().Infof("Using simulated platform connections (success rate %.2f)", cfg.ConnectSuccessRate)
	return connect.NewSimulatedConnector(cfg.ConnectSuccessRate, cfg.ConnectMinDelay, cfg.ConnectMaxDelay, nil)
}
