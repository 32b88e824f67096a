// Package app wires configuration, storage, services and transport together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/mailtriage/triagem-backend/internal/adapter/postgres/email"
	"github.com/mailtriage/triagem-backend/internal/adapter/postgres/profile"
	"github.com/mailtriage/triagem-backend/internal/adapter/provider/ibge"
	"github.com/mailtriage/triagem-backend/internal/auth"
	"github.com/mailtriage/triagem-backend/internal/config"

	pgadapter "github.com/mailtriage/triagem-backend/internal/adapter/postgres"
	authservice "github.com/mailtriage/triagem-backend/internal/service/auth"
	emailservice "github.com/mailtriage/triagem-backend/internal/service/email"
	inboundservice "github.com/mailtriage/triagem-backend/internal/service/inbound"
	locationservice "github.com/mailtriage/triagem-backend/internal/service/location"
	reportservice "github.com/mailtriage/triagem-backend/internal/service/report"
	"github.com/mailtriage/triagem-backend/internal/transport/middleware"
	"github.com/mailtriage/triagem-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, builds the service graph and serves HTTP until the context
// is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := pgadapter.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	emailRepo := email.New(pool)
	profileRepo := profile.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	ibgeProvider := ibge.NewProviderWithURL(cfg.IBGE.BaseURL, cfg.IBGE.Timeout, logger)

	authSvc := authservice.NewService(logger, profileRepo, jwtManager, cfg.Auth)
	emailSvc := emailservice.NewService(logger, emailRepo)
	inboundSvc := inboundservice.NewService(logger, emailRepo, cfg.Webhook.SystemAddress)
	locationSvc := locationservice.NewService(logger, ibgeProvider)
	reportSvc := reportservice.NewService(logger, emailRepo, cfg.Report.TopRecipients, cfg.ReportLocation())

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Logger:    logger,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Limiter:   limiter,
		Validator: authSvc,
		Auth:      rest.NewAuthHandler(authSvc, logger),
		Emails:    rest.NewEmailHandler(emailSvc, logger),
		Dashboard: rest.NewDashboardHandler(reportSvc, logger),
		Locations: rest.NewLocationHandler(locationSvc, logger),
		Webhook:   rest.NewWebhookHandler(inboundSvc, cfg.Webhook.Secret, logger),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
