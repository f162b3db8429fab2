// Package app wires configuration, logging, storage, services and the HTTP
// server into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"auth-service/internal/adapter/postgres"
	"auth-service/internal/adapter/postgres/user"
	"auth-service/internal/adapter/provider/github"
	"auth-service/internal/auth"
	"auth-service/internal/config"
	authsvc "auth-service/internal/service/auth"
	"auth-service/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, applies
// migrations, wires the service graph and serves HTTP until the context is
// cancelled or a termination signal arrives.
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

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	users := user.New(pool)
	txManager := postgres.NewTxManager(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	githubClient := github.NewClient(
		cfg.Auth.GitHubClientID,
		cfg.Auth.GitHubClientSecret,
		cfg.Auth.GitHubRedirectURI,
		github.Endpoints{
			AuthorizeURL: cfg.Auth.GitHubAuthorizeURL,
			TokenURL:     cfg.Auth.GitHubTokenURL,
			UserURL:      cfg.Auth.GitHubUserURL,
			EmailsURL:    cfg.Auth.GitHubEmailsURL,
		},
		logger,
	)

	svc := authsvc.NewService(logger, users, jwtManager, githubClient, txManager)

	authHandler := rest.NewAuthHandler(svc, logger)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	router := rest.NewRouter(
		authHandler,
		healthHandler,
		jwtManager,
		logger,
		cfg.CORS,
		cfg.Auth.HasGitHubOAuth(),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
