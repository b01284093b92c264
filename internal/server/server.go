// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/superlists/internal/config"
	"codeberg.org/oliverandrich/superlists/internal/database"
	"codeberg.org/oliverandrich/superlists/internal/handlers"
	"codeberg.org/oliverandrich/superlists/internal/i18n"
	"codeberg.org/oliverandrich/superlists/internal/repository"
	"codeberg.org/oliverandrich/superlists/internal/services/auth"
	"codeberg.org/oliverandrich/superlists/internal/services/email"
	"codeberg.org/oliverandrich/superlists/internal/services/lists"
	"codeberg.org/oliverandrich/superlists/internal/services/session"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database (migrations run inside Open)
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Repository
	repo := repository.New(db)

	// Services
	mailer, err := newMailer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}
	authService := auth.NewService(repo, mailer, &cfg.Auth)
	listService := lists.NewService(repo)

	secureCookies := strings.HasPrefix(cfg.Server.BaseURL, "https://")
	sessions, err := session.NewManager(&cfg.Session, secureCookies)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	// Expired login tokens are swept in the background; with expiry disabled
	// tokens are kept forever, matching the single-use/expiry policy.
	if cfg.Auth.TokenMaxAge > 0 {
		go cleanupExpiredTokens(ctx, repo, cfg.Auth.TokenMaxAge)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	setupMiddleware(e, cfg, sessions, repo)

	// Routes
	setupRoutes(e, repo, listService, authService, sessions)

	// Start server
	return startWithGracefulShutdown(e, cfg)
}

// newMailer picks the SMTP mailer when configured and falls back to logging
// login links otherwise, so the app stays usable in development.
func newMailer(cfg *config.Config) (auth.Mailer, error) {
	if cfg.SMTP.Host == "" {
		slog.Warn("SMTP not configured, login links will be logged")
		return &email.LogMailer{BaseURL: cfg.Server.BaseURL}, nil
	}
	return email.NewService(&cfg.SMTP, cfg.Server.BaseURL)
}

// cleanupExpiredTokens deletes stale login tokens once an hour until the
// context is cancelled.
func cleanupExpiredTokens(ctx context.Context, repo *repository.Repository, maxAge time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := repo.DeleteExpiredTokens(ctx, maxAge)
			if err != nil {
				slog.Error("failed to delete expired login tokens", "error", err)
				continue
			}
			if count > 0 {
				slog.Debug("deleted expired login tokens", "count", count)
			}
		}
	}
}

func setupRoutes(e *echo.Echo, repo *repository.Repository, listSvc *lists.Service, authSvc *auth.Service, sessions *session.Manager) {
	h := handlers.New(repo, listSvc)
	authHandlers := handlers.NewAuth(authSvc, sessions)

	// Static files
	e.Static("/static", "static")

	// Pages
	e.GET("/health", h.Health)
	e.GET("/", h.Home)
	e.POST("/lists/new", h.NewList)
	e.GET("/lists/:id", h.ViewList)
	e.POST("/lists/:id", h.AddItem)
	e.GET("/lists/users/:email", h.MyLists)

	// Accounts
	e.POST("/accounts/send-login-email", authHandlers.SendLoginEmail)
	e.GET("/accounts/login", authHandlers.Login)
	e.POST("/accounts/logout", authHandlers.Logout)

	e.RouteNotFound("/*", h.NotFound)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	// Setup TLS
	tlsResult, err := SetupTLS(cfg)
	if err != nil {
		return fmt.Errorf("TLS setup failed: %w", err)
	}

	// Channel for server errors
	errChan := make(chan error, 2)

	// HTTP redirect server for ACME mode
	var httpServer *http.Server

	switch tlsResult.Mode {
	case TLSModeOff:
		// Plain HTTP on configured port
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeACME:
		// HTTPS on :443
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, ":443", tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		// HTTP redirect server on :80
		httpServer = &http.Server{
			Addr:              ":80",
			Handler:           tlsResult.HTTPHandler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("HTTP→HTTPS redirect active", "addr", ":80")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeSelfSigned, TLSModeManual:
		// HTTPS on configured port
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, addr, tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	// Wait for interrupt signal or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown main server
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown main server", "error", err)
	}

	// Shutdown HTTP redirect server if running
	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown HTTP redirect server", "error", err)
		}
	}

	slog.Info("server stopped")
	return nil
}

// startTLSServer starts the Echo server with a custom TLS configuration.
func startTLSServer(e *echo.Echo, addr string, tlsConfig *tls.Config) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	e.TLSListener = tls.NewListener(ln, tlsConfig)
	e.TLSServer.TLSConfig = tlsConfig
	return e.Server.Serve(e.TLSListener)
}
