package entrypoint

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamhubb/server/internal/auth"
	"github.com/teamhubb/server/internal/config"
	"github.com/teamhubb/server/internal/database"
	http_controllers "github.com/teamhubb/server/internal/http"
)

// Serve runs the HTTP server until SIGINT/SIGTERM and then shuts it down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "host", cfg.HTTP.Host, "port", cfg.HTTP.Port, "env", string(cfg.Global.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	logger := newLogger(cfg.Global.IsProduction())
	slog.SetDefault(logger)

	slog.Info("starting teamhub server", "version", version)

	if cfg.Global.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	authService := auth.NewService(db.DB, cfg.Auth)

	backend, sessionManager, err := newSessionBackend(db, cfg)
	if err != nil {
		slog.Error("failed to initialize session backend", "error", err)
		os.Exit(1)
	}
	slog.Info("session backend selected", "mode", string(backend.Mode()))

	var google auth.GoogleVerifier
	if cfg.Google.ClientID != "" {
		google = auth.NewGoogleVerifier(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL)
	} else {
		slog.Warn("GOOGLE_CLIENT_ID is not set, federated login is disabled")
	}

	authController := auth.NewController(auth.ControllerConfig{
		Service:            authService,
		Backend:            backend,
		Google:             google,
		FrontendOrigin:     cfg.Frontend.Origin,
		FrontendFailureURL: cfg.Frontend.GoogleCallbackURL,
		SecureCookies:      cfg.Global.IsProduction(),
		Logger:             logger,
	})

	gate := auth.NewGate(backend, logger)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		AuthController: authController,
		Gate:           gate,
		SessionManager: sessionManager,
		BasePath:       cfg.HTTP.BasePath,
		Production:     cfg.Global.IsProduction(),
		Version:        version,
	})

	Serve(router, cfg)
}

// newSessionBackend builds the backend the deployment is configured for.
// The returned session manager is nil in token mode.
func newSessionBackend(db *database.Database, cfg *config.Config) (auth.SessionBackend, *auth.SessionManager, error) {
	switch cfg.Auth.SessionMode {
	case config.SessionModeToken:
		if cfg.Auth.TokenSecret == "" {
			return nil, nil, fmt.Errorf("TOKEN_SECRET is required in token mode")
		}
		codec, err := auth.NewTokenCodec(cfg.Auth.TokenSecret, cfg.Auth.TokenExpiry)
		if err != nil {
			return nil, nil, err
		}
		return auth.NewTokenBackend(codec), nil, nil

	case config.SessionModeCookie, "":
		sqlDB, err := db.DB.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get SQL DB for sessions: %w", err)
		}
		sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth, cfg.Global.IsProduction())
		if err != nil {
			return nil, nil, err
		}
		return auth.NewCookieBackend(sessionManager), sessionManager, nil

	default:
		return nil, nil, fmt.Errorf("unknown SESSION_MODE %q", cfg.Auth.SessionMode)
	}
}

func newLogger(production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
