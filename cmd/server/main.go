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

	"mapup/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"mapup/internal/auth"
	"mapup/internal/backend"
	"mapup/internal/cache"
	"mapup/internal/config"
	"mapup/internal/form"
	"mapup/internal/handler"
	"mapup/internal/logging"
	"mapup/internal/router"
	"mapup/internal/service"
	"mapup/internal/session"
	"mapup/internal/summary"
	"mapup/internal/view"
)

// @title MapUp Dashboard View API
// @version 1.0
// @description JSON views over the MapUp stock dataset and user list.
// @host localhost:8080
// @BasePath /api/view
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if cfg.DefaultSecret() {
		log.Warn(ctx, "SESSION_SECRET not set, session cookies are signed with the development default")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	var short, long session.Store
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn(ctx, "redis unreachable, sessions will not survive until it returns", "addr", cfg.RedisAddr, "error", err)
		}
		short = session.NewRedisStore(cacheClient, "session:short:", cfg.SessionTTL)
		long = session.NewRedisStore(cacheClient, "session:long:", cfg.RememberTTL)
	} else {
		log.Info(ctx, "REDIS_ADDR empty, using in-memory sessions")
		short = session.NewMemoryStore(cfg.SessionTTL)
		long = session.NewMemoryStore(cfg.RememberTTL)
	}
	sessions := session.NewManager(short, long)

	client := backend.NewHTTPClient(cfg.APIBaseURL, cfg.HTTPClientTimeout)
	validator := form.NewValidator()
	jwtService := auth.NewJWTService(cfg.SessionSecret)

	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	// Initialize services
	authService := service.NewAuthService(client, sessions, log)
	stockService := service.NewStockService(client, cacheClient, cfg.StockCacheTTL, log)
	userService := service.NewUserService(client, validator, log)
	uploadService := service.NewUploadService(client, stockService, log)

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(stockService, userService, summary.NewStaticProvider(summary.Defaults), log)
	authHandler := handler.NewAuthHandler(authService, jwtService, handler.CookieConfig{
		Secure:      cfg.CookieSecure,
		SessionTTL:  cfg.SessionTTL,
		RememberTTL: cfg.RememberTTL,
	}, log)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		JWT:       jwtService,
		Sessions:  sessions,
		Validator: validator,
		Renderer:  renderer,
		Log:       log,
		Auth:      authHandler,
		Dashboard: dashboardHandler,
		Users:     handler.NewUserHandler(userService, dashboardHandler, log),
		Upload:    handler.NewUploadHandler(uploadService, log),
		API:       handler.NewAPIHandler(stockService, userService, log),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Info(ctx, "swagger documentation available", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		log.Info(ctx, "starting server", "addr", addr, "backend", cfg.APIBaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server start: %w", err)
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
