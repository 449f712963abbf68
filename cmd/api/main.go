package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"peopleconnect/internal/adapter/api"
	"peopleconnect/internal/adapter/api/handler"
	apimiddleware "peopleconnect/internal/adapter/api/middleware"
	"peopleconnect/internal/adapter/api/router"
	"peopleconnect/internal/app"
	"peopleconnect/internal/infrastructure/websocket"
	"peopleconnect/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer application.Close()

	handler.Setup(
		application.Auth,
		application.Users,
		application.Moderation,
		application.Categories,
		application.Dashboard,
		application.Fetcher,
	)
	handler.SetupHealthHandler(application.Feed)

	wsManager := websocket.NewManager()
	wsHandler := handler.NewWebSocketHandler(wsManager, application.Feed, cfg.AllowedOrigins)
	unsubscribe := wsHandler.PublishFeed()
	defer unsubscribe()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(application.Identity)
	adminMiddleware := apimiddleware.NewAdminMiddleware()
	loginLimiter := apimiddleware.NewRateLimiter(5, time.Minute)

	router.Setup(e, authMiddleware, adminMiddleware, loginLimiter, wsHandler)

	g, gctx := errgroup.WithContext(ctx)

	wsManager.Start(gctx)

	g.Go(func() error {
		return application.Feed.Start(gctx)
	})

	g.Go(func() error {
		loginLimiter.Cleanup(gctx)
		return nil
	})

	g.Go(func() error {
		log.Printf("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		log.Printf("Shutting down server...")
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
