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

	"auth-gateway/config"
	"auth-gateway/internal/adapter/gateway"
	adapterhandler "auth-gateway/internal/adapter/handler"
	"auth-gateway/internal/domain"
	infracache "auth-gateway/internal/infrastructure/cache"
	infratoken "auth-gateway/internal/infrastructure/token"
	"auth-gateway/internal/usecase"
	appmiddleware "auth-gateway/middleware"
	"auth-gateway/utils/logger"
	"auth-gateway/utils/otel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// Initialize structured logger
	logger.Init(otelCfg.Enabled)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"provider_url", cfg.ProviderURL,
		"port", cfg.Port,
		"resolve_cache_ttl", cfg.ResolveCacheTTL)

	// Infrastructure
	identityCache := infracache.New(cfg.ResolveCacheTTL)
	provider := gateway.NewProviderClient(cfg.ProviderURL, cfg.APIKey(), cfg.ProviderTimeout)

	var issuer domain.TokenIssuer
	if cfg.GatewayTokenSecret != "" {
		issuer = infratoken.NewJWTIssuer(infratoken.JWTConfig{
			Secret:   cfg.GatewayTokenSecret,
			Issuer:   cfg.GatewayTokenIssuer,
			Audience: cfg.GatewayTokenAud,
			TTL:      cfg.GatewayTokenTTL,
		})
	}

	// Usecases
	signUpUC := usecase.NewSignUp(provider, cfg.PasswordMinLength, slog.Default())
	signInUC := usecase.NewSignIn(provider, cfg.PasswordMinLength, slog.Default())
	rotateUC := usecase.NewRotate(provider, slog.Default())
	resolveUC := usecase.NewResolve(provider, identityCache, slog.Default())
	terminateUC := usecase.NewTerminate(provider, identityCache, slog.Default())

	// Handlers and guard
	authHandler := adapterhandler.NewAuthHandler(signUpUC, signInUC, rotateUC, terminateUC)
	healthHandler := adapterhandler.NewHealthHandler()
	guard := appmiddleware.NewAuthGuard(resolveUC, issuer, adapterhandler.MapDomainError, slog.Default())

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders())

	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
			AllowCredentials: true,
		}))
	}

	// OpenTelemetry tracing
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// One limiter, separate budgets per endpoint group
	limiter := appmiddleware.NewRateLimiter()
	credentialRL := limiter.Group("credentials", 10.0/60.0, 3) // 10 req/min
	refreshRL := limiter.Group("refresh", 30.0/60.0, 5)        // 30 req/min
	resolveRL := limiter.Group("resolve", 100.0/60.0, 10)      // 100 req/min

	// Public routes
	authGroup := e.Group("/auth")
	authGroup.POST("/sign-up", authHandler.HandleSignUp, credentialRL)
	authGroup.POST("/sign-in", authHandler.HandleSignIn, credentialRL)
	authGroup.POST("/refresh", authHandler.HandleRefresh, refreshRL)

	// Protected routes: the guard runs before any handler logic
	authGroup.GET("/me", authHandler.HandleMe, resolveRL, guard.RequireIdentity())
	authGroup.POST("/sign-out", authHandler.HandleSignOut, resolveRL, guard.RequireBearer())

	e.GET("/health", healthHandler.Handle)

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting auth-gateway server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
