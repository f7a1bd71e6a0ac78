// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"

	"github.com/codehub-dev/codehub-go/internal/assist"
	"github.com/codehub-dev/codehub-go/internal/cache"
	"github.com/codehub-dev/codehub-go/internal/cms"
	"github.com/codehub-dev/codehub-go/internal/config"
	"github.com/codehub-dev/codehub-go/internal/execute"
	"github.com/codehub-dev/codehub-go/internal/handler"
	"github.com/codehub-dev/codehub-go/internal/logging"
	"github.com/codehub-dev/codehub-go/internal/middleware"
	"github.com/codehub-dev/codehub-go/internal/permission"
	"github.com/codehub-dev/codehub-go/internal/version"
	"github.com/codehub-dev/codehub-go/internal/warmup"
	"github.com/codehub-dev/codehub-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "CodeHub - programming tutorial platform\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CODEHUB_CMS_URL          Headless CMS base URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CODEHUB_SERVER_PORT      Server port (default: 3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CODEHUB_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CODEHUB_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CODEHUB_CACHE_TTL        Content revalidation window in seconds (default: 60)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CODEHUB_EXEC_API_URL     Compiler service endpoint (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CODEHUB_OPENAI_API_KEY   LLM provider key for the tutoring chat (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("codehub %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logging.NewContextHandler(textHandler))
	slog.SetDefault(logger)

	slog.Info("starting codehub",
		"version", versionInfo.Version,
		"env", cfg.Env,
		"cms", cfg.CMSBaseURL,
	)

	contentCache := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
	})
	defer func() {
		if err := contentCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	cmsClient := cms.New(cfg.CMSBaseURL, contentCache, time.Duration(cfg.CacheTTL)*time.Second, logger)
	runner := execute.NewRunner(cfg.ExecAPIURL, cfg.ExecAPIKey, cfg.ExecAPIHost)
	assistant := assist.New(cfg.OpenAIAPIKey)

	if !runner.Enabled() {
		slog.Info("code execution disabled: compiler API not configured")
	}
	if !assistant.Enabled() {
		slog.Info("tutoring chat disabled: no LLM provider key")
	}

	authHandler := handler.NewAuthHandler(cmsClient, cfg.IsDevelopment())
	proxyHandler := handler.NewProxyHandler(cmsClient)
	executeHandler := handler.NewExecuteHandler(runner)
	chatHandler := handler.NewChatHandler(assistant)
	healthHandler := handler.NewHealthHandler(cmsClient)

	frontendHandler, err := handler.NewFrontendHandler(cmsClient, web.Templates)
	if err != nil {
		return fmt.Errorf("initializing frontend: %w", err)
	}

	warmer := warmup.New(cmsClient, logger)
	if err := warmer.Start(); err != nil {
		return fmt.Errorf("starting content warmup: %w", err)
	}
	defer warmer.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(middleware.RequestPath)
	r.Use(middleware.SecurityHeaders(cfg.IsDevelopment()))
	r.Use(middleware.LoadUser(cmsClient))

	// Public pages
	r.Get("/", frontendHandler.Home)
	r.Get("/learn/{language}", frontendHandler.Language)
	r.Get("/learn/{language}/{tutorial}", frontendHandler.Tutorial)
	r.Get("/login", frontendHandler.Login)
	r.Get("/health", healthHandler.Health)

	// Admin shell: coarse cookie check at the route, fine capability check
	// on the page's API calls.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Get("/", frontendHandler.Admin)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Credential endpoints get a tight rate limit per client IP.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(10, time.Minute))
			r.Post("/users/login", authHandler.Login)
			r.Post("/users", authHandler.Signup)
		})
		r.Post("/users/logout", authHandler.Logout)
		r.Get("/users/me", authHandler.Me)

		// Content proxies. Reads are public; mutations carry the session
		// token upstream and the CMS enforces its own access control.
		registerResource(r, "/tutorials", proxyHandler.Forward(cms.CollectionTutorials))
		registerResource(r, "/languages", proxyHandler.Forward(cms.CollectionLanguages))
		registerResource(r, "/form-submissions", proxyHandler.Forward(cms.CollectionFormSubmissions))
		r.Get("/forms/{id}", proxyHandler.Forward(cms.CollectionForms))

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", proxyHandler.Forward(cms.CollectionExercises))
			r.Get("/{id}", proxyHandler.Forward(cms.CollectionExercises))
			r.Post("/", proxyHandler.Forward(cms.CollectionExercises))

			// Exercise mutations require the editor capability up front.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(permission.CanEditExercises))
				r.Patch("/{id}", proxyHandler.Forward(cms.CollectionExercises))
				r.Post("/bulk-update", proxyHandler.BulkUpdate)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(permission.CanDeleteExercises))
				r.Delete("/{id}", proxyHandler.Forward(cms.CollectionExercises))
				r.Post("/bulk-delete", proxyHandler.BulkDelete)
			})
		})

		r.Post("/execute", executeHandler.Run)
		r.Post("/chat", chatHandler.Chat)
	})

	r.NotFound(frontendHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// registerResource wires the list/detail/create/update/delete routes of one
// proxied CMS resource.
func registerResource(r chi.Router, base string, forward http.HandlerFunc) {
	r.Get(base, forward)
	r.Post(base, forward)
	r.Route(base+"/{id}", func(r chi.Router) {
		r.Get("/", forward)
		r.Patch("/", forward)
		r.Delete("/", forward)
	})
}
