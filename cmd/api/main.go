// ABOUTME: Main entry point for the Film2Subtitle API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"film2subtitle-api/api"
	"film2subtitle-api/api/handlers"
	"film2subtitle-api/api/middleware"
	"film2subtitle-api/core/interfaces"
	"film2subtitle-api/core/subtitles"
	"film2subtitle-api/infrastructure/cache/memory"
	"film2subtitle-api/infrastructure/cache/redis"
	"film2subtitle-api/infrastructure/cache/sqlite"
	"film2subtitle-api/infrastructure/http/session"
	logruslogger "film2subtitle-api/infrastructure/logger/logrus"
	"film2subtitle-api/pkg/config"
	"film2subtitle-api/pkg/featureflags"
)

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load(".env")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logruslogger.New(logruslogger.Options{
		Level:  logLevel(cfg),
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	flags := featureflags.NewEnvManager("FEATURE_", featureflags.Defaults)
	logger.Info("Starting Film2Subtitle API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"prefix":     cfg.Server.APIPrefix,
		"cache_type": cfg.Cache.Type,
		"base_url":   cfg.Scraper.BaseURL,
		"flags":      flags.GetAllFlags(),
	})

	ctx := context.Background()

	var cache interfaces.Cache
	if flags.IsEnabled(ctx, featureflags.CacheEnabled) {
		cache = newCache(cfg, logger)
	} else {
		logger.Info("Cache disabled by feature flag", nil)
	}

	sess, err := session.New(session.Config{
		BaseURL:    cfg.Scraper.BaseURL,
		HTMLParser: cfg.Scraper.HTMLParser,
		UserAgent:  cfg.Scraper.UserAgent,
		Timeout:    cfg.Scraper.Timeout,
		RateLimit:  cfg.Scraper.RateLimit,
		Burst:      cfg.Scraper.Burst,
	}, session.WithTransport(middleware.NewLoggingRoundTripper(nil, logger)))
	if err != nil {
		logger.Error("Failed to create session", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	service := subtitles.NewService(interfaces.Dependencies{
		Cache:   cache,
		Session: sess,
		Logger:  logger,
	}, cfg.Cache.TTL)

	apiConfig := api.APIConfig{
		Logger:      logger,
		CORSOrigins: cfg.Server.CORSOrigins,
	}
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.RateLimit.Requests
		apiConfig.RateWindow = cfg.RateLimit.Window
	}
	server := api.NewAPI(apiConfig)
	defer server.Close()

	handlers.NewSubtitleHandler(service, flags).RegisterRoutes(server.API, cfg.Server.APIPrefix)
	handlers.NewHealthHandler(cache).RegisterRoutes(server.API, cfg.Server.APIPrefix)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Scraper.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	closers := []io.Closer{sess}
	if closer, ok := cache.(io.Closer); ok {
		closers = append(closers, closer)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(srv, quit, logger, closers...); err != nil {
		server.Close()
		logger.Close()
		log.Fatalf("Server failed: %v", err)
	}

	logger.Info("Server stopped", nil)
}

// serve runs srv until it fails or a signal arrives. Both paths shut the
// server down and then close every closer in order. The listen error, if
// any, is returned.
func serve(srv *http.Server, quit <-chan os.Signal, logger interfaces.Logger, closers ...io.Closer) error {
	failed := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	var serveErr error
	select {
	case sig := <-quit:
		logger.Info("Shutting down server...", map[string]interface{}{"signal": sig.String()})
	case serveErr = <-failed:
		logger.Error("HTTP server error", map[string]interface{}{
			"error": serveErr.Error(),
		})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			logger.Warn("Failed to release resource", map[string]interface{}{"error": err.Error()})
		}
	}

	return serveErr
}

// newCache builds the configured backend, falling back to memory when a
// remote backend cannot be reached
func newCache(cfg *config.Config, logger interfaces.Logger) interfaces.Cache {
	switch cfg.Cache.Type {
	case config.CacheTypeNone:
		logger.Info("Cache disabled", nil)
		return nil
	case config.CacheTypeRedis:
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache
	case config.CacheTypeSQLite:
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path, logger)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		fields := map[string]interface{}{"path": cfg.Cache.SQLite.Path}
		if stats, err := sqliteCache.Stats(); err == nil {
			for key, value := range stats {
				fields[key] = value
			}
		}
		logger.Info("Using SQLite cache", fields)
		return sqliteCache
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(cfg.Cache.Memory.CleanupInterval)
}

func logLevel(cfg *config.Config) string {
	if cfg.Server.Debug {
		return "debug"
	}
	return cfg.Log.Level
}

func init() {
	// Print banner
	fmt.Println(`
    _______ __            ___              __    __  _ __  __   
   / ____(_) /___ ___  _|__ \_______  __/ /_  / /_(_) /_/ /__ 
  / /_  / / / __ '__ \/ __/ / ___/ / / / __ \/ __/ / __/ / _ \
 / __/ / / / / / / / / __/ (__  ) /_/ / /_/ / /_/ / /_/ /  __/
/_/   /_/_/_/ /_/ /_/____//____/\__,_/_.___/\__/_/\__/_/\___/ 
	`)
}
