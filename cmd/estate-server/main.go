// Package main provides the entry point for estate-server.
//
// estate-server hosts the Nainaland estate API: authentication with
// token sessions, the property catalog, blog posts, and the contact
// form.
//
// Usage:
//
//	estate-server [flags]
//	estate-server --config /path/to/config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/nainaland/estate-go/internal/core/service"
	"github.com/nainaland/estate-go/internal/infra/buildinfo"
	"github.com/nainaland/estate-go/internal/infra/confloader"
	"github.com/nainaland/estate-go/internal/infra/shutdown"
	"github.com/nainaland/estate-go/internal/server/config"
	"github.com/nainaland/estate-go/internal/server/httpserver"
	"github.com/nainaland/estate-go/internal/storage"
	"github.com/nainaland/estate-go/internal/storage/badgerstore"
	"github.com/nainaland/estate-go/internal/storage/memory"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
	"github.com/nainaland/estate-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// contentStore is the set of repositories the domain services need.
type contentStore interface {
	service.UserRepository
	service.PropertyRepository
	service.BlogPostRepository
	service.ContactRepository
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("estate-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting estate-server",
		"version", buildinfo.Version,
		"config", *configFile,
		"backend", cfg.Storage.Backend)

	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)

	// Content store: in-memory by default, Badger when configured.
	var store contentStore
	switch cfg.Storage.Backend {
	case "badger":
		bs, err := badgerstore.Open(badgerstore.Config{Dir: cfg.Storage.DataDir}, log)
		if err != nil {
			return fmt.Errorf("open badger store: %w", err)
		}
		shutdownHandler.OnShutdown(func(context.Context) error {
			log.Info("closing badger store")
			return bs.Close()
		})
		store = bs
	default:
		store = memory.NewStore()
	}

	// Sessions always live in memory; they do not survive a restart.
	sessions := memory.NewSessionRegistry()
	metrics := metric.NewRegistry()

	ctx := context.Background()
	if err := storage.Seed(ctx, store, store, store, storage.SeedConfig{
		AdminUsername: cfg.Seed.AdminUsername,
		AdminPassword: cfg.Seed.AdminPassword,
		SampleData:    cfg.Seed.SampleData,
	}, log); err != nil {
		return fmt.Errorf("seed storage: %w", err)
	}

	authSvc := service.NewAuthService(store, sessions, metrics, service.AuthConfig{
		SessionTTL: cfg.Auth.SessionTTL,
	})
	catalogSvc := service.NewCatalogService(store)
	blogSvc := service.NewBlogService(store)
	contactSvc := service.NewContactService(store)

	// Background sweep of expired sessions.
	sweepCtx, stopSweep := context.WithCancel(ctx)
	sweeper := service.NewSessionSweeper(sessions, metrics, cfg.Auth.SweepInterval, log)
	go sweeper.Run(sweepCtx)
	shutdownHandler.OnShutdown(func(context.Context) error {
		stopSweep()
		return nil
	})

	// Reload log level when the config file changes.
	if *configFile != "" {
		if err := watchLogLevel(*configFile, shutdownHandler, log); err != nil {
			log.Warn("config watcher unavailable", "error", err)
		}
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		AuthService:    authSvc,
		CatalogService: catalogSvc,
		BlogService:    blogSvc,
		ContactService: contactSvc,
		Logger:         log,
		Metrics:        metrics,
		CookieName:     cfg.Auth.CookieName,
		CookieSecure:   cfg.Auth.CookieSecure,
	})

	httpServer := httpserver.New(httpserver.Options{
		Addr:         cfg.Server.HTTP.Addr,
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
	}, router)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)

		var err error
		if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from defaults, file, and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// watchLogLevel reloads the log level when the config file changes.
func watchLogLevel(configFile string, sh *shutdown.Handler, log logger.Logger) error {
	watcher, err := confloader.NewWatcher(log)
	if err != nil {
		return err
	}
	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return err
	}

	watcher.OnChange(func(string) {
		loader := confloader.NewLoader(confloader.WithConfigFile(configFile))
		if err := loader.LoadFile(configFile); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if level := loader.GetString("log.level"); level != "" && level != logger.GetLevel() {
			logger.SetLevel(level)
			log.Info("log level changed", "level", level)
		}
	})

	watcher.StartAsync()
	sh.OnShutdown(func(context.Context) error {
		return watcher.Stop()
	})
	return nil
}
