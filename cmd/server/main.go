package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shopapi/internal/cache"
	"github.com/Skotchmaster/shopapi/internal/config"
	"github.com/Skotchmaster/shopapi/internal/db"
	"github.com/Skotchmaster/shopapi/internal/es"
	"github.com/Skotchmaster/shopapi/internal/logging"
	loggingmw "github.com/Skotchmaster/shopapi/internal/middleware/logging"
	"github.com/Skotchmaster/shopapi/internal/mykafka"
	"github.com/Skotchmaster/shopapi/internal/repo"
	"github.com/Skotchmaster/shopapi/internal/search"
	"github.com/Skotchmaster/shopapi/internal/service"
	httpserver "github.com/Skotchmaster/shopapi/internal/transport/http"
)

func main() {
	cfg := config.Load()
	if cfg.AdminEmail != "" {
		config.MustNonEmpty(cfg.AdminPassword, "ADMIN_PASSWORD")
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(ctx, gdb); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}
	seeded, err := db.Seed(ctx, gdb)
	if err != nil {
		cancel()
		log.Fatalf("db seed: %v", err)
	}
	if seeded {
		logger.Info("seed_data_inserted")
	}

	var events mykafka.Publisher = mykafka.Nop{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers, logger)
		if err != nil {
			cancel()
			log.Fatalf("kafka: %v", err)
		}
		events = producer
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	var index search.Index = search.Disabled{}
	if cfg.ESURL != "" {
		client, err := es.NewClient(ctx, es.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			logger.Error("search_disabled", "reason", "elasticsearch unavailable", "error", err)
		} else {
			index = &search.ESIndex{ES: client, Index: cfg.ESIndex}
			logger.Info("search_enabled", "index", cfg.ESIndex)
		}
	}

	var denylist cache.Denylist = cache.NewMemoryDenylist()
	var redisDenylist *cache.RedisDenylist
	if cfg.RedisAddr != "" {
		redisDenylist, err = cache.NewRedisDenylist(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			cancel()
			log.Fatalf("redis: %v", err)
		}
		denylist = redisDenylist
	}

	r := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret, Denylist: denylist, Events: events}
	catalogSvc := &service.CatalogService{Repo: r, Search: index, Events: events}

	if created, err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		cancel()
		log.Fatalf("admin bootstrap: %v", err)
	} else if created {
		logger.Info("admin_created", "email", cfg.AdminEmail)
	}
	cancel()

	if _, ok := index.(*search.ESIndex); ok {
		go func() {
			n, err := catalogSvc.Reindex(context.Background())
			if err != nil {
				logger.Error("reindex_failed", "error", err)
				return
			}
			logger.Info("reindex_done", "products", n)
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, service.SessionHeader},
	}))
	e.Use(echomw.BodyLimit("1M"))

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Events: events}},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Events: events}},
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http_listening", "addr", srv.Addr, "docs", "/api-docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_failed", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_failed", "error", err)
		}
	}
	if redisDenylist != nil {
		if err := redisDenylist.Close(); err != nil {
			logger.Error("redis_close_failed", "error", err)
		}
	}

	logger.Info("shutdown_complete")
}
