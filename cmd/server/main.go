package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/storefront-service/internal/adapter/cache"
	"github.com/example/storefront-service/internal/adapter/httpapi"
	"github.com/example/storefront-service/internal/adapter/natsstan"
	"github.com/example/storefront-service/internal/adapter/repo"
	"github.com/example/storefront-service/internal/adapter/telegram"
	"github.com/example/storefront-service/internal/config"
	"github.com/example/storefront-service/internal/metrics"
	"github.com/example/storefront-service/internal/usecase"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := repo.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("init schema", zap.Error(err))
	}

	catalog := cache.NewMemoryCatalog()
	load := usecase.LoadCatalog{
		Source: repo.NewPostgresCatalog(pool),
		Cache:  catalog,
		Limit:  cfg.CatalogPageLimit,
		Log:    logger,
	}
	if err := load.Execute(ctx); err != nil {
		// пустой каталог — рабочее состояние, а не отказ
		logger.Warn("catalog load failed, starting with empty snapshot", zap.Error(err))
	}

	publisher := &natsstan.Publisher{
		ClusterID: cfg.StanClusterID,
		ClientID:  cfg.StanClientID,
		URL:       cfg.NatsURL,
		Subject:   cfg.OrderSubject,
	}
	if err := publisher.Connect(); err != nil {
		logger.Fatal("stan connect", zap.Error(err))
	}
	defer publisher.Close()

	m := metrics.NewStoreMetrics(prometheus.DefaultRegisterer)
	haptics := telegram.NewLogBridge(logger)
	api := httpapi.NewServer(catalog, publisher, haptics, m, logger)
	api.Router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: api.Router}
	go func() {
		logger.Info("http listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}
