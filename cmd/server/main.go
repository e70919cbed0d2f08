package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/card-reward-optimizer/internal/catalog"
	"github.com/anyulbade/card-reward-optimizer/internal/config"
	"github.com/anyulbade/card-reward-optimizer/internal/database"
	"github.com/anyulbade/card-reward-optimizer/internal/handler"
	"github.com/anyulbade/card-reward-optimizer/internal/metrics"
	"github.com/anyulbade/card-reward-optimizer/internal/middleware"
	"github.com/anyulbade/card-reward-optimizer/internal/repository"
	"github.com/anyulbade/card-reward-optimizer/internal/service"
)

const demoLedgerSize = 120

type storage struct {
	txns     service.TransactionStore
	settings service.SettingsStore
	pinger   handler.Pinger
	close    func()
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())
	gin.SetMode(cfg.GinMode)

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load card catalog")
	}
	log.Info().Int("cards", cat.Len()).Str("file", cfg.CatalogFile).Msg("card catalog loaded")

	store, err := openStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to open storage")
	}
	defer store.close()

	rewardService := service.NewRewardService(cat)
	ledgerService := service.NewLedgerService(cat, store.txns, store.settings)
	dashboardService := service.NewDashboardService(ledgerService)
	reportService := service.NewReportService(dashboardService)

	if cfg.SeedDemo {
		if err := database.SeedDemoLedger(context.Background(), ledgerService, cat.Cards(), demoLedgerSize, time.Now()); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo ledger")
		}
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(store.pinger, cfg.StorageBackend)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", metrics.Handler())

	handler.SetupSwagger(router)
	handler.SetupAPIRoutes(router, handler.Services{
		Rewards:   rewardService,
		Ledger:    ledgerService,
		Dashboard: dashboardService,
		Reports:   reportService,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.StorageBackend).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func openStorage(cfg *config.Config) (*storage, error) {
	if cfg.StorageBackend == config.BackendMemory {
		mem := repository.NewMemoryStore()
		return &storage{txns: mem, settings: mem, pinger: mem, close: func() {}}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			pool.Close()
			return nil, err
		}
	}

	txnRepo := repository.NewTransactionRepository(pool)
	return &storage{
		txns:     txnRepo,
		settings: repository.NewSettingsRepository(pool),
		pinger:   txnRepo,
		close:    pool.Close,
	}, nil
}
