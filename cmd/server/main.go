package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/chickenroad/internal/config"
	"github.com/mamadbah2/chickenroad/internal/domain/models"
	"github.com/mamadbah2/chickenroad/internal/farm"
	"github.com/mamadbah2/chickenroad/internal/scheduler"
	"github.com/mamadbah2/chickenroad/internal/server/handlers"
	"github.com/mamadbah2/chickenroad/internal/server/router"
	reportingsvc "github.com/mamadbah2/chickenroad/internal/service/reporting"
	"github.com/mamadbah2/chickenroad/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store := farm.NewStore(
		farm.WithEconomy(cfg.Economy),
		farm.WithLogger(baseLogger.Named("farm")),
	)

	noticeLogger := baseLogger.Named("farm.notices")
	var (
		noticeMu   sync.Mutex
		lastNotice *models.DeathNotice
	)
	store.Subscribe(func(snap models.FarmSnapshot) {
		noticeMu.Lock()
		defer noticeMu.Unlock()
		if snap.DeathNotice != nil && (lastNotice == nil || lastNotice.ChickenID != snap.DeathNotice.ChickenID) {
			noticeLogger.Warn("death notice awaiting confirmation",
				zap.String("chicken_id", snap.DeathNotice.ChickenID.String()),
				zap.String("name", snap.DeathNotice.Name))
		}
		lastNotice = snap.DeathNotice
	})

	if name := cfg.Farm.FirstChickenName; name != "" {
		if _, err := store.CreateFirstChicken(name); err != nil {
			baseLogger.Fatal("failed to hatch first chicken", zap.Error(err))
		}
	}

	reportingSvc := reportingsvc.NewService(store, baseLogger.Named("svc.reporting"))
	farmHandler := handlers.NewFarmHandler(store, reportingSvc, baseLogger.Named("handlers.farm"))
	engine := router.New(farmHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, store, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
