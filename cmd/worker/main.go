// The worker binary runs the expired-subscription transition loop. It shares
// the server's configuration and database but is deployed as its own process
// so passes keep running while the API restarts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/planwise-io/planwise/internal/application/subscription/usecases"
	"github.com/planwise-io/planwise/internal/infrastructure/config"
	"github.com/planwise-io/planwise/internal/infrastructure/database"
	"github.com/planwise-io/planwise/internal/infrastructure/repository"
	"github.com/planwise-io/planwise/internal/shared/clock"
	"github.com/planwise-io/planwise/internal/shared/db"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

const lastRunKey = "transition_worker.last_run"

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting transition worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	subscriptionRepo := repository.NewSubscriptionRepository(database.Get(), log)
	planRepo := repository.NewPlanRepository(database.Get(), log)
	cycleRepo := repository.NewBillingCycleRepository(database.Get(), log)
	systemConfigRepo := repository.NewSystemConfigRepository(database.Get(), log)

	clk := clock.NewReal()
	txManager := db.NewTransactionManager(database.Get())

	transitionUC := usecases.NewTransitionExpiredUseCase(
		subscriptionRepo, planRepo, cycleRepo, txManager, clk, log,
	)

	interval := time.Duration(cfg.Worker.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runPass(ctx, transitionUC, systemConfigRepo, cfg.Worker.BatchSize, clk, log)

	log.Infow("transition worker started", "interval", interval, "batch_size", cfg.Worker.BatchSize)

	for {
		select {
		case <-ticker.C:
			runPass(ctx, transitionUC, systemConfigRepo, cfg.Worker.BatchSize, clk, log)

		case sig := <-sigChan:
			log.Infow("received signal, shutting down", "signal", sig)
			return
		}
	}
}

func runPass(
	ctx context.Context,
	transitionUC *usecases.TransitionExpiredUseCase,
	systemConfigRepo *repository.SystemConfigRepository,
	batchSize int,
	clk clock.Clock,
	log logger.Interface,
) {
	report, err := transitionUC.Execute(ctx, usecases.TransitionExpiredCommand{BatchSize: batchSize})
	if err != nil {
		log.Errorw("transition pass failed", "error", err)
		return
	}

	log.Infow("transition pass completed",
		"processed", report.Processed,
		"transitioned", report.Transitioned,
		"archived", report.Archived,
		"errors", len(report.Errors),
	)
	for _, e := range report.Errors {
		log.Warnw("subscription transition failed", "subscription_key", e.SubscriptionKey, "error", e.Message)
	}

	if err := systemConfigRepo.SetValue(ctx, lastRunKey, clk.Now().Format(time.RFC3339)); err != nil {
		log.Warnw("failed to record last run timestamp", "error", err)
	}
}
