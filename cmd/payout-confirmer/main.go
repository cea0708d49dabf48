package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"payoutd/internal/application/dto"
	"payoutd/internal/infrastructure/config"
	"payoutd/internal/infrastructure/di"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)
	cfg, cfgErr := config.LoadConfig()
	if cfgErr != nil {
		logger.Printf("startup config error code=%s message=%s metadata=%v", cfgErr.Code, cfgErr.Message, cfgErr.Metadata)
		os.Exit(1)
	}
	if !cfg.ConfirmEnabled {
		logger.Printf("confirmer config error code=config_confirmer_disabled message=PAYOUT_CONFIRM_ENABLED must be true for confirmer runtime")
		os.Exit(1)
	}

	container := di.Build(cfg, logger)
	defer func() {
		if container.Database == nil {
			return
		}
		if err := container.Database.Close(); err != nil {
			logger.Printf("database close warning error=%v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Printf("confirmer persistence initialization starting database_target=%s", cfg.DatabaseTarget)
	persistenceErr := container.InitializePersistenceUseCase.Execute(ctx, dto.InitializePersistenceCommand{
		ReadinessTimeout:       cfg.DBReadinessTimeout,
		ReadinessRetryInterval: cfg.DBReadinessRetryInterval,
	})
	if persistenceErr != nil {
		logger.Printf(
			"confirmer persistence initialization failed code=%s message=%s metadata=%v",
			persistenceErr.Code,
			persistenceErr.Message,
			persistenceErr.Details,
		)
		os.Exit(1)
	}
	logger.Printf("confirmer persistence initialization completed database_target=%s", cfg.DatabaseTarget)

	if container.ConfirmWorker == nil || !container.ConfirmWorker.Enabled() {
		logger.Printf("confirmer startup failed code=confirm_worker_not_enabled message=confirm worker is not enabled")
		os.Exit(1)
	}

	container.ConfirmWorker.Start(ctx)
	logger.Printf("confirmer stopped")
}
