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
	if !cfg.DispatchEnabled {
		logger.Printf("dispatcher config error code=config_dispatcher_disabled message=PAYOUT_DISPATCH_ENABLED must be true for dispatcher runtime")
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

	logger.Printf("dispatcher persistence initialization starting database_target=%s", cfg.DatabaseTarget)
	persistenceErr := container.InitializePersistenceUseCase.Execute(ctx, dto.InitializePersistenceCommand{
		ReadinessTimeout:       cfg.DBReadinessTimeout,
		ReadinessRetryInterval: cfg.DBReadinessRetryInterval,
	})
	if persistenceErr != nil {
		logger.Printf(
			"dispatcher persistence initialization failed code=%s message=%s metadata=%v",
			persistenceErr.Code,
			persistenceErr.Message,
			persistenceErr.Details,
		)
		os.Exit(1)
	}
	logger.Printf("dispatcher persistence initialization completed database_target=%s", cfg.DatabaseTarget)

	if container.DispatchWorker == nil || !container.DispatchWorker.Enabled() {
		logger.Printf("dispatcher startup failed code=dispatch_worker_not_enabled message=dispatch worker is not enabled")
		os.Exit(1)
	}

	container.DispatchWorker.Start(ctx)
	logger.Printf("dispatcher stopped")
}
