package di

import (
	"database/sql"
	"log"
	"net/http"

	"payoutd/internal/adapters/inbound/http/controllers"
	httpRouter "payoutd/internal/adapters/inbound/http/router"
	"payoutd/internal/adapters/outbound/chain"
	"payoutd/internal/adapters/outbound/docs"
	notificationhttp "payoutd/internal/adapters/outbound/notification/http"
	"payoutd/internal/adapters/outbound/persistence/postgresql"
	postgresqlassetcatalog "payoutd/internal/adapters/outbound/persistence/postgresql/assetcatalog"
	postgresqlpayoutorder "payoutd/internal/adapters/outbound/persistence/postgresql/payoutorder"
	postgresqlshared "payoutd/internal/adapters/outbound/persistence/postgresql/shared"
	postgresqltasklease "payoutd/internal/adapters/outbound/persistence/postgresql/tasklease"
	portsin "payoutd/internal/application/ports/in"
	"payoutd/internal/application/strategies/liquidity"
	strategiespayout "payoutd/internal/application/strategies/payout"
	"payoutd/internal/application/use_cases"
	valueobjects "payoutd/internal/domain/value_objects"
	"payoutd/internal/infrastructure/config"
	"payoutd/internal/infrastructure/httpserver"
	infrapayout "payoutd/internal/infrastructure/payout"
)

type Container struct {
	Database                     *sql.DB
	Server                       *httpserver.Server
	InitializePersistenceUseCase portsin.InitializePersistenceUseCase
	DispatchWorker               *infrapayout.DispatchWorker
	ConfirmWorker                *infrapayout.ConfirmWorker
}

func Build(cfg config.Config, logger *log.Logger) Container {
	httpClient := &http.Client{Timeout: cfg.ChainRPCTimeout}

	bitcoinGateway := chain.NewBitcoinGateway(httpClient, chain.BitcoinGatewayConfig{
		RPCURL:            cfg.BitcoinRPCURL,
		HTTPTimeout:       cfg.ChainRPCTimeout,
		RequestsPerSecond: cfg.ChainRPCRequestsPerSecond,
		MaxAttempts:       cfg.ChainRPCMaxAttempts,
	})
	ethereumGateway := chain.NewEvmGateway(httpClient, evmGatewayConfig(cfg, cfg.Ethereum))
	bscGateway := chain.NewEvmGateway(httpClient, evmGatewayConfig(cfg, cfg.Bsc))
	tokenLedgerGateway := chain.NewTokenLedgerGateway(httpClient, chain.TokenLedgerGatewayConfig{
		RPCURL:            cfg.TokenchainRPCURL,
		WalletAddress:     cfg.TokenchainWalletAddress,
		LightWalletPrefix: cfg.TokenchainLightWalletPrefix,
		HTTPTimeout:       cfg.ChainRPCTimeout,
		RequestsPerSecond: cfg.ChainRPCRequestsPerSecond,
		MaxAttempts:       cfg.ChainRPCMaxAttempts,
	})
	notificationGateway := notificationhttp.NewGateway(notificationhttp.Config{
		WebhookURL: cfg.AlertWebhookURL,
		HMACSecret: cfg.AlertWebhookHMACSecret,
	}, logger)

	persistenceGateway := postgresql.NewPersistenceBootstrapGateway(
		cfg.DatabaseURL,
		cfg.DatabaseTarget,
		cfg.MigrationsPath,
		logger,
	)
	initializePersistenceUseCase := use_cases.NewInitializePersistenceUseCase(persistenceGateway)
	databasePool := postgresqlshared.NewDatabasePool(cfg.DatabaseURL, logger)

	assetCatalogReadModel := postgresqlassetcatalog.NewReadModel(databasePool)
	payoutOrderRepository := postgresqlpayoutorder.NewRepository(databasePool, logger)
	payoutOverviewReadModel := postgresqlpayoutorder.NewReadModel(databasePool)
	taskLeaseStore := postgresqltasklease.NewStore(databasePool, logger)

	payoutFacade := strategiespayout.NewFacade(
		strategiespayout.NewBitcoinStrategy(bitcoinGateway, payoutOrderRepository, assetCatalogReadModel, notificationGateway, logger),
		strategiespayout.NewEvmCoinStrategy(valueobjects.PayoutAliasEthereumCoin, valueobjects.BlockchainEthereum, ethereumGateway, payoutOrderRepository, assetCatalogReadModel, logger),
		strategiespayout.NewEvmTokenStrategy(valueobjects.PayoutAliasEthereumToken, valueobjects.BlockchainEthereum, ethereumGateway, payoutOrderRepository, assetCatalogReadModel, logger),
		strategiespayout.NewEvmCoinStrategy(valueobjects.PayoutAliasBscCoin, valueobjects.BlockchainBsc, bscGateway, payoutOrderRepository, assetCatalogReadModel, logger),
		strategiespayout.NewEvmTokenStrategy(valueobjects.PayoutAliasBscToken, valueobjects.BlockchainBsc, bscGateway, payoutOrderRepository, assetCatalogReadModel, logger),
		strategiespayout.NewTokenchainTokenStrategy(tokenLedgerGateway, tokenLedgerGateway, payoutOrderRepository, assetCatalogReadModel, notificationGateway, logger),
		strategiespayout.NewTokenchainCoinStrategy(assetCatalogReadModel),
	)
	liquidityFacade := liquidity.NewFacade(
		liquidity.NewBitcoinStrategy(bitcoinGateway, assetCatalogReadModel, logger),
		liquidity.NewEvmCoinStrategy(valueobjects.LiquidityAliasEthereumCoin, valueobjects.BlockchainEthereum, ethereumGateway, assetCatalogReadModel, logger),
		liquidity.NewEvmTokenStrategy(valueobjects.LiquidityAliasEthereumToken, valueobjects.BlockchainEthereum, ethereumGateway, assetCatalogReadModel, logger),
		liquidity.NewEvmCoinStrategy(valueobjects.LiquidityAliasBscCoin, valueobjects.BlockchainBsc, bscGateway, assetCatalogReadModel, logger),
		liquidity.NewEvmTokenStrategy(valueobjects.LiquidityAliasBscToken, valueobjects.BlockchainBsc, bscGateway, assetCatalogReadModel, logger),
		liquidity.NewTokenchainPoolPairStrategy(tokenLedgerGateway, assetCatalogReadModel, logger),
		liquidity.NewTokenchainDefaultStrategy(tokenLedgerGateway, assetCatalogReadModel, logger),
	)

	healthUseCase := use_cases.NewGetHealthUseCase()
	openAPIReadModel := docs.NewFileOpenAPISpecReadModel(cfg.OpenAPISpecPath)
	openAPIUseCase := use_cases.NewGetOpenAPISpecUseCase(openAPIReadModel)
	estimateFeeUseCase := use_cases.NewEstimatePayoutFeeUseCase(payoutFacade)
	overviewUseCase := use_cases.NewGetPayoutOverviewUseCase(payoutOverviewReadModel)
	checkLiquidityUseCase := use_cases.NewCheckLiquidityUseCase(liquidityFacade, logger)
	dispatchUseCase := use_cases.NewDispatchPayoutsUseCase(payoutFacade, payoutOrderRepository, taskLeaseStore, logger)
	confirmUseCase := use_cases.NewConfirmPayoutCompletionsUseCase(
		payoutFacade,
		payoutOrderRepository,
		taskLeaseStore,
		notificationGateway,
		logger,
	)

	dispatchWorker := infrapayout.NewDispatchWorker(
		cfg.DispatchEnabled,
		cfg.DispatchInterval,
		cfg.PayoutContext,
		cfg.PayoutBatchSize,
		cfg.WorkerID,
		cfg.LeaseDuration,
		dispatchUseCase,
		logger,
	)
	confirmWorker := infrapayout.NewConfirmWorker(
		cfg.ConfirmEnabled,
		cfg.ConfirmInterval,
		cfg.PayoutContext,
		cfg.PayoutBatchSize,
		cfg.WorkerID,
		cfg.LeaseDuration,
		cfg.ConfirmStaleAfter,
		confirmUseCase,
		logger,
	)

	healthController := controllers.NewHealthController(healthUseCase, logger)
	swaggerController := controllers.NewSwaggerController(openAPIUseCase, logger)
	payoutsController := controllers.NewPayoutsController(estimateFeeUseCase, overviewUseCase, logger)
	liquidityController := controllers.NewLiquidityController(checkLiquidityUseCase, logger)

	router := httpRouter.New(httpRouter.Dependencies{
		HealthController:    healthController,
		SwaggerController:   swaggerController,
		PayoutsController:   payoutsController,
		LiquidityController: liquidityController,
	})

	server := httpserver.New(cfg.Address(), router, logger)

	return Container{
		Database:                     databasePool,
		Server:                       server,
		InitializePersistenceUseCase: initializePersistenceUseCase,
		DispatchWorker:               dispatchWorker,
		ConfirmWorker:                confirmWorker,
	}
}

func evmGatewayConfig(cfg config.Config, chainCfg config.EvmChainConfig) chain.EvmGatewayConfig {
	contracts := make(map[string]string, len(chainCfg.Tokens))
	decimals := make(map[string]int32, len(chainCfg.Tokens))
	for name, token := range chainCfg.Tokens {
		contracts[name] = token.Contract
		decimals[name] = token.Decimals
	}

	return chain.EvmGatewayConfig{
		RPCURL:            chainCfg.RPCURL,
		FromAddress:       chainCfg.FromAddress,
		HTTPTimeout:       cfg.ChainRPCTimeout,
		RequestsPerSecond: cfg.ChainRPCRequestsPerSecond,
		MaxAttempts:       cfg.ChainRPCMaxAttempts,
		TokenContracts:    contracts,
		TokenDecimals:     decimals,
	}
}
