package config

import (
	"encoding/json"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort                     = "8080"
	defaultOpenAPISpec              = "api/openapi.yaml"
	defaultShutdownTimeout          = 10 * time.Second
	defaultDBReadinessTimeout       = 30 * time.Second
	defaultDBReadinessRetryInterval = 2 * time.Second
	defaultMigrationsPath           = "internal/adapters/outbound/persistence/postgresql/migrations"

	defaultChainRPCTimeout     = 10 * time.Second
	defaultChainRPCRPS         = 10.0
	defaultChainRPCMaxAttempts = 3

	defaultPayoutContext     = "default"
	defaultDispatchInterval  = 30 * time.Second
	defaultConfirmInterval   = time.Minute
	defaultPayoutBatchSize   = 100
	defaultLeaseDuration     = 5 * time.Minute
	defaultConfirmStaleAfter = 24 * time.Hour
)

const (
	ethereumTokensEnv = "ETHEREUM_TOKENS_JSON"
	bscTokensEnv      = "BSC_TOKENS_JSON"
)

type ConfigError struct {
	Code     string
	Message  string
	Metadata map[string]string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

// TokenConfig describes one deployed token on an account chain.
type TokenConfig struct {
	Contract string `json:"contract"`
	Decimals int32  `json:"decimals"`
}

type EvmChainConfig struct {
	RPCURL      string
	FromAddress string
	Tokens      map[string]TokenConfig
}

type Config struct {
	Port            string
	OpenAPISpecPath string
	ShutdownTimeout time.Duration

	DatabaseURL              string
	DatabaseTarget           string
	DBReadinessTimeout       time.Duration
	DBReadinessRetryInterval time.Duration
	MigrationsPath           string

	BitcoinRPCURL               string
	Ethereum                    EvmChainConfig
	Bsc                         EvmChainConfig
	TokenchainRPCURL            string
	TokenchainWalletAddress     string
	TokenchainLightWalletPrefix string
	ChainRPCTimeout             time.Duration
	ChainRPCRequestsPerSecond   float64
	ChainRPCMaxAttempts         int

	AlertWebhookURL        string
	AlertWebhookHMACSecret string

	PayoutContext     string
	WorkerID          string
	DispatchEnabled   bool
	ConfirmEnabled    bool
	DispatchInterval  time.Duration
	ConfirmInterval   time.Duration
	PayoutBatchSize   int
	LeaseDuration     time.Duration
	ConfirmStaleAfter time.Duration
}

func LoadConfig() (Config, *ConfigError) {
	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return Config{}, &ConfigError{
			Code:    "config_database_url_required",
			Message: "DATABASE_URL is required",
		}
	}

	databaseTarget, parseErr := parseDatabaseTarget(databaseURL)
	if parseErr != nil {
		return Config{}, parseErr
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	openAPISpecPath := os.Getenv("OPENAPI_SPEC_PATH")
	if openAPISpecPath == "" {
		openAPISpecPath = defaultOpenAPISpec
	}

	ethereumTokens, tokenErr := parseTokens(ethereumTokensEnv)
	if tokenErr != nil {
		return Config{}, tokenErr
	}
	bscTokens, tokenErr := parseTokens(bscTokensEnv)
	if tokenErr != nil {
		return Config{}, tokenErr
	}

	dispatchInterval, durationErr := parseDurationEnv("PAYOUT_DISPATCH_INTERVAL", defaultDispatchInterval)
	if durationErr != nil {
		return Config{}, durationErr
	}
	confirmInterval, durationErr := parseDurationEnv("PAYOUT_CONFIRM_INTERVAL", defaultConfirmInterval)
	if durationErr != nil {
		return Config{}, durationErr
	}
	leaseDuration, durationErr := parseDurationEnv("PAYOUT_LEASE_DURATION", defaultLeaseDuration)
	if durationErr != nil {
		return Config{}, durationErr
	}
	staleAfter, durationErr := parseDurationEnv("PAYOUT_CONFIRMATION_STALE_AFTER", defaultConfirmStaleAfter)
	if durationErr != nil {
		return Config{}, durationErr
	}
	chainRPCTimeout, durationErr := parseDurationEnv("CHAIN_RPC_TIMEOUT", defaultChainRPCTimeout)
	if durationErr != nil {
		return Config{}, durationErr
	}

	batchSize := defaultPayoutBatchSize
	if raw := strings.TrimSpace(os.Getenv("PAYOUT_BATCH_SIZE")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, &ConfigError{
				Code:    "config_payout_batch_size_invalid",
				Message: "PAYOUT_BATCH_SIZE must be a positive integer",
			}
		}
		batchSize = parsed
	}

	requestsPerSecond := defaultChainRPCRPS
	if raw := strings.TrimSpace(os.Getenv("CHAIN_RPC_RPS")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return Config{}, &ConfigError{
				Code:    "config_chain_rpc_rps_invalid",
				Message: "CHAIN_RPC_RPS must be a positive number",
			}
		}
		requestsPerSecond = parsed
	}

	maxAttempts := defaultChainRPCMaxAttempts
	if raw := strings.TrimSpace(os.Getenv("CHAIN_RPC_MAX_ATTEMPTS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, &ConfigError{
				Code:    "config_chain_rpc_max_attempts_invalid",
				Message: "CHAIN_RPC_MAX_ATTEMPTS must be a positive integer",
			}
		}
		maxAttempts = parsed
	}

	payoutContext := strings.TrimSpace(os.Getenv("PAYOUT_CONTEXT"))
	if payoutContext == "" {
		payoutContext = defaultPayoutContext
	}

	dispatchEnabled, boolErr := parseBoolEnv("PAYOUT_DISPATCH_ENABLED", true)
	if boolErr != nil {
		return Config{}, boolErr
	}
	confirmEnabled, boolErr := parseBoolEnv("PAYOUT_CONFIRM_ENABLED", true)
	if boolErr != nil {
		return Config{}, boolErr
	}

	workerID := strings.TrimSpace(os.Getenv("WORKER_ID"))
	if workerID == "" {
		hostname, err := os.Hostname()
		if err != nil || hostname == "" {
			hostname = "payoutd"
		}
		workerID = hostname
	}

	return Config{
		Port:            port,
		OpenAPISpecPath: openAPISpecPath,
		ShutdownTimeout: defaultShutdownTimeout,

		DatabaseURL:              databaseURL,
		DatabaseTarget:           databaseTarget,
		DBReadinessTimeout:       defaultDBReadinessTimeout,
		DBReadinessRetryInterval: defaultDBReadinessRetryInterval,
		MigrationsPath:           defaultMigrationsPath,

		BitcoinRPCURL: strings.TrimSpace(os.Getenv("BITCOIN_RPC_URL")),
		Ethereum: EvmChainConfig{
			RPCURL:      strings.TrimSpace(os.Getenv("ETHEREUM_RPC_URL")),
			FromAddress: strings.TrimSpace(os.Getenv("ETHEREUM_FROM_ADDRESS")),
			Tokens:      ethereumTokens,
		},
		Bsc: EvmChainConfig{
			RPCURL:      strings.TrimSpace(os.Getenv("BSC_RPC_URL")),
			FromAddress: strings.TrimSpace(os.Getenv("BSC_FROM_ADDRESS")),
			Tokens:      bscTokens,
		},
		TokenchainRPCURL:            strings.TrimSpace(os.Getenv("TOKENCHAIN_RPC_URL")),
		TokenchainWalletAddress:     strings.TrimSpace(os.Getenv("TOKENCHAIN_WALLET_ADDRESS")),
		TokenchainLightWalletPrefix: strings.TrimSpace(os.Getenv("TOKENCHAIN_LIGHT_WALLET_PREFIX")),
		ChainRPCTimeout:             chainRPCTimeout,
		ChainRPCRequestsPerSecond:   requestsPerSecond,
		ChainRPCMaxAttempts:         maxAttempts,

		AlertWebhookURL:        strings.TrimSpace(os.Getenv("ALERT_WEBHOOK_URL")),
		AlertWebhookHMACSecret: strings.TrimSpace(os.Getenv("ALERT_WEBHOOK_HMAC_SECRET")),

		PayoutContext:     payoutContext,
		WorkerID:          workerID,
		DispatchEnabled:   dispatchEnabled,
		ConfirmEnabled:    confirmEnabled,
		DispatchInterval:  dispatchInterval,
		ConfirmInterval:   confirmInterval,
		PayoutBatchSize:   batchSize,
		LeaseDuration:     leaseDuration,
		ConfirmStaleAfter: staleAfter,
	}, nil
}

func (c Config) Address() string {
	return ":" + c.Port
}

func parseDatabaseTarget(databaseURL string) (string, *ConfigError) {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return "", &ConfigError{
			Code:    "config_database_url_invalid",
			Message: "DATABASE_URL is invalid",
		}
	}

	switch parsed.Scheme {
	case "postgres", "postgresql":
	default:
		return "", &ConfigError{
			Code:    "config_database_url_scheme_invalid",
			Message: "DATABASE_URL must use postgres or postgresql scheme",
		}
	}

	if parsed.Host == "" {
		return "", &ConfigError{
			Code:    "config_database_url_host_missing",
			Message: "DATABASE_URL host is required",
		}
	}

	databaseName := strings.TrimPrefix(parsed.Path, "/")
	if databaseName == "" {
		return "", &ConfigError{
			Code:    "config_database_name_missing",
			Message: "DATABASE_URL database name is required",
		}
	}

	return parsed.Host + "/" + databaseName, nil
}

func parseTokens(envName string) (map[string]TokenConfig, *ConfigError) {
	raw := strings.TrimSpace(os.Getenv(envName))
	if raw == "" {
		return map[string]TokenConfig{}, nil
	}

	decoded := map[string]TokenConfig{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, &ConfigError{
			Code:     "config_tokens_json_invalid",
			Message:  envName + " must be a JSON object of token configs",
			Metadata: map[string]string{"error": err.Error()},
		}
	}

	for name, token := range decoded {
		if strings.TrimSpace(token.Contract) == "" {
			return nil, &ConfigError{
				Code:     "config_token_contract_missing",
				Message:  envName + " entries need a contract address",
				Metadata: map[string]string{"token": name},
			}
		}
		if token.Decimals < 0 {
			return nil, &ConfigError{
				Code:     "config_token_decimals_invalid",
				Message:  envName + " entries need non-negative decimals",
				Metadata: map[string]string{"token": name},
			}
		}
	}

	return decoded, nil
}

func parseBoolEnv(envName string, fallback bool) (bool, *ConfigError) {
	raw := strings.TrimSpace(os.Getenv(envName))
	if raw == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ConfigError{
			Code:    "config_bool_invalid",
			Message: envName + " must be a boolean",
		}
	}

	return parsed, nil
}

func parseDurationEnv(envName string, fallback time.Duration) (time.Duration, *ConfigError) {
	raw := strings.TrimSpace(os.Getenv(envName))
	if raw == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return 0, &ConfigError{
			Code:    "config_duration_invalid",
			Message: envName + " must be a positive duration",
		}
	}

	return parsed, nil
}
