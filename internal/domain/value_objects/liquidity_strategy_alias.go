package valueobjects

import apperrors "payoutd/internal/shared_kernel/errors"

// LiquidityStrategyAlias keys the check-liquidity strategy family. It is a
// separate enumeration from the payout aliases: the token-ledger chain has a
// pool-pair strategy and a chain-wide default instead of coin/token variants.
type LiquidityStrategyAlias string

const (
	LiquidityAliasBitcoin            LiquidityStrategyAlias = "bitcoin"
	LiquidityAliasEthereumCoin       LiquidityStrategyAlias = "ethereum_coin"
	LiquidityAliasEthereumToken      LiquidityStrategyAlias = "ethereum_token"
	LiquidityAliasBscCoin            LiquidityStrategyAlias = "bsc_coin"
	LiquidityAliasBscToken           LiquidityStrategyAlias = "bsc_token"
	LiquidityAliasTokenchainPoolPair LiquidityStrategyAlias = "tokenchain_pool_pair"
	LiquidityAliasTokenchainDefault  LiquidityStrategyAlias = "tokenchain_default"
)

func AllLiquidityStrategyAliases() []LiquidityStrategyAlias {
	return []LiquidityStrategyAlias{
		LiquidityAliasBitcoin,
		LiquidityAliasEthereumCoin,
		LiquidityAliasEthereumToken,
		LiquidityAliasBscCoin,
		LiquidityAliasBscToken,
		LiquidityAliasTokenchainPoolPair,
		LiquidityAliasTokenchainDefault,
	}
}

func ParseLiquidityStrategyAlias(raw string) (LiquidityStrategyAlias, *apperrors.AppError) {
	for _, alias := range AllLiquidityStrategyAliases() {
		if raw == string(alias) {
			return alias, nil
		}
	}

	return "", apperrors.NewUnknownAlias(
		"liquidity_strategy_alias_unknown",
		"no liquidity strategy found: alias="+raw,
		map[string]any{"alias": raw},
	)
}

func (a LiquidityStrategyAlias) String() string {
	return string(a)
}
