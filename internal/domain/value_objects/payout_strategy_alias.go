package valueobjects

import apperrors "payoutd/internal/shared_kernel/errors"

// PayoutStrategyAlias is the stable resolution key that selects one payout
// strategy implementation. The alias set is fixed at compile time; the
// registry checks it for exhaustiveness at startup.
type PayoutStrategyAlias string

const (
	PayoutAliasBitcoin         PayoutStrategyAlias = "bitcoin"
	PayoutAliasEthereumCoin    PayoutStrategyAlias = "ethereum_coin"
	PayoutAliasEthereumToken   PayoutStrategyAlias = "ethereum_token"
	PayoutAliasBscCoin         PayoutStrategyAlias = "bsc_coin"
	PayoutAliasBscToken        PayoutStrategyAlias = "bsc_token"
	PayoutAliasTokenchainCoin  PayoutStrategyAlias = "tokenchain_coin"
	PayoutAliasTokenchainToken PayoutStrategyAlias = "tokenchain_token"
)

func AllPayoutStrategyAliases() []PayoutStrategyAlias {
	return []PayoutStrategyAlias{
		PayoutAliasBitcoin,
		PayoutAliasEthereumCoin,
		PayoutAliasEthereumToken,
		PayoutAliasBscCoin,
		PayoutAliasBscToken,
		PayoutAliasTokenchainCoin,
		PayoutAliasTokenchainToken,
	}
}

func ParsePayoutStrategyAlias(raw string) (PayoutStrategyAlias, *apperrors.AppError) {
	for _, alias := range AllPayoutStrategyAliases() {
		if raw == string(alias) {
			return alias, nil
		}
	}

	return "", apperrors.NewUnknownAlias(
		"payout_strategy_alias_unknown",
		"no payout strategy found: alias="+raw,
		map[string]any{"alias": raw},
	)
}

func (a PayoutStrategyAlias) String() string {
	return string(a)
}
