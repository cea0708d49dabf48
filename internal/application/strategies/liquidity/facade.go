package liquidity

import (
	"fmt"

	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

// Facade is the liquidity strategy registry, built once at startup from the
// full enumerated strategy set and read-only afterwards. Construction panics
// when the registered map and the alias enumeration disagree.
type Facade struct {
	strategies map[valueobjects.LiquidityStrategyAlias]Strategy
}

func NewFacade(strategies ...Strategy) *Facade {
	registered := make(map[valueobjects.LiquidityStrategyAlias]Strategy, len(strategies))
	for _, strategy := range strategies {
		if strategy == nil {
			panic("liquidity facade: nil strategy registered")
		}
		alias := strategy.Alias()
		if _, exists := registered[alias]; exists {
			panic(fmt.Sprintf("liquidity facade: duplicate strategy for alias %s", alias))
		}
		registered[alias] = strategy
	}

	aliases := valueobjects.AllLiquidityStrategyAliases()
	if len(registered) != len(aliases) {
		panic(fmt.Sprintf(
			"liquidity facade: %d strategies registered, %d aliases enumerated",
			len(registered),
			len(aliases),
		))
	}
	for _, alias := range aliases {
		if _, exists := registered[alias]; !exists {
			panic(fmt.Sprintf("liquidity facade: no strategy registered for alias %s", alias))
		}
	}

	return &Facade{strategies: registered}
}

func (f *Facade) ByAlias(alias valueobjects.LiquidityStrategyAlias) (Strategy, *apperrors.AppError) {
	strategy, exists := f.strategies[alias]
	if !exists {
		return nil, apperrors.NewUnknownAlias(
			"liquidity_strategy_alias_unknown",
			"no liquidity strategy found: alias="+alias.String(),
			map[string]any{"alias": alias.String()},
		)
	}

	return strategy, nil
}

func (f *Facade) ByAsset(asset entities.Asset) (Strategy, *apperrors.AppError) {
	alias, appErr := ResolveAlias(asset)
	if appErr != nil {
		return nil, appErr
	}

	return f.ByAlias(alias)
}
