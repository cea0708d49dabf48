package payout

import (
	"fmt"

	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

// Facade is the payout strategy registry. It is built once at startup from
// the full enumerated strategy set and is read-only afterwards; construction
// panics when the registered map and the alias enumeration disagree, which
// is a structural defect, not a runtime error path.
type Facade struct {
	strategies map[valueobjects.PayoutStrategyAlias]Strategy
}

func NewFacade(strategies ...Strategy) *Facade {
	registered := make(map[valueobjects.PayoutStrategyAlias]Strategy, len(strategies))
	for _, strategy := range strategies {
		if strategy == nil {
			panic("payout facade: nil strategy registered")
		}
		alias := strategy.Alias()
		if _, exists := registered[alias]; exists {
			panic(fmt.Sprintf("payout facade: duplicate strategy for alias %s", alias))
		}
		registered[alias] = strategy
	}

	aliases := valueobjects.AllPayoutStrategyAliases()
	if len(registered) != len(aliases) {
		panic(fmt.Sprintf(
			"payout facade: %d strategies registered, %d aliases enumerated",
			len(registered),
			len(aliases),
		))
	}
	for _, alias := range aliases {
		if _, exists := registered[alias]; !exists {
			panic(fmt.Sprintf("payout facade: no strategy registered for alias %s", alias))
		}
	}

	return &Facade{strategies: registered}
}

func (f *Facade) ByAlias(alias valueobjects.PayoutStrategyAlias) (Strategy, *apperrors.AppError) {
	strategy, exists := f.strategies[alias]
	if !exists {
		return nil, apperrors.NewUnknownAlias(
			"payout_strategy_alias_unknown",
			"no payout strategy found: alias="+alias.String(),
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
