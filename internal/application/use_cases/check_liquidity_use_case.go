package use_cases

import (
	"context"
	"log"
	"strings"

	"payoutd/internal/application/dto"
	portsin "payoutd/internal/application/ports/in"
	"payoutd/internal/application/strategies/liquidity"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type checkLiquidityUseCase struct {
	strategies *liquidity.Facade
	logger     *log.Logger
}

func NewCheckLiquidityUseCase(strategies *liquidity.Facade, logger *log.Logger) portsin.CheckLiquidityUseCase {
	return &checkLiquidityUseCase{strategies: strategies, logger: logger}
}

func (u *checkLiquidityUseCase) Execute(
	ctx context.Context,
	command dto.CheckLiquidityCommand,
) (dto.CheckLiquidityOutput, *apperrors.AppError) {
	if u.strategies == nil {
		return dto.CheckLiquidityOutput{}, apperrors.NewInternal(
			"liquidity_strategy_facade_missing",
			"liquidity strategy facade is required",
			nil,
		)
	}
	request := command.Request
	if strings.TrimSpace(request.CorrelationID) == "" {
		return dto.CheckLiquidityOutput{}, apperrors.NewValidation(
			"liquidity_correlation_id_invalid",
			"liquidity check correlation id is required",
			nil,
		)
	}
	if !request.RequestedAmount.IsPositive() {
		return dto.CheckLiquidityOutput{}, apperrors.NewValidation(
			"liquidity_requested_amount_invalid",
			"liquidity requested amount must be greater than zero",
			map[string]any{
				"correlation_id": request.CorrelationID,
				"amount":         request.RequestedAmount.String(),
			},
		)
	}

	strategy, appErr := u.strategies.ByAsset(request.TargetAsset)
	if appErr != nil {
		return dto.CheckLiquidityOutput{}, appErr
	}

	result, appErr := strategy.CheckLiquidity(ctx, request)
	if appErr != nil {
		return dto.CheckLiquidityOutput{}, appErr
	}

	logfTo(u.logger, "liquidity check finished correlation_id=%s asset=%s strategy=%s requested=%s available=%s sufficient=%t",
		request.CorrelationID, request.TargetAsset.UniqueName(), strategy.Alias(),
		request.RequestedAmount, result.AvailableAmount, result.Sufficient)

	return dto.CheckLiquidityOutput{Result: result}, nil
}
