package use_cases

import (
	"context"

	"payoutd/internal/application/dto"
	portsin "payoutd/internal/application/ports/in"
	"payoutd/internal/application/strategies/payout"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type estimatePayoutFeeUseCase struct {
	strategies *payout.Facade
}

func NewEstimatePayoutFeeUseCase(strategies *payout.Facade) portsin.EstimatePayoutFeeUseCase {
	return &estimatePayoutFeeUseCase{strategies: strategies}
}

func (u *estimatePayoutFeeUseCase) Execute(
	ctx context.Context,
	command dto.EstimatePayoutFeeQuery,
) (dto.EstimatePayoutFeeOutput, *apperrors.AppError) {
	if u.strategies == nil {
		return dto.EstimatePayoutFeeOutput{}, apperrors.NewInternal(
			"payout_strategy_facade_missing",
			"payout strategy facade is required",
			nil,
		)
	}

	strategy, appErr := u.strategies.ByAsset(command.Asset)
	if appErr != nil {
		return dto.EstimatePayoutFeeOutput{}, appErr
	}

	fee, appErr := strategy.EstimateFee(ctx, command.Asset)
	if appErr != nil {
		return dto.EstimatePayoutFeeOutput{}, appErr
	}

	return dto.EstimatePayoutFeeOutput{Fee: fee}, nil
}
