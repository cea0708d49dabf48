package use_cases

import (
	"context"

	"payoutd/internal/application/dto"
	portsin "payoutd/internal/application/ports/in"
	portsout "payoutd/internal/application/ports/out"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type getPayoutOverviewUseCase struct {
	readModel portsout.PayoutOverviewReadModel
}

func NewGetPayoutOverviewUseCase(readModel portsout.PayoutOverviewReadModel) portsin.GetPayoutOverviewUseCase {
	return &getPayoutOverviewUseCase{readModel: readModel}
}

func (u *getPayoutOverviewUseCase) Execute(
	ctx context.Context,
	command dto.PayoutOverviewQuery,
) (dto.PayoutOverviewOutput, *apperrors.AppError) {
	if u.readModel == nil {
		return dto.PayoutOverviewOutput{}, apperrors.NewInternal(
			"payout_overview_read_model_missing",
			"payout overview read model is required",
			nil,
		)
	}

	rows, appErr := u.readModel.Overview(ctx, command)
	if appErr != nil {
		return dto.PayoutOverviewOutput{}, appErr
	}

	return dto.PayoutOverviewOutput{Rows: rows}, nil
}
