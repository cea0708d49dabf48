package use_cases

import (
	"context"

	"payoutd/internal/application/dto"
	portsin "payoutd/internal/application/ports/in"
	"payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type getHealthUseCase struct{}

func NewGetHealthUseCase() portsin.GetHealthUseCase {
	return &getHealthUseCase{}
}

// Execute reports liveness only. Database and chain node reachability are
// surfaced by the workers and persistence bootstrap, not by this probe.
func (u *getHealthUseCase) Execute(_ context.Context, _ dto.GetHealthCommand) (dto.HealthOutput, *apperrors.AppError) {
	return dto.HealthOutput{
		Status: valueobjects.NewHealthyStatus().String(),
	}, nil
}
