package out

import (
	"context"
	"time"

	apperrors "payoutd/internal/shared_kernel/errors"
)

// TaskLeaseStore provides mutual exclusion for scheduled runs keyed by task
// identity. A lease that is not released expires on its own, so a crashed
// run never blocks future runs permanently.
type TaskLeaseStore interface {
	Acquire(ctx context.Context, task string, holder string, until time.Time) (bool, *apperrors.AppError)
	Release(ctx context.Context, task string, holder string) *apperrors.AppError
}
