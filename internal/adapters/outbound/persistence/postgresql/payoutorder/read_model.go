package payoutorder

import (
	"context"
	"database/sql"

	"payoutd/internal/application/dto"
	portsout "payoutd/internal/application/ports/out"
	apperrors "payoutd/internal/shared_kernel/errors"
)

// ReadModel serves the operator overview without going through the entity
// mapping; it only aggregates.
type ReadModel struct {
	db *sql.DB
}

var _ portsout.PayoutOverviewReadModel = (*ReadModel)(nil)

func NewReadModel(db *sql.DB) *ReadModel {
	return &ReadModel{db: db}
}

func (r *ReadModel) Overview(ctx context.Context, query dto.PayoutOverviewQuery) ([]dto.PayoutOverviewRow, *apperrors.AppError) {
	const baseQuery = `
SELECT
  payout_context,
  status,
  COUNT(*),
  COALESCE(EXTRACT(EPOCH FROM (now() - MIN(created_at)))::bigint, 0)
FROM app.payout_orders
WHERE ($1 = '' OR payout_context = $1)
GROUP BY payout_context, status
ORDER BY payout_context, status
`

	rows, err := r.db.QueryContext(ctx, baseQuery, query.Context)
	if err != nil {
		return nil, apperrors.NewInternal(
			"payout_overview_query_failed",
			"failed to query payout overview",
			map[string]any{"error": err.Error(), "context": query.Context},
		)
	}
	defer rows.Close()

	result := make([]dto.PayoutOverviewRow, 0)
	for rows.Next() {
		var row dto.PayoutOverviewRow
		if err := rows.Scan(&row.Context, &row.Status, &row.OrderCount, &row.OldestAgeSec); err != nil {
			return nil, apperrors.NewInternal(
				"payout_overview_scan_failed",
				"failed to scan payout overview row",
				map[string]any{"error": err.Error()},
			)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"payout_overview_query_failed",
			"failed to iterate payout overview rows",
			map[string]any{"error": err.Error()},
		)
	}

	return result, nil
}
