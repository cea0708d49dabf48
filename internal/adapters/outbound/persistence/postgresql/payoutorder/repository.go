package payoutorder

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log"
	"time"

	portsout "payoutd/internal/application/ports/out"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const checkViolationCode = "23514"

type Repository struct {
	db     *sql.DB
	logger *log.Logger
}

var _ portsout.PayoutOrderRepository = (*Repository)(nil)

func NewRepository(db *sql.DB, logger *log.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Save upserts the full order row. Orders are keyed by caller-supplied id, so
// a repeated submission of the same order is a plain overwrite, not an error.
func (r *Repository) Save(ctx context.Context, order *entities.PayoutOrder) *apperrors.AppError {
	const query = `
INSERT INTO app.payout_orders (
  id,
  payout_context,
  asset_id,
  asset_name,
  asset_blockchain,
  asset_type,
  asset_category,
  destination_address,
  amount,
  status,
  payout_tx_id,
  fee_asset_name,
  fee_asset_blockchain,
  fee_amount,
  created_at,
  dispatched_at,
  completed_at,
  stale_alerted_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
ON CONFLICT (id) DO UPDATE SET
  status = EXCLUDED.status,
  payout_tx_id = EXCLUDED.payout_tx_id,
  fee_asset_name = EXCLUDED.fee_asset_name,
  fee_asset_blockchain = EXCLUDED.fee_asset_blockchain,
  fee_amount = EXCLUDED.fee_amount,
  dispatched_at = EXCLUDED.dispatched_at,
  completed_at = EXCLUDED.completed_at,
  stale_alerted_at = EXCLUDED.stale_alerted_at
`

	row := newOrderRow(order)
	_, err := r.db.ExecContext(ctx, query,
		row.id,
		row.payoutContext,
		row.assetID,
		row.assetName,
		row.assetBlockchain,
		row.assetType,
		row.assetCategory,
		row.destinationAddress,
		row.amount,
		row.status,
		row.payoutTxID,
		row.feeAssetName,
		row.feeAssetBlockchain,
		row.feeAmount,
		row.createdAt,
		row.dispatchedAt,
		row.completedAt,
		row.staleAlertedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == checkViolationCode {
			return apperrors.NewConflict(
				"payout_order_row_invalid",
				"payout order row violates a storage constraint",
				map[string]any{"order_id": order.ID, "constraint": pgErr.ConstraintName},
			)
		}
		return apperrors.NewInternal(
			"payout_order_save_failed",
			"failed to save payout order",
			map[string]any{"error": err.Error(), "order_id": order.ID},
		)
	}

	return nil
}

func (r *Repository) ListByStatusAndContext(
	ctx context.Context,
	status valueobjects.PayoutOrderStatus,
	payoutContext string,
	limit int,
) ([]*entities.PayoutOrder, *apperrors.AppError) {
	const query = `
SELECT
  id,
  payout_context,
  asset_id,
  asset_name,
  asset_blockchain,
  asset_type,
  asset_category,
  destination_address,
  amount::text,
  status,
  payout_tx_id,
  fee_asset_name,
  fee_asset_blockchain,
  fee_amount::text,
  created_at,
  dispatched_at,
  completed_at,
  stale_alerted_at
FROM app.payout_orders
WHERE status = $1 AND payout_context = $2
ORDER BY created_at, id
LIMIT $3
`

	rows, err := r.db.QueryContext(ctx, query, status.String(), payoutContext, limit)
	if err != nil {
		return nil, apperrors.NewInternal(
			"payout_order_list_failed",
			"failed to list payout orders",
			map[string]any{"error": err.Error(), "status": status.String(), "context": payoutContext},
		)
	}
	defer rows.Close()

	orders := make([]*entities.PayoutOrder, 0)
	for rows.Next() {
		order, appErr := scanOrder(rows)
		if appErr != nil {
			return nil, appErr
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"payout_order_list_failed",
			"failed to iterate payout orders",
			map[string]any{"error": err.Error()},
		)
	}

	return orders, nil
}

type orderRow struct {
	id                 string
	payoutContext      string
	assetID            string
	assetName          string
	assetBlockchain    string
	assetType          string
	assetCategory      string
	destinationAddress string
	amount             string
	status             string
	payoutTxID         sql.NullString
	feeAssetName       sql.NullString
	feeAssetBlockchain sql.NullString
	feeAmount          sql.NullString
	createdAt          time.Time
	dispatchedAt       sql.NullTime
	completedAt        sql.NullTime
	staleAlertedAt     sql.NullTime
}

func newOrderRow(order *entities.PayoutOrder) orderRow {
	row := orderRow{
		id:                 order.ID,
		payoutContext:      order.Context,
		assetID:            order.Asset.ID,
		assetName:          order.Asset.Name,
		assetBlockchain:    order.Asset.Blockchain.String(),
		assetType:          order.Asset.Type.String(),
		assetCategory:      order.Asset.Category.String(),
		destinationAddress: order.DestinationAddress,
		amount:             order.Amount.String(),
		status:             order.Status.String(),
		createdAt:          order.CreatedAt,
	}

	if order.PayoutTxID != "" {
		row.payoutTxID = sql.NullString{String: order.PayoutTxID, Valid: true}
	}
	if order.FeeAsset != nil {
		row.feeAssetName = sql.NullString{String: order.FeeAsset.Name, Valid: true}
		row.feeAssetBlockchain = sql.NullString{String: order.FeeAsset.Blockchain.String(), Valid: true}
	}
	if order.FeeAmount != nil {
		row.feeAmount = sql.NullString{String: order.FeeAmount.String(), Valid: true}
	}
	if order.DispatchedAt != nil {
		row.dispatchedAt = sql.NullTime{Time: *order.DispatchedAt, Valid: true}
	}
	if order.CompletedAt != nil {
		row.completedAt = sql.NullTime{Time: *order.CompletedAt, Valid: true}
	}
	if order.StaleAlertedAt != nil {
		row.staleAlertedAt = sql.NullTime{Time: *order.StaleAlertedAt, Valid: true}
	}

	return row
}

func scanOrder(rows *sql.Rows) (*entities.PayoutOrder, *apperrors.AppError) {
	var row orderRow
	if err := rows.Scan(
		&row.id,
		&row.payoutContext,
		&row.assetID,
		&row.assetName,
		&row.assetBlockchain,
		&row.assetType,
		&row.assetCategory,
		&row.destinationAddress,
		&row.amount,
		&row.status,
		&row.payoutTxID,
		&row.feeAssetName,
		&row.feeAssetBlockchain,
		&row.feeAmount,
		&row.createdAt,
		&row.dispatchedAt,
		&row.completedAt,
		&row.staleAlertedAt,
	); err != nil {
		return nil, apperrors.NewInternal(
			"payout_order_scan_failed",
			"failed to scan payout order row",
			map[string]any{"error": err.Error()},
		)
	}

	return row.toEntity()
}

func (row orderRow) toEntity() (*entities.PayoutOrder, *apperrors.AppError) {
	status, appErr := valueobjects.ParsePayoutOrderStatus(row.status)
	if appErr != nil {
		return nil, appErr
	}

	amount, err := decimal.NewFromString(row.amount)
	if err != nil {
		return nil, apperrors.NewInternal(
			"payout_order_amount_corrupt",
			"stored payout order amount is not parseable",
			map[string]any{"order_id": row.id, "amount": row.amount},
		)
	}

	order := &entities.PayoutOrder{
		ID:      row.id,
		Context: row.payoutContext,
		Asset: entities.Asset{
			ID:         row.assetID,
			Name:       row.assetName,
			Blockchain: valueobjects.Blockchain(row.assetBlockchain),
			Type:       valueobjects.AssetType(row.assetType),
			Category:   valueobjects.AssetCategory(row.assetCategory),
		},
		DestinationAddress: row.destinationAddress,
		Amount:             amount,
		Status:             status,
		CreatedAt:          row.createdAt.UTC(),
	}

	if row.payoutTxID.Valid {
		order.PayoutTxID = row.payoutTxID.String
	}
	if row.feeAssetName.Valid && row.feeAssetBlockchain.Valid {
		order.FeeAsset = &entities.Asset{
			Name:       row.feeAssetName.String,
			Blockchain: valueobjects.Blockchain(row.feeAssetBlockchain.String),
			Type:       valueobjects.AssetTypeCoin,
		}
	}
	if row.feeAmount.Valid {
		feeAmount, err := decimal.NewFromString(row.feeAmount.String)
		if err != nil {
			return nil, apperrors.NewInternal(
				"payout_order_fee_corrupt",
				"stored payout fee amount is not parseable",
				map[string]any{"order_id": row.id, "fee_amount": row.feeAmount.String},
			)
		}
		order.FeeAmount = &feeAmount
	}
	if row.dispatchedAt.Valid {
		dispatchedAt := row.dispatchedAt.Time.UTC()
		order.DispatchedAt = &dispatchedAt
	}
	if row.completedAt.Valid {
		completedAt := row.completedAt.Time.UTC()
		order.CompletedAt = &completedAt
	}
	if row.staleAlertedAt.Valid {
		staleAlertedAt := row.staleAlertedAt.Time.UTC()
		order.StaleAlertedAt = &staleAlertedAt
	}

	return order, nil
}
