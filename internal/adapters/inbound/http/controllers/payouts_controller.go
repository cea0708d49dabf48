package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"payoutd/internal/application/dto"
	portsin "payoutd/internal/application/ports/in"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type PayoutsController struct {
	feeUseCase      portsin.EstimatePayoutFeeUseCase
	overviewUseCase portsin.GetPayoutOverviewUseCase
	logger          *log.Logger
}

func NewPayoutsController(
	feeUseCase portsin.EstimatePayoutFeeUseCase,
	overviewUseCase portsin.GetPayoutOverviewUseCase,
	logger *log.Logger,
) *PayoutsController {
	return &PayoutsController{
		feeUseCase:      feeUseCase,
		overviewUseCase: overviewUseCase,
		logger:          logger,
	}
}

// assetPayload is the wire form of an asset reference. Category defaults to
// plain when omitted.
type assetPayload struct {
	Name       string `json:"name"`
	Blockchain string `json:"blockchain"`
	Type       string `json:"type"`
	Category   string `json:"category,omitempty"`
}

type estimateFeePayload struct {
	Asset assetPayload `json:"asset"`
}

type feeResultResource struct {
	FeeAsset      string `json:"fee_asset"`
	FeeBlockchain string `json:"fee_blockchain"`
	Amount        string `json:"amount"`
}

type overviewRowResource struct {
	Context      string `json:"context"`
	Status       string `json:"status"`
	OrderCount   int64  `json:"order_count"`
	OldestAgeSec int64  `json:"oldest_age_sec"`
}

func (c *PayoutsController) EstimateFee(w http.ResponseWriter, r *http.Request) {
	payload := estimateFeePayload{}
	if appErr := decodeSingleObject(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	asset, appErr := payload.Asset.toEntity()
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.feeUseCase.Execute(r.Context(), dto.EstimatePayoutFeeQuery{Asset: asset})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/payouts/fee-estimates method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, newFeeResultResource(output.Fee))
}

func (c *PayoutsController) GetOverview(w http.ResponseWriter, r *http.Request) {
	query := dto.PayoutOverviewQuery{Context: strings.TrimSpace(r.URL.Query().Get("context"))}

	output, appErr := c.overviewUseCase.Execute(r.Context(), query)
	if appErr != nil {
		c.logger.Printf("request error path=/v1/payouts/overview method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	rows := make([]overviewRowResource, 0, len(output.Rows))
	for _, row := range output.Rows {
		rows = append(rows, overviewRowResource{
			Context:      row.Context,
			Status:       row.Status,
			OrderCount:   row.OrderCount,
			OldestAgeSec: row.OldestAgeSec,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func newFeeResultResource(fee dto.FeeResult) feeResultResource {
	return feeResultResource{
		FeeAsset:      fee.Asset.Name,
		FeeBlockchain: fee.Asset.Blockchain.String(),
		Amount:        fee.Amount.String(),
	}
}

func (p assetPayload) toEntity() (entities.Asset, *apperrors.AppError) {
	blockchain, appErr := valueobjects.ParseBlockchain(strings.TrimSpace(p.Blockchain))
	if appErr != nil {
		return entities.Asset{}, appErr
	}
	assetType, appErr := valueobjects.ParseAssetType(strings.TrimSpace(p.Type))
	if appErr != nil {
		return entities.Asset{}, appErr
	}

	category := valueobjects.AssetCategoryPlain
	if strings.TrimSpace(p.Category) != "" {
		category, appErr = valueobjects.ParseAssetCategory(strings.TrimSpace(p.Category))
		if appErr != nil {
			return entities.Asset{}, appErr
		}
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		return entities.Asset{}, apperrors.NewValidation(
			"invalid_request",
			"asset name is required",
			map[string]any{"field": "asset.name"},
		)
	}

	return entities.Asset{
		Name:       name,
		Blockchain: blockchain,
		Type:       assetType,
		Category:   category,
	}, nil
}

func decodeSingleObject(body io.Reader, target any) *apperrors.AppError {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	decoder.UseNumber()

	if err := decoder.Decode(target); err != nil {
		return apperrors.NewValidation(
			"invalid_request",
			"request body must be valid JSON",
			map[string]any{"error": err.Error()},
		)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return apperrors.NewValidation(
			"invalid_request",
			"request body must contain a single JSON object",
			nil,
		)
	}

	return nil
}
