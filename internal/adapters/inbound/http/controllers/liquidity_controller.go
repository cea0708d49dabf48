package controllers

import (
	"log"
	"net/http"
	"strings"

	"payoutd/internal/application/dto"
	portsin "payoutd/internal/application/ports/in"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

type LiquidityController struct {
	checkUseCase portsin.CheckLiquidityUseCase
	logger       *log.Logger
}

func NewLiquidityController(checkUseCase portsin.CheckLiquidityUseCase, logger *log.Logger) *LiquidityController {
	return &LiquidityController{
		checkUseCase: checkUseCase,
		logger:       logger,
	}
}

type checkLiquidityPayload struct {
	CorrelationID   string       `json:"correlation_id"`
	Asset           assetPayload `json:"asset"`
	RequestedAmount string       `json:"requested_amount"`
}

type checkLiquidityResource struct {
	CorrelationID   string            `json:"correlation_id"`
	Asset           string            `json:"asset"`
	RequestedAmount string            `json:"requested_amount"`
	AvailableAmount string            `json:"available_amount"`
	Sufficient      bool              `json:"sufficient"`
	FeeEstimate     feeResultResource `json:"fee_estimate"`
}

func (c *LiquidityController) CheckLiquidity(w http.ResponseWriter, r *http.Request) {
	payload := checkLiquidityPayload{}
	if appErr := decodeSingleObject(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	asset, appErr := payload.Asset.toEntity()
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	requestedAmount, err := decimal.NewFromString(strings.TrimSpace(payload.RequestedAmount))
	if err != nil {
		writeAppError(w, apperrors.NewValidation(
			"invalid_request",
			"requested_amount must be a decimal string",
			map[string]any{"field": "requested_amount"},
		))
		return
	}

	output, appErr := c.checkUseCase.Execute(r.Context(), dto.CheckLiquidityCommand{
		Request: dto.CheckLiquidityRequest{
			CorrelationID:   strings.TrimSpace(payload.CorrelationID),
			TargetAsset:     asset,
			RequestedAmount: requestedAmount,
		},
	})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/liquidity/checks method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	result := output.Result
	writeJSON(w, http.StatusOK, checkLiquidityResource{
		CorrelationID:   payload.CorrelationID,
		Asset:           result.TargetAsset.UniqueName(),
		RequestedAmount: result.RequestedAmount.String(),
		AvailableAmount: result.AvailableAmount.String(),
		Sufficient:      result.Sufficient,
		FeeEstimate:     newFeeResultResource(result.FeeEstimate),
	})
}
