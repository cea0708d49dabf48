package router

import (
	"net/http"

	"payoutd/internal/adapters/inbound/http/controllers"
)

type Dependencies struct {
	HealthController    *controllers.HealthController
	SwaggerController   *controllers.SwaggerController
	PayoutsController   *controllers.PayoutsController
	LiquidityController *controllers.LiquidityController
}

func New(deps Dependencies) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", deps.HealthController.GetHealth)
	mux.HandleFunc("GET /swagger", deps.SwaggerController.RedirectToIndex)
	mux.HandleFunc("GET /swagger/openapi.yaml", deps.SwaggerController.GetOpenAPISpec)
	mux.HandleFunc("GET /swagger/", deps.SwaggerController.ServeUI)
	mux.HandleFunc("POST /v1/payouts/fee-estimates", deps.PayoutsController.EstimateFee)
	mux.HandleFunc("GET /v1/payouts/overview", deps.PayoutsController.GetOverview)
	mux.HandleFunc("POST /v1/liquidity/checks", deps.LiquidityController.CheckLiquidity)

	return mux
}
