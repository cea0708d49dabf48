package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// jsonRPCClient posts JSON-RPC 2.0 calls to one backend node. Transport
// failures and non-200 statuses are retried with exponential backoff; an
// error object in the response body is the node's answer and is returned
// as-is. All calls share one rate limiter so a payout burst cannot flood
// the node.
type jsonRPCClient struct {
	httpClient  *http.Client
	httpTimeout time.Duration
	limiter     *rate.Limiter
	maxAttempts int
}

func newJSONRPCClient(httpClient *http.Client, httpTimeout time.Duration, requestsPerSecond float64, maxAttempts int) *jsonRPCClient {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	return &jsonRPCClient{
		httpClient:  httpClient,
		httpTimeout: httpTimeout,
		limiter:     rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		maxAttempts: maxAttempts,
	}
}

func (c *jsonRPCClient) Call(
	ctx context.Context,
	rpcURL string,
	method string,
	params any,
) (json.RawMessage, *apperrors.AppError) {
	payload := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternal(
			"chain_rpc_encode_failed",
			"failed to encode rpc request",
			map[string]any{"error": err.Error(), "method": method},
		)
	}

	backoffCfg := backoff.NewExponentialBackOff()
	backoffCfg.InitialInterval = 100 * time.Millisecond
	backoffCfg.MaxInterval = 2 * time.Second

	var lastErr *apperrors.AppError
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			sleep := backoffCfg.NextBackOff()
			if sleep == backoff.Stop {
				break
			}
			select {
			case <-ctx.Done():
				return nil, contextError(ctx, method)
			case <-time.After(sleep):
			}
		}

		result, appErr, retryable := c.callOnce(ctx, rpcURL, method, encoded)
		if appErr == nil {
			return result, nil
		}
		if !retryable {
			return nil, appErr
		}
		lastErr = appErr
	}

	return nil, lastErr
}

// CallNoRetry performs a single attempt. Dispatch calls go through here: an
// ambiguous transport failure after a send may still have reached the node,
// so the send must not be repeated blindly.
func (c *jsonRPCClient) CallNoRetry(
	ctx context.Context,
	rpcURL string,
	method string,
	params any,
) (json.RawMessage, *apperrors.AppError) {
	payload := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternal(
			"chain_rpc_encode_failed",
			"failed to encode rpc request",
			map[string]any{"error": err.Error(), "method": method},
		)
	}

	result, appErr, _ := c.callOnce(ctx, rpcURL, method, encoded)
	return result, appErr
}

func (c *jsonRPCClient) callOnce(
	ctx context.Context,
	rpcURL string,
	method string,
	encoded []byte,
) (json.RawMessage, *apperrors.AppError, bool) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, contextError(ctx, method), false
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.httpTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(requestCtx, http.MethodPost, rpcURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, apperrors.NewInternal(
			"chain_rpc_request_failed",
			"failed to build rpc request",
			map[string]any{"error": err.Error(), "method": method},
		), false
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, apperrors.NewBackend(
			"chain_rpc_transport_failed",
			"failed to call rpc endpoint",
			map[string]any{"error": err.Error(), "method": method},
		), true
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperrors.NewBackend(
			"chain_rpc_status_unexpected",
			"rpc endpoint returned non-200 status",
			map[string]any{"status_code": response.StatusCode, "method": method},
		), true
	}

	rpcResp := rpcResponse{}
	if err := json.NewDecoder(response.Body).Decode(&rpcResp); err != nil {
		return nil, apperrors.NewBackend(
			"chain_rpc_decode_failed",
			"failed to decode rpc response",
			map[string]any{"error": err.Error(), "method": method},
		), true
	}
	if rpcResp.Error != nil {
		// The node answered; retrying would repeat the same rejection.
		return nil, apperrors.NewBackend(
			"chain_rpc_rejected",
			"rpc endpoint returned error",
			map[string]any{
				"method":    method,
				"rpc_error": rpcResp.Error.Message,
				"rpc_code":  rpcResp.Error.Code,
			},
		), false
	}

	return rpcResp.Result, nil, false
}

func contextError(ctx context.Context, method string) *apperrors.AppError {
	return apperrors.NewBackend(
		"chain_rpc_canceled",
		"rpc call canceled",
		map[string]any{"error": ctx.Err().Error(), "method": method},
	)
}
