//go:build !integration

package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	apperrors "payoutd/internal/shared_kernel/errors"
)

func newTestRPCClient() *jsonRPCClient {
	timeout, rps, attempts := testClientConfig()
	return newJSONRPCClient(http.DefaultClient, timeout, rps, attempts)
}

func TestCallRetriesTransientStatusFailures(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1, "result": "ok"})
	}))
	defer server.Close()

	client := newTestRPCClient()
	raw, appErr := client.Call(context.Background(), server.URL, "getbalance", []any{})
	if appErr != nil {
		t.Fatalf("expected success after retries, got %+v", appErr)
	}

	var result string
	if err := json.Unmarshal(raw, &result); err != nil || result != "ok" {
		t.Fatalf("unexpected result %q err %v", raw, err)
	}
	if hits.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", hits.Load())
	}
}

func TestCallGivesUpAfterMaxAttempts(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestRPCClient()
	_, appErr := client.Call(context.Background(), server.URL, "getbalance", []any{})
	if appErr == nil {
		t.Fatal("expected an error")
	}
	if !appErr.IsType(apperrors.TypeBackend) || appErr.Code != "chain_rpc_status_unexpected" {
		t.Fatalf("unexpected error %+v", appErr)
	}
	if hits.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", hits.Load())
	}
}

func TestCallDoesNotRetryNodeRejections(t *testing.T) {
	node := newFakeNode(t, func(method string, params []any) (any, string) {
		return nil, "Insufficient funds"
	})

	client := newTestRPCClient()
	_, appErr := client.Call(context.Background(), node.server.URL, "sendmany", []any{})
	if appErr == nil {
		t.Fatal("expected an error")
	}
	if appErr.Code != "chain_rpc_rejected" {
		t.Fatalf("unexpected error code %q", appErr.Code)
	}
	if node.callCount("sendmany") != 1 {
		t.Fatalf("expected a single attempt, got %d", node.callCount("sendmany"))
	}
}

func TestCallNoRetryStopsAfterOneTransportFailure(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestRPCClient()
	_, appErr := client.CallNoRetry(context.Background(), server.URL, "sendmany", []any{})
	if appErr == nil {
		t.Fatal("expected an error")
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", hits.Load())
	}
}
