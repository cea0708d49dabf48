//go:build !integration

package chain

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeNode is an in-process JSON-RPC node. The handler receives the decoded
// method and params and returns either a result value or an rpc error
// message.
type fakeNode struct {
	server *httptest.Server
	calls  []fakeNodeCall
}

type fakeNodeCall struct {
	Method string
	Params []any
}

func newFakeNode(t *testing.T, handler func(method string, params []any) (any, string)) *fakeNode {
	t.Helper()

	node := &fakeNode{}
	node.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Method string `json:"method"`
			Params []any  `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Fatalf("failed to decode rpc request: %v", err)
		}
		node.calls = append(node.calls, fakeNodeCall{Method: request.Method, Params: request.Params})

		result, rpcErrMessage := handler(request.Method, request.Params)
		body := map[string]any{"jsonrpc": "2.0", "id": 1}
		if rpcErrMessage != "" {
			body["error"] = map[string]any{"code": -32000, "message": rpcErrMessage}
		} else {
			body["result"] = result
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(node.server.Close)

	return node
}

func (n *fakeNode) callCount(method string) int {
	count := 0
	for _, call := range n.calls {
		if call.Method == method {
			count++
		}
	}
	return count
}

func testClientConfig() (time.Duration, float64, int) {
	return 2 * time.Second, 1000, 3
}
