//go:build e2e

package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const okMessages = `"messages":{"resultCode":"Ok","message":[{"code":"I00001","text":"Successful."}]}`

// default replies per gateway operation
var defaultGatewayReplies = map[string]string{
	"getHostedPaymentPageRequest":  `{"token":"e2e-hosted-token",` + okMessages + `}`,
	"getHostedProfilePageRequest":  `{"token":"e2e-profile-token",` + okMessages + `}`,
	"createCustomerProfileRequest": `{"customerProfileId":"500012345","customerPaymentProfileIdList":[],"customerShippingAddressIdList":[],"validationDirectResponseList":[],` + okMessages + `}`,
	"createTransactionRequest":     `{"transactionResponse":{"responseCode":"1","authCode":"ABC123","avsResultCode":"Y","cvvResultCode":"P","transId":"60123456789","accountNumber":"XXXX1111","accountType":"Visa","messages":[{"code":"1","description":"This transaction has been approved."}]},` + okMessages + `}`,
}

// FakeGateway stands in for the Authorize.Net JSON API. Replies are keyed by
// the request's root element; bodies are prefixed with a BOM like the real API.
type FakeGateway struct {
	server *httptest.Server

	mu       sync.Mutex
	replies  map[string]string
	requests []map[string]any
}

func NewFakeGateway(t *testing.T) *FakeGateway {
	t.Helper()
	g := &FakeGateway{}
	g.Reset()
	g.server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.server.Close)
	return g
}

func (g *FakeGateway) URL() string {
	return g.server.URL
}

func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies = make(map[string]string, len(defaultGatewayReplies))
	for op, body := range defaultGatewayReplies {
		g.replies[op] = body
	}
	g.requests = nil
}

// Reply overrides the body returned for op.
func (g *FakeGateway) Reply(op, body string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies[op] = body
}

// Requests returns the payloads received for op, in arrival order.
func (g *FakeGateway) Requests(op string) []map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []map[string]any
	for _, r := range g.requests {
		if payload, ok := r[op].(map[string]any); ok {
			out = append(out, payload)
		}
	}
	return out
}

func (g *FakeGateway) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope) != 1 {
		http.Error(w, "expected a single root element", http.StatusBadRequest)
		return
	}

	g.mu.Lock()
	g.requests = append(g.requests, envelope)
	var reply string
	for op := range envelope {
		reply = g.replies[op]
	}
	g.mu.Unlock()

	if reply == "" {
		reply = `{"messages":{"resultCode":"Error","message":[{"code":"E00003","text":"Unsupported request."}]}}`
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(append([]byte{0xEF, 0xBB, 0xBF}, reply...))
}
