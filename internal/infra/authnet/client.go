package authnet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"accept-broker/internal/infra/telemetry"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 1 << 20

// Client performs the outbound call and is the normalization boundary for replies.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
	metrics    *telemetry.Metrics
}

type ClientOption func(*Client)

// WithEndpoint overrides the environment API URL.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewHTTPClient returns a traced client; the timeout bounds the whole exchange.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func NewClient(env Environment, httpClient *http.Client, logger *slog.Logger, metrics *telemetry.Metrics, opts ...ClientOption) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(20 * time.Second)
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		httpClient: httpClient,
		endpoint:   env.Endpoints().APIURL,
		logger:     logger,
		metrics:    metrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts req and returns the normalized reply. Every failure, including
// malformed bodies and timeouts, is a *GatewayError.
func (c *Client) Send(ctx context.Context, req GatewayRequest) (*NormalizedResponse, error) {
	start := time.Now()
	op := req.Operation

	body, err := json.Marshal(req)
	if err != nil {
		c.metrics.ObserveGatewayCall(op, "encode_error", time.Since(start))
		return nil, &GatewayError{Operation: op, Text: "failed to encode gateway request", cause: err}
	}
	exchange := Exchange{Request: Redact(body)}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.metrics.ObserveGatewayCall(op, "encode_error", time.Since(start))
		return nil, &GatewayError{Operation: op, Text: "failed to build gateway request", Exchange: exchange, cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		timeout := isTimeout(err)
		text := "payment gateway request failed"
		result := "transport_error"
		if timeout {
			text = "payment gateway request timed out"
			result = "timeout"
		}
		c.metrics.ObserveGatewayCall(op, result, time.Since(start))
		c.logger.WarnContext(ctx, "gateway request failed",
			"operation", op, "timeout", timeout, "duration", time.Since(start), "error", err)
		return nil, &GatewayError{Operation: op, Text: text, Timeout: timeout, Exchange: exchange, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.metrics.ObserveGatewayCall(op, "transport_error", time.Since(start))
		return nil, &GatewayError{Operation: op, Text: "failed to read gateway response", Timeout: isTimeout(err), Exchange: exchange, cause: err}
	}
	exchange.Response = Redact(bytes.TrimPrefix(bytes.TrimSpace(raw), utf8BOM))

	c.logger.DebugContext(ctx, "gateway exchange",
		"operation", op,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request", string(exchange.Request),
		"response", string(exchange.Response),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.ObserveGatewayCall(op, "http_error", time.Since(start))
		return nil, &GatewayError{
			Operation: op,
			Code:      fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Text:      fmt.Sprintf("payment gateway returned HTTP %d", resp.StatusCode),
			Exchange:  exchange,
		}
	}

	norm, err := Normalize(raw)
	if err != nil {
		c.metrics.ObserveGatewayCall(op, "parse_error", time.Since(start))
		c.logger.WarnContext(ctx, "gateway response could not be parsed", "operation", op, "error", err)
		return nil, &GatewayError{Operation: op, Text: "malformed payment gateway response", ParseError: true, Exchange: exchange, cause: err}
	}
	norm.Exchange = exchange

	if gerr := classify(op, req.Expect, norm); gerr != nil {
		c.metrics.ObserveGatewayCall(op, "rejected", time.Since(start))
		c.logger.InfoContext(ctx, "gateway rejected request", "operation", op, "code", gerr.Code, "text", gerr.Text)
		return nil, gerr
	}

	c.metrics.ObserveGatewayCall(op, "ok", time.Since(start))
	return norm, nil
}

func classify(op string, exp Expectation, norm *NormalizedResponse) *GatewayError {
	if !norm.OK() {
		first := norm.FirstError()
		return &GatewayError{Operation: op, Code: first.Code, Text: first.Text, Exchange: norm.Exchange, Response: norm}
	}
	if field, missing := norm.missingExpected(exp); missing {
		return &GatewayError{Operation: op, Text: "payment gateway reported success without " + field, Exchange: norm.Exchange, Response: norm}
	}
	if exp == ExpectApprovedTransaction && !norm.transactionAccepted() {
		first := norm.FirstError()
		return &GatewayError{Operation: op, Code: first.Code, Text: first.Text, Exchange: norm.Exchange, Response: norm}
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
