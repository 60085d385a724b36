// Package fetcher implements the one call shape every controller uses to
// reach the upstream movie API: a resource path plus query parameters, sent
// through the proxy gateway, answered with parsed JSON.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "movie-discovery/fetcher"

// Params are forwarded verbatim as query parameters. Values are formatted
// with fmt.Sprint so both strings and numbers are accepted.
type Params map[string]any

// Client calls the proxy gateway. It performs no retry and no backoff.
type Client struct {
	gatewayURL string
	httpClient *http.Client

	tracer         trace.Tracer
	successCounter metric.Int64Counter
	errorCounter   metric.Int64Counter
}

// New creates a Client for the gateway at gatewayURL. A nil httpClient gets a
// client with an instrumented transport and no timeout.
func New(gatewayURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	meter := otel.Meter(instrumentationName)
	successCounter, err := meter.Int64Counter("fetch.counter.success")
	if err != nil {
		slog.Warn("failed to create fetch success counter", "error", err)
	}
	errorCounter, err := meter.Int64Counter("fetch.counter.error")
	if err != nil {
		slog.Warn("failed to create fetch error counter", "error", err)
	}

	return &Client{
		gatewayURL:     gatewayURL,
		httpClient:     httpClient,
		tracer:         otel.Tracer(instrumentationName),
		successCounter: successCounter,
		errorCounter:   errorCounter,
	}
}

// Fetch issues one round trip through the gateway and returns the JSON body.
// It fails with *TransportError when the call cannot complete and with
// *UpstreamError on a non-2xx status.
func (c *Client) Fetch(ctx context.Context, resource string, params Params) (json.RawMessage, error) {
	if !Known(resource) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}

	ctx, span := c.tracer.Start(ctx, "fetch", trace.WithAttributes(attribute.String("resource", resource)))
	defer span.End()

	body, err := c.roundTrip(ctx, resource, params)
	attrs := metric.WithAttributes(attribute.String("resource", resource))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if c.errorCounter != nil {
			c.errorCounter.Add(ctx, 1, attrs)
		}
		slog.WarnContext(ctx, "fetch failed", "resource", resource, "error", err)
		return nil, err
	}
	if c.successCounter != nil {
		c.successCounter.Add(ctx, 1, attrs)
	}
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, resource string, params Params) (json.RawMessage, error) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, fmt.Sprint(v))
	}
	q.Set("endpoint", resource)

	target := c.gatewayURL
	if strings.Contains(target, "?") {
		target += "&" + q.Encode()
	} else {
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: resource, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: resource, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Endpoint: resource, Status: resp.StatusCode, Message: errorMessage(body)}
	}
	if !json.Valid(body) {
		return nil, &UpstreamError{Endpoint: resource, Status: resp.StatusCode, Message: "malformed JSON body"}
	}
	return json.RawMessage(body), nil
}

// errorMessage extracts a human readable message from a gateway or upstream
// error body, which is either {"error": ...} or {"status_message": ...}.
func errorMessage(body []byte) string {
	var e struct {
		Error         string `json:"error"`
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if e.Error != "" {
		return e.Error
	}
	return e.StatusMessage
}
