// Package fetch reads JSON resources over HTTP and tracks the result of
// each read as a pending/succeeded/failed state.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientParams holds configuration for creating a Client.
type ClientParams struct {
	Doer   Doer
	Tracer oteltrace.Tracer
	Logger *slog.Logger
}

// Client performs single JSON GET requests.
type Client struct {
	doer   Doer
	tracer oteltrace.Tracer
	logger *slog.Logger
}

// Meta describes a completed response.
type Meta struct {
	StatusCode int
	Size       int64
	Took       time.Duration
}

// NewClient creates a Client. Nil params fall back to http.DefaultClient,
// a no-op tracer and a discarding logger.
func NewClient(p ClientParams) *Client {
	c := &Client{doer: p.Doer, tracer: p.Tracer, logger: p.Logger}
	if c.doer == nil {
		c.doer = http.DefaultClient
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer("")
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// GetJSON issues one GET to address and decodes a 2xx body into out.
// A non-2xx response fails with KindStatus without reading the body.
func (c *Client) GetJSON(ctx context.Context, address string, out any) (Meta, error) {
	ctx, span := c.tracer.Start(ctx, "fetch.GET",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("http.request.method", http.MethodGet),
			attribute.String("url.full", address),
		),
	)
	defer span.End()

	start := time.Now()
	meta, err := c.do(ctx, address, out)
	meta.Took = time.Since(start)

	if meta.StatusCode != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", meta.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("fetch failed",
			"address", address,
			"kind", KindOf(err).String(),
			"took", meta.Took,
			"error", err)
		return meta, err
	}

	span.SetAttributes(attribute.Int64("http.response.body.size", meta.Size))
	c.logger.Debug("fetch succeeded",
		"address", address,
		"status", meta.StatusCode,
		"bytes", meta.Size,
		"took", meta.Took)
	return meta, nil
}

func (c *Client) do(ctx context.Context, address string, out any) (Meta, error) {
	var meta Meta

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return meta, &Error{Kind: KindTransport, Address: address, Cause: err}
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return meta, &Error{Kind: KindTransport, Address: address, Cause: err}
	}
	defer resp.Body.Close()

	meta.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return meta, &Error{Kind: KindStatus, Address: address, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	meta.Size = int64(len(body))
	if err != nil {
		return meta, &Error{Kind: KindDecode, Address: address, Cause: fmt.Errorf("reading body: %w", err)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return meta, &Error{Kind: KindDecode, Address: address, Cause: err}
	}
	return meta, nil
}
