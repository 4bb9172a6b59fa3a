// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/rag"
)

// Configuration constants for the services API.
const (
	// DefaultBaseURL matches the services' local development address.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds every request. A request that exceeds it is
	// reported as NoResponse, not as a distinct state.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// sharedHTTPClient is reused across all requests for connection pooling.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// apiErrorBody is the error envelope the services return on non-2xx.
// Either field may carry the message; "message" wins when both are set.
type apiErrorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Client talks to the quotation and knowledge-base services.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// NewClient creates a client for the given base URL. An empty URL falls
// back to DefaultBaseURL. Requests pass through a small client-side rate
// limiter so dashboard polling cannot hammer the services.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
		userAgent:  "rfq-console/0.1.0",
	}
}

// WithTimeout sets the request timeout. A dedicated http.Client replaces
// the shared one so the setting stays local to this Client.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// WithLimiter replaces the client-side rate limiter.
func (c *Client) WithLimiter(l *rate.Limiter) *Client {
	c.limiter = l
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// QUOTATION SERVICE
// =============================================================================

// CreateQuote submits a quotation request for pricing and email drafting.
func (c *Client) CreateQuote(ctx context.Context, req quote.Request) (*quote.Result, error) {
	var result quote.Result
	if err := c.post(ctx, "/quote", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetQuote fetches a previously generated quotation by id.
func (c *Client) GetQuote(ctx context.Context, id string) (*quote.Result, error) {
	var result quote.Result
	if err := c.get(ctx, "/quote/"+id, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListQuotes fetches all quotations known to the service.
func (c *Client) ListQuotes(ctx context.Context) ([]quote.Result, error) {
	var results []quote.Result
	if err := c.get(ctx, "/quotes", &results); err != nil {
		return nil, err
	}
	return results, nil
}

// =============================================================================
// KNOWLEDGE-BASE SERVICE
// =============================================================================

// Query asks the knowledge base a question.
func (c *Client) Query(ctx context.Context, req rag.QueryRequest) (*rag.QueryResult, error) {
	var result rag.QueryResult
	if err := c.post(ctx, "/rag/query", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListDocuments fetches the knowledge-base document list. The payload is
// opaque to this client and passed through for display.
func (c *Client) ListDocuments(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/rag/documents", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// AddDocument uploads a document payload (opaque) and returns the
// service's acknowledgement (also opaque).
func (c *Client) AddDocument(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/rag/documents", payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Stats fetches knowledge-base statistics (opaque payload).
func (c *Client) Stats(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/rag/stats", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// =============================================================================
// HEALTH
// =============================================================================

// Health fetches the combined liveness payload.
func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/health", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// HealthQuotation fetches the quotation service's liveness payload.
func (c *Client) HealthQuotation(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/health/quotation", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// HealthRAG fetches the knowledge-base service's liveness payload.
func (c *Client) HealthRAG(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/health/rag", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// get issues a GET request and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post marshals body as JSON, issues a POST request, and decodes the
// response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return clientError(fmt.Errorf("marshal request: %w", err))
	}
	return c.do(ctx, http.MethodPost, path, payload, out)
}

// do runs one request through the limiter and classifies every failure.
// There is no retry here: the lifecycle layer owns what happens after a
// terminal failure, and it never retries automatically.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		// The context expired before the request was ever sent.
		return clientError(fmt.Errorf("rate limit wait: %w", err))
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return clientError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Sent but nothing came back: connection failures and timeouts
		// both land here and both read as "no response" to the operator.
		return noResponse(err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	raw, err := readResponse(resp)
	if err != nil {
		return clientError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody apiErrorBody
		_ = json.Unmarshal(raw, &errBody) // absence of both fields is handled below
		message := errBody.Message
		if message == "" {
			message = errBody.Detail
		}
		return serverError(resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// A malformed success body is rejected here rather than letting
		// undefined fields propagate into the composers.
		return clientError(fmt.Errorf("parse response: %w", err))
	}
	return nil
}

// readResponse reads a body with a hard size cap.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(raw)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return raw, nil
}

// logRequest logs method and path only. Bodies carry client contact
// details and free-text notes, so they never reach the log.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs status and duration only.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}
