// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/rag"
)

func testClient(url string) *Client {
	// Tests must not sit in the polling limiter.
	return NewClient(url).WithLimiter(rate.NewLimiter(rate.Inf, 0))
}

func sampleRequest() quote.Request {
	return quote.Request{
		Client:   quote.ClientInfo{Name: "Gulf Engineering", Contact: "omar@client.com", Lang: "en"},
		Currency: "SAR",
		Items:    []quote.LineItem{{SKU: "ALR-SL-90W", Qty: 10, UnitCost: 50, MarginPct: 20}},
	}
}

// =============================================================================
// SUCCESS PATH
// =============================================================================

func TestCreateQuote_DecodesResult(t *testing.T) {
	var gotBody quote.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/quote" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"quotation_id": "Q-2024-0042",
			"client": {"name": "Gulf Engineering", "contact": "omar@client.com", "lang": "en"},
			"currency": "SAR",
			"items": [{"sku": "ALR-SL-90W", "qty": 10, "unit_cost": 50, "margin_pct": 20, "line_total": 600}],
			"subtotal": 600,
			"tax_rate": 15,
			"tax_amount": 90,
			"total": 690,
			"email_draft": "Dear Omar, ..."
		}`))
	}))
	defer server.Close()

	result, err := testClient(server.URL).CreateQuote(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	if result.QuotationID != "Q-2024-0042" {
		t.Errorf("QuotationID = %q", result.QuotationID)
	}
	if result.Total != 690 || result.TaxRate != 15 {
		t.Errorf("totals = %+v", result)
	}
	if len(result.Items) != 1 || result.Items[0].LineTotal != 600 {
		t.Errorf("items = %+v", result.Items)
	}
	if gotBody.Items[0].SKU != "ALR-SL-90W" {
		t.Errorf("request body items = %+v", gotBody.Items)
	}
}

func TestQuery_DecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rag/query" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req rag.QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Query != "ما هي منتجاتكم؟" || req.Language != "ar" {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"answer": "نقدم أنظمة إضاءة", "confidence": 87, "sources": ["catalog.pdf"], "response_time": 640, "processing_time": 310}`))
	}))
	defer server.Close()

	result, err := testClient(server.URL).Query(context.Background(), rag.NewQueryRequest("ما هي منتجاتكم؟", "ar"))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if result.Confidence != 87 || len(result.Sources) != 1 {
		t.Errorf("result = %+v", result)
	}
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

func TestDo_ServerErrorUsesMessageField(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message": "invalid margin"}`, "invalid margin"},
		{"detail field", `{"detail": "items must not be empty"}`, "items must not be empty"},
		{"message wins over detail", `{"message": "m", "detail": "d"}`, "m"},
		{"neither field", `{"oops": true}`, GenericServerMessage},
		{"non-JSON body", `gateway exploded`, GenericServerMessage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := testClient(server.URL).CreateQuote(context.Background(), sampleRequest())
			if err == nil {
				t.Fatal("expected error")
			}

			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("error type = %T", err)
			}
			if reqErr.Kind != ServerError {
				t.Errorf("Kind = %v, want ServerError", reqErr.Kind)
			}
			if reqErr.Message != tc.want {
				t.Errorf("Message = %q, want %q", reqErr.Message, tc.want)
			}
			if reqErr.Status != http.StatusUnprocessableEntity {
				t.Errorf("Status = %d", reqErr.Status)
			}
		})
	}
}

func TestDo_TimeoutIsNoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := testClient(server.URL).WithTimeout(20 * time.Millisecond)
	_, err := client.Query(context.Background(), rag.NewQueryRequest("hello", "en"))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if KindOf(err) != NoResponse {
		t.Errorf("KindOf = %v, want NoResponse", KindOf(err))
	}
	if MessageOf(err) != NoResponseMessage {
		t.Errorf("MessageOf = %q, want fixed connectivity hint", MessageOf(err))
	}
}

func TestDo_ConnectionRefusedIsNoResponse(t *testing.T) {
	// Grab a port nobody is listening on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := testClient(url).Health(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
	if KindOf(err) != NoResponse {
		t.Errorf("KindOf = %v, want NoResponse", KindOf(err))
	}
}

func TestDo_MalformedSuccessBodyIsClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quotation_id": `)) // truncated JSON
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateQuote(context.Background(), sampleRequest())
	if err == nil {
		t.Fatal("expected parse error")
	}
	if KindOf(err) != ClientError {
		t.Errorf("KindOf = %v, want ClientError", KindOf(err))
	}
}

// =============================================================================
// OPAQUE ENDPOINTS
// =============================================================================

func TestOpaqueEndpoints_PassThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health", "/health/quotation", "/health/rag":
			w.Write([]byte(`{"status": "healthy"}`))
		case "/rag/stats":
			w.Write([]byte(`{"documents": 12, "chunks": 340}`))
		case "/rag/documents":
			if r.Method == http.MethodPost {
				w.Write([]byte(`{"ack": true}`))
				return
			}
			w.Write([]byte(`[{"name": "catalog.pdf"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := testClient(server.URL)
	ctx := context.Background()

	for name, call := range map[string]func() (json.RawMessage, error){
		"health":           func() (json.RawMessage, error) { return client.Health(ctx) },
		"health quotation": func() (json.RawMessage, error) { return client.HealthQuotation(ctx) },
		"health rag":       func() (json.RawMessage, error) { return client.HealthRAG(ctx) },
		"stats":            func() (json.RawMessage, error) { return client.Stats(ctx) },
		"documents":        func() (json.RawMessage, error) { return client.ListDocuments(ctx) },
		"add document":     func() (json.RawMessage, error) { return client.AddDocument(ctx, json.RawMessage(`{"content":"x"}`)) },
	} {
		raw, err := call()
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if !json.Valid(raw) || len(raw) == 0 {
			t.Errorf("%s: payload %q not passed through", name, raw)
		}
	}
}
