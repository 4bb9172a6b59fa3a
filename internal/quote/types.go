// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quote

// Language codes accepted by both services.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// Languages in the order the form cycles through them.
var Languages = []string{LangEnglish, LangArabic}

// Currencies the pricing service quotes in.
var Currencies = []string{"SAR", "USD", "EUR"}

// ClientInfo identifies the client a quotation is addressed to.
type ClientInfo struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Lang    string `json:"lang"` // "en" or "ar"
}

// LineItem is one requested line of a quotation. Identity is positional:
// items carry no id until the service returns priced lines.
type LineItem struct {
	SKU       string  `json:"sku"`
	Qty       int     `json:"qty"`
	UnitCost  float64 `json:"unit_cost"`
	MarginPct float64 `json:"margin_pct"`
}

// Request is the body of POST /quote.
type Request struct {
	Client        ClientInfo `json:"client"`
	Currency      string     `json:"currency"` // SAR, USD or EUR
	Items         []LineItem `json:"items"`
	DeliveryTerms string     `json:"delivery_terms,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// PricedItem is a line item extended with the service-computed total:
// round(qty * unit_cost * (1 + margin_pct/100), 2).
type PricedItem struct {
	LineItem
	LineTotal float64 `json:"line_total"`
}

// Result is the service's response to POST /quote and GET /quote/{id}.
// All monetary derivations (line totals, tax rate, tax amount) are owned
// by the service and consumed read-only here.
type Result struct {
	QuotationID string       `json:"quotation_id"`
	Client      ClientInfo   `json:"client"`
	Currency    string       `json:"currency"`
	Items       []PricedItem `json:"items"`
	Subtotal    float64      `json:"subtotal"`
	TaxRate     float64      `json:"tax_rate"`
	TaxAmount   float64      `json:"tax_amount"`
	Total       float64      `json:"total"`
	EmailDraft  string       `json:"email_draft"`
}
