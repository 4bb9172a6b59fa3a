// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export serializes quotation and knowledge-base results into
// flat text documents for download and clipboard use.
//
// The formats are a contract: they are deterministic, byte-for-byte
// reproducible for the same input, and other tooling may parse them. Any
// change to the layouts here is a breaking change.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/rag"
	"github.com/jeranaias/rfq-console/internal/util"
)

// Document is a ready-to-save export artifact.
type Document struct {
	Filename string
	Content  string
}

// Write saves the document under dir and returns the full path. The
// write is atomic so a crash never leaves a truncated artifact.
func Write(doc Document, dir string) (string, error) {
	path := filepath.Join(dir, doc.Filename)
	if err := util.AtomicWriteFile(path, []byte(doc.Content), 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// formatNumber renders a float the way the services' JSON does: no
// exponent, no trailing zeros ("360", "50.5", "5270.4"). Keeping the
// service's own rendering is what makes the documents reproducible from
// a stored result.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// =============================================================================
// QUOTATION DOCUMENT
// =============================================================================

// Quotation renders a priced quotation as a flat text document:
// header fields, one line per item, totals, then the email draft
// verbatim.
func Quotation(result quote.Result) Document {
	var b strings.Builder

	b.WriteString("Quotation ID: " + result.QuotationID + "\n")
	b.WriteString("Client: " + result.Client.Name + "\n")
	b.WriteString("Contact: " + result.Client.Contact + "\n")
	b.WriteString("Currency: " + result.Currency + "\n\n")

	b.WriteString("Items:\n")
	lines := make([]string, len(result.Items))
	for i, item := range result.Items {
		lines[i] = fmt.Sprintf("%s - Qty: %d - Unit Cost: %s - Margin: %s%% - Total: %s",
			item.SKU,
			item.Qty,
			formatNumber(item.UnitCost),
			formatNumber(item.MarginPct),
			formatNumber(item.LineTotal),
		)
	}
	b.WriteString(strings.Join(lines, "\n") + "\n\n")

	b.WriteString("Subtotal: " + formatNumber(result.Subtotal) + "\n")
	b.WriteString("Tax: " + formatNumber(result.TaxAmount) + "\n")
	b.WriteString("Total: " + formatNumber(result.Total) + "\n\n")

	b.WriteString("Email Draft:\n")
	b.WriteString(result.EmailDraft)

	return Document{
		Filename: "quotation-" + result.QuotationID + ".txt",
		Content:  b.String(),
	}
}

// =============================================================================
// KNOWLEDGE-BASE DOCUMENT
// =============================================================================

// RAGQuery renders a knowledge-base result as a flat text document with a
// 1-indexed source list and the performance metrics. generatedAt is an
// explicit argument so the function stays pure; callers pass time.Now()
// at download time.
func RAGQuery(query, language string, result rag.QueryResult, generatedAt time.Time) Document {
	var b strings.Builder

	b.WriteString("Query: " + query + "\n")
	b.WriteString("Language: " + language + "\n")
	b.WriteString("Confidence: " + formatNumber(result.Confidence) + "%\n\n")

	b.WriteString("Answer:\n" + result.Answer + "\n\n")

	b.WriteString("Sources:\n")
	lines := make([]string, len(result.Sources))
	for i, source := range result.Sources {
		lines[i] = fmt.Sprintf("%d. %s", i+1, source)
	}
	b.WriteString(strings.Join(lines, "\n") + "\n\n")

	b.WriteString("Performance Metrics:\n")
	b.WriteString(fmt.Sprintf("- Response Time: %dms\n", result.ResponseTime))
	b.WriteString(fmt.Sprintf("- Processing Time: %dms\n", result.ProcessingTime))
	b.WriteString("- Generated at: " + generatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"))

	return Document{
		Filename: fmt.Sprintf("rag-query-%d.txt", generatedAt.UnixMilli()),
		Content:  b.String(),
	}
}

// =============================================================================
// DOWNLOAD DIRECTORY
// =============================================================================

// DefaultDir is where download artifacts land when the config does not
// say otherwise.
func DefaultDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Downloads")
	}
	return "."
}
