// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/rfq-console/internal/api"
	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/ui/styles"
)

func newTestModel() Model {
	return New(styles.NewTheme(), api.NewClient("http://127.0.0.1:1"))
}

func TestUpdate_HealthSuccessMarksServiceUp(t *testing.T) {
	m := newTestModel()

	m, _ = m.Update(healthMsg{service: "quotation", payload: json.RawMessage(`{"status":"ok"}`)})

	if !m.quotation.checked || !m.quotation.up {
		t.Errorf("quotation status = %+v, want checked and up", m.quotation)
	}
	if m.rag.checked {
		t.Error("rag status must be independent of the quotation check")
	}
}

func TestUpdate_CombinedHealthRoutedSeparately(t *testing.T) {
	m := newTestModel()

	m, _ = m.Update(healthMsg{service: "combined", payload: json.RawMessage(`{"status":"ok"}`)})

	if !m.combined.up {
		t.Error("combined health must mark the gateway up")
	}
	if m.quotation.checked || m.rag.checked {
		t.Error("per-service statuses must stay untouched")
	}
}

func TestUpdate_HealthFailureMarksServiceDown(t *testing.T) {
	m := newTestModel()

	m, _ = m.Update(healthMsg{
		service: "rag",
		err:     &api.RequestError{Kind: api.NoResponse, Message: api.NoResponseMessage},
	})

	if !m.rag.checked || m.rag.up {
		t.Errorf("rag status = %+v, want checked and down", m.rag)
	}
	if m.rag.err != api.NoResponseMessage {
		t.Errorf("rag err = %q", m.rag.err)
	}
}

func TestUpdate_StatsErrorThenRecovery(t *testing.T) {
	m := newTestModel()

	m, _ = m.Update(statsMsg{err: errors.New("boom")})
	if m.statsErr == "" {
		t.Error("stats error must be recorded")
	}

	m, _ = m.Update(statsMsg{payload: json.RawMessage(`{"documents":12}`)})
	if m.statsErr != "" {
		t.Error("stats error must clear on recovery")
	}
	if string(m.stats) != `{"documents":12}` {
		t.Errorf("stats payload = %s", m.stats)
	}
}

func TestView_RendersQuotationList(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(quotesMsg{quotes: []quote.Result{
		{QuotationID: "Q-2024-0001", Client: quote.ClientInfo{Name: "Gulf Engineering"}, Currency: "SAR", Total: 414},
	}})

	out := m.View()
	if !strings.Contains(out, "Q-2024-0001") {
		t.Errorf("view missing quotation id:\n%s", out)
	}
	if !strings.Contains(out, "SAR 414.00") {
		t.Errorf("view missing formatted total:\n%s", out)
	}
}

func TestView_OpaquePayloadRenderedVerbatim(t *testing.T) {
	m := newTestModel()
	// Field names unknown to the client must survive display untouched.
	m, _ = m.Update(statsMsg{payload: json.RawMessage(`{"exotic_field":"kept"}`)})

	if !strings.Contains(m.View(), "exotic_field") {
		t.Error("unknown stats fields must be displayed as received")
	}
}

func TestIndentJSON_InvalidPayloadFallsBack(t *testing.T) {
	raw := json.RawMessage("not-json")
	if got := indentJSON(raw); got != "not-json" {
		t.Errorf("indentJSON fallback = %q", got)
	}
}
