// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard implements the service dashboard: liveness of the
// two backend services, knowledge-base statistics, and the list of
// quotations generated so far. Payloads other than the quotation list
// are opaque and rendered as received.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rfq-console/internal/api"
	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/ui/styles"
	"github.com/jeranaias/rfq-console/internal/util"
)

// PollInterval is how often the dashboard refreshes itself while active.
const PollInterval = 10 * time.Second

// fetchTimeout bounds one polling round. Shorter than the composer
// timeout: a slow health endpoint should read as down, not hang a poll.
const fetchTimeout = 5 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// healthMsg carries one liveness payload.
type healthMsg struct {
	service string // "combined", "quotation" or "rag"
	payload json.RawMessage
	err     error
}

// statsMsg carries the knowledge-base statistics payload.
type statsMsg struct {
	payload json.RawMessage
	err     error
}

// quotesMsg carries the quotation list.
type quotesMsg struct {
	quotes []quote.Result
	err    error
}

// pollMsg triggers the next refresh round.
type pollMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// serviceStatus is the last observed state of one backend service.
type serviceStatus struct {
	up      bool
	checked bool
	payload json.RawMessage
	err     string
}

// Model is the dashboard view.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	combined  serviceStatus
	quotation serviceStatus
	rag       serviceStatus

	stats    json.RawMessage
	statsErr string

	quotes    []quote.Result
	quotesErr string

	lastRefresh time.Time

	width  int
	height int
}

// New creates a dashboard backed by the given API client.
func New(theme *styles.Theme, client *api.Client) Model {
	return Model{theme: theme, client: client}
}

// Init starts the first refresh and the polling loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), pollTick())
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// pollTick schedules the next poll round.
func pollTick() tea.Cmd {
	return tea.Tick(PollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// refresh fetches every dashboard panel concurrently.
func (m Model) refresh() tea.Cmd {
	client := m.client
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			payload, err := client.Health(ctx)
			return healthMsg{service: "combined", payload: payload, err: err}
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			payload, err := client.HealthQuotation(ctx)
			return healthMsg{service: "quotation", payload: payload, err: err}
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			payload, err := client.HealthRAG(ctx)
			return healthMsg{service: "rag", payload: payload, err: err}
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			payload, err := client.Stats(ctx)
			return statsMsg{payload: payload, err: err}
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			quotes, err := client.ListQuotes(ctx)
			return quotesMsg{quotes: quotes, err: err}
		},
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.refresh()
		}

	case pollMsg:
		return m, tea.Batch(m.refresh(), pollTick())

	case healthMsg:
		status := serviceStatus{checked: true}
		if msg.err != nil {
			status.err = api.MessageOf(msg.err)
		} else {
			status.up = true
			status.payload = msg.payload
		}
		switch msg.service {
		case "combined":
			m.combined = status
		case "quotation":
			m.quotation = status
		default:
			m.rag = status
		}
		m.lastRefresh = time.Now()
		return m, nil

	case statsMsg:
		if msg.err != nil {
			m.statsErr = api.MessageOf(msg.err)
			return m, nil
		}
		m.stats = msg.payload
		m.statsErr = ""
		return m, nil

	case quotesMsg:
		if msg.err != nil {
			m.quotesErr = api.MessageOf(msg.err)
			return m, nil
		}
		m.quotes = msg.quotes
		m.quotesErr = ""
		return m, nil
	}

	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the dashboard panels.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.viewHealth())
	sections = append(sections, m.viewStats())
	sections = append(sections, m.viewQuotes())

	footer := m.theme.ShortcutKey.Render("r") + m.theme.ShortcutDesc.Render(" refresh")
	if !m.lastRefresh.IsZero() {
		footer += m.theme.ShortcutDesc.Render("  last: " + util.FormatTimestamp(m.lastRefresh))
	}
	sections = append(sections, footer)

	return m.theme.Container.Render(strings.Join(sections, "\n\n"))
}

// viewHealth renders both service cards.
func (m Model) viewHealth() string {
	var b strings.Builder
	b.WriteString(m.theme.SectionTitle.Render("Services") + "\n")
	b.WriteString(m.serviceLine("Gateway", m.combined) + "\n")
	b.WriteString(m.serviceLine("Quotation", m.quotation) + "\n")
	b.WriteString(m.serviceLine("Knowledge Base", m.rag))
	return b.String()
}

// serviceLine renders one service's status line.
func (m Model) serviceLine(name string, s serviceStatus) string {
	label := fmt.Sprintf("%-16s", name)
	switch {
	case !s.checked:
		return m.theme.FieldLabel.Render(label) + m.theme.ShortcutDesc.Render("checking...")
	case s.up:
		line := m.theme.FieldLabel.Render(label) + m.theme.HealthUp.Render(styles.StatusIndicators.Success+" up")
		if len(s.payload) > 0 {
			line += "  " + m.theme.RawPayload.Render(util.TruncateWidth(compactJSON(s.payload), 60))
		}
		return line
	default:
		return m.theme.FieldLabel.Render(label) + m.theme.HealthDown.Render(styles.StatusIndicators.Error+" down") +
			"  " + m.theme.RawPayload.Render(util.TruncateWidth(s.err, 60))
	}
}

// viewStats renders the knowledge-base statistics payload verbatim.
func (m Model) viewStats() string {
	var b strings.Builder
	b.WriteString(m.theme.SectionTitle.Render("Knowledge Base Stats") + "\n")

	switch {
	case m.statsErr != "":
		b.WriteString(m.theme.FieldError.Render(m.statsErr))
	case len(m.stats) == 0:
		b.WriteString(m.theme.ShortcutDesc.Render("no data yet"))
	default:
		b.WriteString(m.theme.RawPayload.Render(indentJSON(m.stats)))
	}
	return m.theme.DashboardCard.Render(b.String())
}

// viewQuotes renders the recent quotation list.
func (m Model) viewQuotes() string {
	var b strings.Builder
	b.WriteString(m.theme.SectionTitle.Render("Quotations") + "\n")

	switch {
	case m.quotesErr != "":
		b.WriteString(m.theme.FieldError.Render(m.quotesErr))
	case len(m.quotes) == 0:
		b.WriteString(m.theme.ShortcutDesc.Render("none yet"))
	default:
		for _, q := range m.quotes {
			line := fmt.Sprintf("%-14s %-24s %s",
				q.QuotationID,
				util.TruncateWidth(q.Client.Name, 24),
				util.FormatMoney(q.Total, q.Currency),
			)
			b.WriteString(m.theme.ResultValue.Render(line) + "\n")
		}
	}
	return m.theme.DashboardCard.Render(strings.TrimRight(b.String(), "\n"))
}

// compactJSON renders a payload on one line.
func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// indentJSON pretty-prints a payload without interpreting it.
func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
