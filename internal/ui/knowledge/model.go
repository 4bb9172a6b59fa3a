// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package knowledge implements the knowledge-base query view: the query
// form with language toggle and presets, the submission lifecycle, and
// the answer panel with confidence badge and RTL-aware layout.
package knowledge

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rfq-console/internal/api"
	"github.com/jeranaias/rfq-console/internal/config"
	"github.com/jeranaias/rfq-console/internal/export"
	"github.com/jeranaias/rfq-console/internal/lifecycle"
	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/rag"
	"github.com/jeranaias/rfq-console/internal/ui/components"
	"github.com/jeranaias/rfq-console/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the knowledge-base query composer.
type Model struct {
	theme     *styles.Theme
	channel   *components.Channel
	spinner   components.Spinner
	download  string
	showHints bool

	queryInput   textinput.Model
	langIndex    int // index into quote.Languages
	presetCursor int // highlighted preset, -1 when the list is not focused
	onPresets    bool

	// The (query, language) pair travels with the submission: pending
	// while in flight, promoted to last on an applied success. A failed
	// resubmission therefore never mislabels the answer still on screen.
	pendingQuery    string
	pendingLanguage string
	lastQuery       string
	lastLanguage    string

	controller *lifecycle.Controller[rag.QueryRequest, *rag.QueryResult]

	width  int
	height int
}

// New creates a knowledge-base composer backed by the given API client.
func New(theme *styles.Theme, client *api.Client, channel *components.Channel, downloadDir string) Model {
	query := textinput.New()
	query.Placeholder = "Ask the knowledge base..."
	query.CharLimit = 500
	query.Focus()

	ui := config.Global().UI
	spinner := components.NewSpinner("Searching knowledge base")
	spinner.SetShowTimer(ui.SpinnerTimer)

	return Model{
		theme:      theme,
		channel:    channel,
		spinner:    spinner,
		download:   downloadDir,
		showHints:  ui.ShowHints,
		queryInput: query,
		controller: lifecycle.NewController(func(ctx context.Context, req rag.QueryRequest) (*rag.QueryResult, error) {
			return client.Query(ctx, req)
		}),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Loading reports whether a query is in flight.
func (m Model) Loading() bool {
	return m.controller.State().Loading()
}

// Result returns the last successful answer, if any.
func (m Model) Result() (*rag.QueryResult, bool) {
	s := m.controller.State()
	return s.Result, s.HasResult
}

// Language returns the currently selected language code.
func (m Model) Language() string {
	return quote.Languages[m.langIndex]
}

// applyPreset sets query text and language together. The pair is atomic:
// there is no code path that sets one without the other.
func (m *Model) applyPreset(p rag.Preset) {
	m.queryInput.SetValue(p.Text)
	m.queryInput.CursorEnd()
	for i, lang := range quote.Languages {
		if lang == p.Language {
			m.langIndex = i
			break
		}
	}
}

// copyAnswer puts the current answer text on the system clipboard.
func (m Model) copyAnswer() {
	result, ok := m.Result()
	if !ok {
		return
	}
	if err := clipboard.WriteAll(result.Answer); err != nil {
		m.channel.Error("Copy failed: " + err.Error())
		return
	}
	m.channel.Success("Answer copied")
}

// saveResult writes the current answer as a download document.
func (m Model) saveResult() {
	result, ok := m.Result()
	if !ok {
		return
	}
	doc := export.RAGQuery(m.lastQuery, m.lastLanguage, *result, time.Now())
	path, err := export.Write(doc, m.download)
	if err != nil {
		m.channel.Error("Save failed: " + err.Error())
		return
	}
	m.channel.Success("Saved " + path)
}

// canSubmit reports whether the trimmed query is non-empty.
func (m Model) canSubmit() bool {
	return strings.TrimSpace(m.queryInput.Value()) != ""
}
