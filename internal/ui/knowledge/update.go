// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rfq-console/internal/lifecycle"
	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/rag"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the knowledge-base composer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case lifecycle.ResultMsg[*rag.QueryResult]:
		return m.resolve(msg)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleKey routes one keystroke.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		// Toggle between the query field and the preset list.
		m.onPresets = !m.onPresets
		if m.onPresets {
			m.queryInput.Blur()
			m.presetCursor = 0
		} else {
			m.queryInput.Focus()
		}
		return m, nil

	case "ctrl+l":
		m.langIndex = (m.langIndex + 1) % len(quote.Languages)
		return m, nil

	case "ctrl+y":
		m.copyAnswer()
		return m, nil
	case "ctrl+s":
		m.saveResult()
		return m, nil

	case "up":
		if m.onPresets && m.presetCursor > 0 {
			m.presetCursor--
			return m, nil
		}
	case "down":
		if m.onPresets && m.presetCursor < len(rag.Presets)-1 {
			m.presetCursor++
			return m, nil
		}

	case "enter":
		if m.onPresets {
			// Selecting a preset fills the form and submits in one action;
			// text and language always travel together.
			m.applyPreset(rag.Presets[m.presetCursor])
			m.onPresets = false
			m.queryInput.Focus()
			return m.submit()
		}
		return m.submit()
	}

	if m.onPresets {
		return m, nil
	}
	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit starts a query. A blank query is rejected before any request is
// built, and an in-flight query blocks resubmits.
func (m Model) submit() (Model, tea.Cmd) {
	if !m.canSubmit() {
		return m, nil
	}

	req := rag.NewQueryRequest(m.queryInput.Value(), m.Language())
	cmd := m.controller.Submit(req)
	if cmd == nil {
		return m, nil
	}

	m.pendingQuery = req.Query
	m.pendingLanguage = req.Language
	return m, tea.Batch(cmd, m.spinner.Start())
}

// resolve applies a query outcome. One notification per applied terminal
// transition; stale outcomes change nothing.
func (m Model) resolve(msg lifecycle.ResultMsg[*rag.QueryResult]) (Model, tea.Cmd) {
	state, applied := m.controller.Resolve(msg)
	if !applied {
		return m, nil
	}
	m.spinner.Stop()

	if state.Phase == lifecycle.Failed {
		m.channel.Error(state.FailMessage)
		return m, nil
	}
	m.lastQuery = m.pendingQuery
	m.lastLanguage = m.pendingLanguage
	m.channel.Success("Answer received")
	return m, nil
}
