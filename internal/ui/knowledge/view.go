// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"fmt"
	"strings"

	"github.com/jeranaias/rfq-console/internal/lifecycle"
	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/rag"
	"github.com/jeranaias/rfq-console/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the query form, the preset list, and the answer panel.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.viewQueryForm())
	sections = append(sections, m.viewPresets())

	if m.Loading() {
		sections = append(sections, m.spinner.View())
	}
	if result, ok := m.Result(); ok {
		sections = append(sections, m.viewAnswer(result))
	}

	return m.theme.Container.Render(strings.Join(sections, "\n\n"))
}

// viewQueryForm renders the query input and language toggle.
func (m Model) viewQueryForm() string {
	var b strings.Builder
	b.WriteString(m.theme.SectionTitle.Render("Knowledge Base") + "\n")
	b.WriteString(m.queryInput.View() + "\n")

	langLabel := m.theme.FieldLabel.Render("Language ")
	var langs []string
	for i, lang := range quote.Languages {
		if i == m.langIndex {
			langs = append(langs, m.theme.FieldFocused.Render(lang))
			continue
		}
		langs = append(langs, m.theme.PresetItem.Render(lang))
	}
	b.WriteString(langLabel + strings.Join(langs, " "))
	if m.showHints {
		b.WriteString("  " + m.theme.ShortcutDesc.Render("ctrl+l toggle"))
	}

	return b.String()
}

// viewPresets renders the quick-query list.
func (m Model) viewPresets() string {
	var b strings.Builder
	b.WriteString(m.theme.SectionTitle.Render("Quick Queries"))
	if m.showHints {
		b.WriteString("  " + m.theme.ShortcutDesc.Render("tab to focus, enter to run"))
	}
	b.WriteString("\n")

	for i, p := range rag.Presets {
		label := fmt.Sprintf("%s  (%s)", p.Text, p.Language)
		if m.onPresets && i == m.presetCursor {
			b.WriteString(m.theme.PresetActive.Render(label) + "\n")
			continue
		}
		b.WriteString(m.theme.PresetItem.Render(label) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// viewAnswer renders the answer panel: badge, answer text (right-aligned
// for Arabic), sources, and timing metrics.
func (m Model) viewAnswer(result *rag.QueryResult) string {
	var b strings.Builder

	band := rag.ConfidenceBand(result.Confidence)
	badge := m.theme.ConfidenceBadge(band).Render(
		fmt.Sprintf(" %s %.0f%% ", strings.ToUpper(string(band)), result.Confidence),
	)
	b.WriteString(m.theme.ResultTitle.Render("Answer") + "  " + badge + "\n\n")

	b.WriteString(m.renderAnswerText(result.Answer) + "\n\n")

	if len(result.Sources) > 0 {
		b.WriteString(m.theme.ResultLabel.Render("Sources") + "\n")
		for i, source := range result.Sources {
			b.WriteString(m.theme.SourceItem.Render(fmt.Sprintf("%d. %s", i+1, source)) + "\n")
		}
		b.WriteString("\n")
	}

	metrics := fmt.Sprintf("response %s, processing %s",
		util.FormatMillis(result.ResponseTime),
		util.FormatMillis(result.ProcessingTime),
	)
	b.WriteString(m.theme.MetricsLine.Render(metrics) + "\n")

	if m.showHints {
		b.WriteString(m.theme.ShortcutKey.Render("ctrl+y") + m.theme.ShortcutDesc.Render(" copy answer  ") +
			m.theme.ShortcutKey.Render("ctrl+s") + m.theme.ShortcutDesc.Render(" save document"))
	}

	if m.controller.State().Phase == lifecycle.Failed {
		b.WriteString("\n" + m.theme.FieldError.Render("Last query failed; showing previous answer"))
	}

	return m.theme.AnswerBox.Render(b.String())
}

// renderAnswerText wraps the answer to the panel width and right-aligns
// every line when the submitted language reads right-to-left. Direction
// follows the query's language field, not the answer's script.
func (m Model) renderAnswerText(answer string) string {
	width := m.answerWidth()
	wrapped := util.WrapWords(answer, width)

	if !rag.IsRTL(m.lastLanguage) {
		return wrapped
	}

	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = util.PadLeftWidth(line, width)
	}
	return strings.Join(lines, "\n")
}

// answerWidth is the usable text width inside the answer panel.
func (m Model) answerWidth() int {
	width := m.width - 10
	if width < 20 {
		width = 60
	}
	return width
}
