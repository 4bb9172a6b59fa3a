// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rfq-console/internal/lifecycle"
	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the composer: form, lifecycle indicator, and the result
// panel once a quotation exists.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.viewClientSection())
	sections = append(sections, m.viewItemsSection())
	sections = append(sections, m.viewTrailingFields())
	sections = append(sections, m.viewSubmit())

	if result, ok := m.Result(); ok {
		sections = append(sections, m.viewResult(result))
	}

	return m.theme.Container.Render(strings.Join(sections, "\n\n"))
}

// viewClientSection renders the client identity fields.
func (m Model) viewClientSection() string {
	var b strings.Builder
	b.WriteString(m.theme.SectionTitle.Render("Client") + "\n")

	b.WriteString(m.fieldRow("Name", m.nameInput.View(), "client.name", m.focus == focusClientName))
	b.WriteString(m.fieldRow("Contact", m.contactInput.View(), "client.contact", m.focus == focusClientContact))
	b.WriteString(m.fieldRow("Language", m.choiceView(quote.Languages, m.langIndex, m.focus == focusClientLang), "client.lang", m.focus == focusClientLang))
	b.WriteString(m.fieldRow("Currency", m.choiceView(quote.Currencies, m.currencyIndex, m.focus == focusCurrency), "currency", m.focus == focusCurrency))

	return strings.TrimRight(b.String(), "\n")
}

// viewItemsSection renders the line-item grid.
func (m Model) viewItemsSection() string {
	var b strings.Builder
	b.WriteString(m.theme.SectionTitle.Render("Items"))
	if m.showHints {
		b.WriteString("  " + m.theme.ShortcutDesc.Render("ctrl+n add, ctrl+x remove"))
	}
	b.WriteString("\n")

	header := fmt.Sprintf("%-16s %-8s %-12s %-10s", "SKU", "Qty", "Unit Cost", "Margin %")
	b.WriteString(m.theme.FieldLabel.Render(header) + "\n")

	focusRow, focusField, onGrid := 0, quote.ItemField(""), false
	if r, f, ok := m.itemCell(); ok {
		focusRow, focusField, onGrid = r, f, true
	}

	for row, item := range m.items.Items() {
		cells := make([]string, itemFieldCount)
		for col, field := range itemFields {
			value := itemFieldValue(item, field)
			if onGrid && row == focusRow && field == focusField {
				value = m.itemEditor.View()
				cells[col] = m.theme.ItemRowActive.Render(padCell(value, cellWidth(col)))
				continue
			}
			cells[col] = m.theme.ItemRow.Render(padCell(value, cellWidth(col)))
		}
		b.WriteString(strings.Join(cells, " ") + "\n")

		for _, field := range itemFields {
			path := fmt.Sprintf("items[%d].%s", row, field)
			if fe, ok := m.errors.ByField(path); ok {
				b.WriteString(m.theme.FieldError.Render("  "+fe.Message) + "\n")
			}
		}
	}

	if fe, ok := m.errors.ByField("items"); ok {
		b.WriteString(m.theme.FieldError.Render(fe.Message) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// viewTrailingFields renders delivery terms and notes.
func (m Model) viewTrailingFields() string {
	var b strings.Builder
	b.WriteString(m.fieldRow("Delivery", m.deliveryInput.View(), "", m.focus == m.focusDelivery()))
	b.WriteString(m.fieldRow("Notes", m.notesInput.View(), "", m.focus == m.focusNotes()))
	return strings.TrimRight(b.String(), "\n")
}

// viewSubmit renders the submit control and the in-flight spinner.
func (m Model) viewSubmit() string {
	label := " Generate Quotation "
	var control string
	switch {
	case m.Loading():
		control = m.theme.SubmitDisabled.Render(label) + "  " + m.spinner.View()
	case m.focus == m.focusSubmit():
		control = m.theme.SubmitReady.Render(label)
		if m.showHints {
			control += "  " + m.theme.ShortcutDesc.Render("enter to submit")
		}
	default:
		control = m.theme.SubmitDisabled.Render(label)
	}
	return control
}

// viewResult renders the priced quotation panel.
func (m Model) viewResult(result *quote.Result) string {
	var b strings.Builder

	b.WriteString(m.theme.ResultTitle.Render("Quotation "+result.QuotationID) + "\n\n")

	for _, item := range result.Items {
		line := fmt.Sprintf("%-16s x%-5d %s",
			util.TruncateWidth(item.SKU, 16),
			item.Qty,
			util.FormatMoney(item.LineTotal, result.Currency),
		)
		b.WriteString(m.theme.ResultValue.Render(line) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.theme.ResultLabel.Render("Subtotal  ") + m.theme.ResultValue.Render(util.FormatMoney(result.Subtotal, result.Currency)) + "\n")
	taxLabel := fmt.Sprintf("Tax (%s)  ", util.FormatPercent(result.TaxRate))
	b.WriteString(m.theme.ResultLabel.Render(taxLabel) + m.theme.ResultValue.Render(util.FormatMoney(result.TaxAmount, result.Currency)) + "\n")
	b.WriteString(m.theme.TotalsLine.Render("Total     "+util.FormatMoney(result.Total, result.Currency)) + "\n\n")

	b.WriteString(m.theme.ResultLabel.Render("Email Draft") + "\n")
	b.WriteString(m.theme.EmailDraft.Render(result.EmailDraft) + "\n\n")

	if m.showHints {
		hints := m.theme.ShortcutKey.Render("ctrl+y") + m.theme.ShortcutDesc.Render(" copy draft  ") +
			m.theme.ShortcutKey.Render("ctrl+s") + m.theme.ShortcutDesc.Render(" save document")
		b.WriteString(hints)
	}

	// A failed resubmission keeps this panel on screen; the failure
	// itself surfaced through the notification channel.
	if m.controller.State().Phase == lifecycle.Failed {
		b.WriteString("\n" + m.theme.FieldError.Render("Last submission failed; showing previous result"))
	}

	return m.theme.ResultBox.Render(b.String())
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// fieldRow renders one labeled form row with its inline error, if any.
func (m Model) fieldRow(label, input, errPath string, focused bool) string {
	labelStyle := m.theme.FieldLabel
	if focused {
		labelStyle = m.theme.FieldFocused
	}
	row := labelStyle.Render(fmt.Sprintf("%-10s", label)) + input + "\n"
	if errPath != "" {
		if fe, ok := m.errors.ByField(errPath); ok {
			row += m.theme.FieldError.Render("  "+fe.Message) + "\n"
		}
	}
	return row
}

// choiceView renders a one-of selector, highlighting the active choice.
func (m Model) choiceView(choices []string, active int, focused bool) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		switch {
		case i == active && focused:
			parts[i] = m.theme.PresetActive.Render(c)
		case i == active:
			parts[i] = m.theme.FieldFocused.Render(c)
		default:
			parts[i] = m.theme.PresetItem.Render(c)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// cellWidth returns the display width of one item-grid column.
func cellWidth(col int) int {
	widths := [itemFieldCount]int{16, 8, 12, 10}
	return widths[col]
}

// padCell pads a cell value to its column width, cell-aware for
// non-ASCII SKUs.
func padCell(s string, width int) string {
	s = util.TruncateWidth(s, width)
	gap := width - util.StringWidth(s)
	if gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
