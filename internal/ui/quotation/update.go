// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quotation

import (
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rfq-console/internal/lifecycle"
	"github.com/jeranaias/rfq-console/internal/quote"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the quotation composer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case lifecycle.ResultMsg[*quote.Result]:
		return m.resolve(msg)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleKey routes one keystroke.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.moveFocus(1), nil
	case "shift+tab", "up":
		return m.moveFocus(-1), nil

	case "ctrl+n":
		return m.addItem(), nil
	case "ctrl+x":
		return m.removeItem(), nil

	case "ctrl+y":
		m.copyEmailDraft()
		return m, nil
	case "ctrl+s":
		m.saveResult()
		return m, nil

	case "enter":
		if m.focus == m.focusSubmit() {
			return m.submit()
		}
		return m.moveFocus(1), nil

	case "left", "right":
		if moved, ok := m.cycleChoice(msg.String() == "right"); ok {
			return moved, nil
		}
	}

	return m.updateFocusedInput(msg)
}

// moveFocus shifts focus by delta, wrapping around the ring.
func (m Model) moveFocus(delta int) Model {
	count := m.focusCount()
	m.focus = (m.focus + delta + count) % count
	m.syncFocus()
	return m
}

// syncFocus focuses the input behind the current position and blurs the
// rest, loading the item editor when an item cell is focused.
func (m *Model) syncFocus() {
	m.nameInput.Blur()
	m.contactInput.Blur()
	m.deliveryInput.Blur()
	m.notesInput.Blur()
	m.itemEditor.Blur()

	switch m.focus {
	case focusClientName:
		m.nameInput.Focus()
	case focusClientContact:
		m.contactInput.Focus()
	case m.focusDelivery():
		m.deliveryInput.Focus()
	case m.focusNotes():
		m.notesInput.Focus()
	default:
		if row, field, ok := m.itemCell(); ok {
			m.itemEditor.SetValue(itemFieldValue(m.items.At(row), field))
			m.itemEditor.CursorEnd()
			m.itemEditor.Focus()
		}
	}
}

// cycleChoice advances the language or currency selector when one of
// them is focused. ok is false otherwise so arrow keys fall through to
// text inputs.
func (m Model) cycleChoice(forward bool) (Model, bool) {
	step := 1
	if !forward {
		step = -1
	}
	switch m.focus {
	case focusClientLang:
		n := len(quote.Languages)
		m.langIndex = (m.langIndex + step + n) % n
		return m, true
	case focusCurrency:
		n := len(quote.Currencies)
		m.currencyIndex = (m.currencyIndex + step + n) % n
		return m, true
	}
	return m, false
}

// updateFocusedInput forwards a keystroke to whichever input is focused.
// Item cells commit on every keystroke; the list keeps the last valid
// value when the raw text does not parse.
func (m Model) updateFocusedInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusClientName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusClientContact:
		m.contactInput, cmd = m.contactInput.Update(msg)
	case m.focusDelivery():
		m.deliveryInput, cmd = m.deliveryInput.Update(msg)
	case m.focusNotes():
		m.notesInput, cmd = m.notesInput.Update(msg)
	default:
		if row, field, ok := m.itemCell(); ok {
			m.itemEditor, cmd = m.itemEditor.Update(msg)
			m.items.Update(row, field, m.itemEditor.Value())
		}
	}
	return m, cmd
}

// =============================================================================
// ITEM ACTIONS
// =============================================================================

// addItem appends a default line item and moves focus to its SKU cell.
func (m Model) addItem() Model {
	row := m.items.Add()
	m.focus = focusFirstItem + row*itemFieldCount
	m.syncFocus()
	return m
}

// removeItem deletes the focused item's row. With focus outside the grid
// or a single remaining row this is a no-op.
func (m Model) removeItem() Model {
	row, _, ok := m.itemCell()
	if !ok || m.items.Len() <= 1 {
		return m
	}
	m.items.Remove(row)
	if row >= m.items.Len() {
		row = m.items.Len() - 1
	}
	m.focus = focusFirstItem + row*itemFieldCount
	m.syncFocus()
	return m
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit validates the form and starts a submission. Validation failures
// never reach the network; a request already in flight blocks resubmits.
func (m Model) submit() (Model, tea.Cmd) {
	req := m.buildRequest()

	var verrs quote.ValidationErrors
	if err := quote.Validate(req); err != nil {
		errors.As(err, &verrs)
		m.errors = verrs
		return m, nil
	}
	m.errors = nil

	cmd := m.controller.Submit(req)
	if cmd == nil {
		// Already submitting.
		return m, nil
	}
	return m, tea.Batch(cmd, m.spinner.Start())
}

// resolve applies a submission outcome. Exactly one notification goes
// out per applied terminal transition; stale outcomes change nothing.
func (m Model) resolve(msg lifecycle.ResultMsg[*quote.Result]) (Model, tea.Cmd) {
	state, applied := m.controller.Resolve(msg)
	if !applied {
		return m, nil
	}
	m.spinner.Stop()

	if state.Phase == lifecycle.Failed {
		m.channel.Error(state.FailMessage)
		return m, nil
	}
	m.channel.Success("Quotation " + state.Result.QuotationID + " created")
	return m, nil
}

// =============================================================================
// RESULT ACTIONS
// =============================================================================

// copyEmailDraft puts the drafted email on the system clipboard.
func (m Model) copyEmailDraft() {
	result, ok := m.Result()
	if !ok {
		return
	}
	if err := clipboard.WriteAll(result.EmailDraft); err != nil {
		m.channel.Error("Copy failed: " + err.Error())
		return
	}
	m.channel.Success("Email draft copied")
}

// itemFieldValue renders one item field as its raw form text.
func itemFieldValue(item quote.LineItem, field quote.ItemField) string {
	switch field {
	case quote.FieldSKU:
		return item.SKU
	case quote.FieldQty:
		return formatInt(item.Qty)
	case quote.FieldUnitCost:
		return formatFloat(item.UnitCost)
	case quote.FieldMarginPct:
		return formatFloat(item.MarginPct)
	}
	return ""
}
