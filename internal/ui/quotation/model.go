// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package quotation implements the quotation composer view: the client
// and line-item form, submission lifecycle, and the priced result panel
// with copy and download actions.
package quotation

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rfq-console/internal/api"
	"github.com/jeranaias/rfq-console/internal/config"
	"github.com/jeranaias/rfq-console/internal/export"
	"github.com/jeranaias/rfq-console/internal/lifecycle"
	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/ui/components"
	"github.com/jeranaias/rfq-console/internal/ui/styles"
)

// =============================================================================
// FOCUS LAYOUT
// =============================================================================

// The form is one linear focus ring: fixed client fields, then four
// cells per line item, then the trailing fields and the submit control.
const (
	focusClientName = iota
	focusClientContact
	focusClientLang
	focusCurrency
	focusFirstItem // item cells start here, itemFieldCount per row
)

const itemFieldCount = 4

// itemFields maps a cell offset within a row to its field.
var itemFields = [itemFieldCount]quote.ItemField{
	quote.FieldSKU,
	quote.FieldQty,
	quote.FieldUnitCost,
	quote.FieldMarginPct,
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the quotation composer.
type Model struct {
	theme     *styles.Theme
	channel   *components.Channel
	spinner   components.Spinner
	download  string // target directory for saved documents
	showHints bool

	// Form state
	nameInput     textinput.Model
	contactInput  textinput.Model
	deliveryInput textinput.Model
	notesInput    textinput.Model
	langIndex     int // index into quote.Languages
	currencyIndex int // index into quote.Currencies
	items         *quote.ItemList
	itemEditor    textinput.Model // edits the focused item cell
	focus         int
	errors        quote.ValidationErrors

	// Submission lifecycle
	controller *lifecycle.Controller[quote.Request, *quote.Result]

	width  int
	height int
}

// New creates a quotation composer backed by the given API client.
// Notifications for resolved submissions go to channel; downloads land
// in downloadDir.
func New(theme *styles.Theme, client *api.Client, channel *components.Channel, downloadDir string) Model {
	name := textinput.New()
	name.Placeholder = "Client name"
	name.CharLimit = 120
	name.Focus()

	contact := textinput.New()
	contact.Placeholder = "contact@example.com"
	contact.CharLimit = 120

	delivery := textinput.New()
	delivery.Placeholder = "e.g. DAP Riyadh, 4 weeks"
	delivery.CharLimit = 200

	notes := textinput.New()
	notes.Placeholder = "Optional notes for the drafted email"
	notes.CharLimit = 500

	editor := textinput.New()
	editor.CharLimit = 64

	ui := config.Global().UI
	spinner := components.NewSpinner("Generating quotation")
	spinner.SetShowTimer(ui.SpinnerTimer)

	return Model{
		theme:         theme,
		channel:       channel,
		spinner:       spinner,
		download:      downloadDir,
		showHints:     ui.ShowHints,
		nameInput:     name,
		contactInput:  contact,
		deliveryInput: delivery,
		notesInput:    notes,
		items:         quote.NewItemList(),
		itemEditor:    editor,
		focus:         focusClientName,
		controller: lifecycle.NewController(func(ctx context.Context, req quote.Request) (*quote.Result, error) {
			return client.CreateQuote(ctx, req)
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

// Loading reports whether a submission is in flight.
func (m Model) Loading() bool {
	return m.controller.State().Loading()
}

// Result returns the last successful result, if any.
func (m Model) Result() (*quote.Result, bool) {
	s := m.controller.State()
	return s.Result, s.HasResult
}

// =============================================================================
// FOCUS HELPERS
// =============================================================================

// focusAfterItems is the index of the first control after the item grid.
func (m Model) focusAfterItems() int {
	return focusFirstItem + m.items.Len()*itemFieldCount
}

func (m Model) focusDelivery() int { return m.focusAfterItems() }
func (m Model) focusNotes() int    { return m.focusAfterItems() + 1 }
func (m Model) focusSubmit() int   { return m.focusAfterItems() + 2 }

// focusCount is the total number of focusable controls.
func (m Model) focusCount() int {
	return m.focusSubmit() + 1
}

// itemCell resolves a focus index inside the item grid to (row, field).
// ok is false when the focus is not on an item cell.
func (m Model) itemCell() (row int, field quote.ItemField, ok bool) {
	if m.focus < focusFirstItem || m.focus >= m.focusAfterItems() {
		return 0, "", false
	}
	offset := m.focus - focusFirstItem
	return offset / itemFieldCount, itemFields[offset%itemFieldCount], true
}

// buildRequest assembles the request from the current form state.
func (m Model) buildRequest() quote.Request {
	return quote.Request{
		Client: quote.ClientInfo{
			Name:    m.nameInput.Value(),
			Contact: m.contactInput.Value(),
			Lang:    quote.Languages[m.langIndex],
		},
		Currency:      quote.Currencies[m.currencyIndex],
		Items:         m.items.Items(),
		DeliveryTerms: m.deliveryInput.Value(),
		Notes:         m.notesInput.Value(),
	}
}

// saveResult writes the current result as a download document.
func (m Model) saveResult() {
	result, ok := m.Result()
	if !ok {
		return
	}
	doc := export.Quotation(*result)
	path, err := export.Write(doc, m.download)
	if err != nil {
		m.channel.Error("Save failed: " + err.Error())
		return
	}
	m.channel.Success("Saved " + path)
}
