// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rfq-console/internal/api"
	"github.com/jeranaias/rfq-console/internal/lifecycle"
	"github.com/jeranaias/rfq-console/internal/quote"
	"github.com/jeranaias/rfq-console/internal/ui/components"
	"github.com/jeranaias/rfq-console/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	theme := styles.NewTheme()
	client := api.NewClient("http://127.0.0.1:1") // never reached in tests
	return New(theme, client, components.NewChannel(), t.TempDir())
}

func fillValidForm(m *Model) {
	m.nameInput.SetValue("Gulf Engineering")
	m.contactInput.SetValue("omar@client.com")
	m.items.Update(0, quote.FieldSKU, "ALR-SL-90W")
	m.items.Update(0, quote.FieldQty, "3")
	m.items.Update(0, quote.FieldUnitCost, "100")
}

func sampleResult() *quote.Result {
	return &quote.Result{
		QuotationID: "Q-2024-0042",
		Client:      quote.ClientInfo{Name: "Gulf Engineering", Contact: "omar@client.com", Lang: "en"},
		Currency:    "SAR",
		Items: []quote.PricedItem{
			{LineItem: quote.LineItem{SKU: "ALR-SL-90W", Qty: 3, UnitCost: 100, MarginPct: 20}, LineTotal: 360},
		},
		Subtotal:   360,
		TaxRate:    15,
		TaxAmount:  54,
		Total:      414,
		EmailDraft: "Dear Omar,",
	}
}

// =============================================================================
// SUBMISSION GATING
// =============================================================================

func TestSubmit_InvalidFormNeverReachesNetwork(t *testing.T) {
	m := newTestModel(t)

	m2, cmd := m.submit()
	assert.Nil(t, cmd, "invalid form must not produce a request command")
	assert.False(t, m2.Loading())
	require.NotEmpty(t, m2.errors)

	_, hasNameErr := m2.errors.ByField("client.name")
	assert.True(t, hasNameErr, "missing client name must be flagged")
	_, hasSKUErr := m2.errors.ByField("items[0].sku")
	assert.True(t, hasSKUErr, "empty SKU must be flagged")
}

func TestSubmit_ValidFormStartsSubmission(t *testing.T) {
	m := newTestModel(t)
	fillValidForm(&m)

	m2, cmd := m.submit()
	require.NotNil(t, cmd)
	assert.True(t, m2.Loading())
	assert.Empty(t, m2.errors, "validation errors clear on a valid submit")

	// Resubmitting while in flight is rejected.
	m3, cmd2 := m2.submit()
	assert.Nil(t, cmd2)
	assert.True(t, m3.Loading())
}

func TestSubmit_ValidationErrorsClearOnNextValidSubmit(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.submit()
	require.NotEmpty(t, m.errors)

	fillValidForm(&m)
	m, cmd := m.submit()
	require.NotNil(t, cmd)
	assert.Empty(t, m.errors)
}

// =============================================================================
// RESOLUTION
// =============================================================================

func TestResolve_SuccessShowsResultAndNotifies(t *testing.T) {
	m := newTestModel(t)
	fillValidForm(&m)
	m, cmd := m.submit()
	require.NotNil(t, cmd)

	token := m.controller.State().Token
	m, _ = m.resolve(lifecycle.ResultMsg[*quote.Result]{Token: token, Result: sampleResult()})

	assert.False(t, m.Loading(), "loading clears on success")
	result, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, "Q-2024-0042", result.QuotationID)

	notifications := m.channel.Active()
	require.Len(t, notifications, 1, "exactly one notification per terminal transition")
	assert.Equal(t, components.KindSuccess, notifications[0].Kind)
	assert.Contains(t, notifications[0].Message, "Q-2024-0042")
}

func TestResolve_FailureKeepsPreviousResult(t *testing.T) {
	m := newTestModel(t)
	fillValidForm(&m)

	// First submission succeeds.
	m, _ = m.submit()
	m, _ = m.resolve(lifecycle.ResultMsg[*quote.Result]{
		Token:  m.controller.State().Token,
		Result: sampleResult(),
	})
	m.channel.Clear()

	// Second submission fails.
	m, cmd := m.submit()
	require.NotNil(t, cmd)
	m, _ = m.resolve(lifecycle.ResultMsg[*quote.Result]{
		Token: m.controller.State().Token,
		Err:   &api.RequestError{Kind: api.ServerError, Message: "Server error", Status: 500},
	})

	assert.False(t, m.Loading(), "loading clears on failure")
	result, ok := m.Result()
	require.True(t, ok, "failure must not clear the previous result")
	assert.Equal(t, "Q-2024-0042", result.QuotationID)

	notifications := m.channel.Active()
	require.Len(t, notifications, 1)
	assert.Equal(t, components.KindError, notifications[0].Kind)
	assert.Equal(t, "Server error", notifications[0].Message)
}

func TestResolve_StaleOutcomeIgnored(t *testing.T) {
	m := newTestModel(t)
	fillValidForm(&m)
	m, _ = m.submit()

	m, _ = m.resolve(lifecycle.ResultMsg[*quote.Result]{Token: "stale-token", Result: sampleResult()})

	assert.True(t, m.Loading(), "stale outcome must not end the in-flight submission")
	assert.Empty(t, m.channel.Active(), "stale outcome must not notify")
}

// =============================================================================
// ITEM GRID
// =============================================================================

func TestAddItem_MovesFocusToNewRow(t *testing.T) {
	m := newTestModel(t)

	m = m.addItem()
	require.Equal(t, 2, m.items.Len())

	row, field, ok := m.itemCell()
	require.True(t, ok)
	assert.Equal(t, 1, row)
	assert.Equal(t, quote.FieldSKU, field)
}

func TestRemoveItem_LastRowIsFloor(t *testing.T) {
	m := newTestModel(t)
	m.focus = focusFirstItem // on the only row

	m = m.removeItem()
	assert.Equal(t, 1, m.items.Len(), "single remaining row must survive removal")
}

func TestRemoveItem_DeletesFocusedRow(t *testing.T) {
	m := newTestModel(t)
	m = m.addItem()
	m.items.Update(0, quote.FieldSKU, "keep")
	m.items.Update(1, quote.FieldSKU, "drop")

	// Focus is on row 1 after addItem.
	m = m.removeItem()
	require.Equal(t, 1, m.items.Len())
	assert.Equal(t, "keep", m.items.At(0).SKU)

	row, _, ok := m.itemCell()
	require.True(t, ok)
	assert.Equal(t, 0, row, "focus clamps to the surviving row")
}

func TestFocusRing_WrapsBothWays(t *testing.T) {
	m := newTestModel(t)

	m = m.moveFocus(-1)
	assert.Equal(t, m.focusSubmit(), m.focus, "backward from the first control wraps to submit")

	m = m.moveFocus(1)
	assert.Equal(t, focusClientName, m.focus, "forward from submit wraps to the first control")
}

// =============================================================================
// VIEW
// =============================================================================

func TestView_ShowsInlineValidationErrors(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.submit()

	out := m.View()
	assert.Contains(t, out, "client name is required")
	assert.Contains(t, out, "SKU is required")
}

func TestView_RendersResultPanel(t *testing.T) {
	m := newTestModel(t)
	fillValidForm(&m)
	m, _ = m.submit()
	m, _ = m.resolve(lifecycle.ResultMsg[*quote.Result]{
		Token:  m.controller.State().Token,
		Result: sampleResult(),
	})

	out := m.View()
	assert.Contains(t, out, "Q-2024-0042")
	assert.Contains(t, out, "SAR 414.00")
	assert.Contains(t, out, "15%")
	assert.True(t, strings.Contains(out, "Dear Omar,"))
}
