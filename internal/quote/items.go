// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quote

import "strconv"

// ItemField names one editable field of a line item.
type ItemField string

const (
	FieldSKU       ItemField = "sku"
	FieldQty       ItemField = "qty"
	FieldUnitCost  ItemField = "unit_cost"
	FieldMarginPct ItemField = "margin_pct"
)

// defaultItem is what Add appends: quantity one, zero cost, 20% margin.
func defaultItem() LineItem {
	return LineItem{SKU: "", Qty: 1, UnitCost: 0, MarginPct: 20}
}

// ItemList is the mutable, ordered line-item collection behind the
// quotation form. A list never shrinks below one item; the composer
// creates it with a single default row and Remove refuses to delete the
// last one. Mutations are synchronous and total. Out-of-range indices are
// a programming error and panic like any slice access.
type ItemList struct {
	items []LineItem
}

// NewItemList returns a list seeded with one default item.
func NewItemList() *ItemList {
	return &ItemList{items: []LineItem{defaultItem()}}
}

// Len returns the number of items.
func (l *ItemList) Len() int {
	return len(l.items)
}

// Items returns a copy of the current items in order.
func (l *ItemList) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// At returns the item at index i.
func (l *ItemList) At(i int) LineItem {
	return l.items[i]
}

// Add appends a default item and returns its index.
func (l *ItemList) Add() int {
	l.items = append(l.items, defaultItem())
	return len(l.items) - 1
}

// Remove deletes the item at index i, preserving the order of the rest.
// A single-item list is left untouched: one line is the hard floor, so
// this is a no-op rather than an error.
func (l *ItemList) Remove(i int) {
	if len(l.items) <= 1 {
		return
	}
	_ = l.items[i] // bounds check up front, even when i is the last index
	l.items = append(l.items[:i], l.items[i+1:]...)
}

// Update replaces one field of the item at index i from its raw form
// input, leaving every other field and item untouched. Numeric fields
// keep their previous value when raw does not parse or violates the
// field's floor (qty >= 1, unit_cost >= 0, margin_pct in [0,100]), which
// keeps the operation total while the operator is mid-edit.
func (l *ItemList) Update(i int, field ItemField, raw string) {
	item := &l.items[i]
	switch field {
	case FieldSKU:
		item.SKU = raw
	case FieldQty:
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			item.Qty = v
		}
	case FieldUnitCost:
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			item.UnitCost = v
		}
	case FieldMarginPct:
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 100 {
			item.MarginPct = v
		}
	}
}
