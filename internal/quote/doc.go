// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package quote holds the quotation domain model: the wire types shared
// with the pricing service, the mutable line-item list backing the
// composer form, and the client-side validation that gates submission.
//
// Pricing itself (line totals, tax, email drafting) is the remote
// service's job; nothing in this package computes money.
package quote
