// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lifecycle implements the request lifecycle shared by both
// composers: a value-type State, a pure Reduce transition function, and a
// Controller that ties them to a Bubble Tea command issuing one HTTP call.
//
// The invariants live in Reduce, not in the UI: at most one request is in
// flight per controller, every submission ends in exactly one terminal
// state, a failure never discards the previously displayed result, and a
// terminal action carrying a stale submission token is ignored.
package lifecycle
