// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rag holds the knowledge-base query domain: the wire types for
// the retrieval service, the fixed quick-query presets, and the
// confidence banding used to color results. Retrieval and answer
// generation happen server-side; this package never ranks or scores.
package rag
