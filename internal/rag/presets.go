// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package rag

// Preset is a canned (query, language) pair. Selecting one sets both
// fields together; text and language are never applied separately, so an
// Arabic preset can never be submitted tagged as English.
type Preset struct {
	Text     string
	Language string
}

// Presets are the six quick queries offered by the knowledge-base view,
// alternating English and Arabic.
var Presets = []Preset{
	{Text: "What products do you offer?", Language: "en"},
	{Text: "ما هي منتجاتكم؟", Language: "ar"},
	{Text: "What is the warranty period?", Language: "en"},
	{Text: "ما هي فترة الضمان؟", Language: "ar"},
	{Text: "How do I install the lighting system?", Language: "en"},
	{Text: "كيف أقوم بتثبيت النظام؟", Language: "ar"},
}
