// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package rag

// Band classifies a confidence score for display. It drives color choice
// and nothing else.
type Band string

const (
	BandGood Band = "good" // confidence > 80
	BandFair Band = "fair" // 60 < confidence <= 80
	BandPoor Band = "poor" // confidence <= 60
)

// ConfidenceBand maps a 0-100 confidence score to its band. The lower
// boundary of each band is exclusive: 80 is fair, 81 is good, 60 is poor.
func ConfidenceBand(confidence float64) Band {
	switch {
	case confidence > 80:
		return BandGood
	case confidence > 60:
		return BandFair
	default:
		return BandPoor
	}
}
