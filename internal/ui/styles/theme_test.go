// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/jeranaias/rfq-console/internal/rag"
)

func TestConfidenceBadge_CoversEveryBand(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		band rag.Band
		want string
	}{
		{rag.BandGood, theme.BadgeGood.Render("x")},
		{rag.BandFair, theme.BadgeFair.Render("x")},
		{rag.BandPoor, theme.BadgePoor.Render("x")},
	}

	for _, tc := range tests {
		t.Run(string(tc.band), func(t *testing.T) {
			got := theme.ConfidenceBadge(tc.band).Render("x")
			if got != tc.want {
				t.Errorf("badge for %q does not match its dedicated style", tc.band)
			}
		})
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewTheme()
	for _, tc := range tests {
		theme.SetSize(tc.width, 40)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("width %d: mode = %v, want %v", tc.width, got, tc.want)
		}
	}
}

func TestStatusIndicators_AreASCII(t *testing.T) {
	indicators := []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
		StatusIndicators.Active,
	}
	for _, ind := range indicators {
		for _, r := range ind {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", ind, r)
			}
		}
	}
}

func TestRenderStatusHelpers_IncludeShape(t *testing.T) {
	if !strings.Contains(RenderSuccess("saved"), StatusIndicators.Success) {
		t.Error("success render must carry its shape indicator")
	}
	if !strings.Contains(RenderError("failed"), StatusIndicators.Error) {
		t.Error("error render must carry its shape indicator")
	}
}
