// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the console.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/rfq-console/internal/rag"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND TAB STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	SectionTitle   lipgloss.Style
	FieldLabel     lipgloss.Style
	FieldFocused   lipgloss.Style
	FieldError     lipgloss.Style
	InputPrompt    lipgloss.Style
	InputText      lipgloss.Style
	Placeholder    lipgloss.Style
	ItemRow        lipgloss.Style
	ItemRowActive  lipgloss.Style
	SubmitReady    lipgloss.Style
	SubmitDisabled lipgloss.Style

	// ==========================================================================
	// RESULT PANEL STYLES
	// ==========================================================================

	ResultBox    lipgloss.Style
	ResultTitle  lipgloss.Style
	ResultLabel  lipgloss.Style
	ResultValue  lipgloss.Style
	TotalsLine   lipgloss.Style
	EmailDraft   lipgloss.Style
	AnswerBox    lipgloss.Style
	SourceItem   lipgloss.Style
	MetricsLine  lipgloss.Style
	BadgeGood    lipgloss.Style
	BadgeFair    lipgloss.Style
	BadgePoor    lipgloss.Style
	PresetItem   lipgloss.Style
	PresetActive lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND SPINNER STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
	LoadingText  lipgloss.Style

	// ==========================================================================
	// DASHBOARD STYLES
	// ==========================================================================

	HealthUp      lipgloss.Style
	HealthDown    lipgloss.Style
	DashboardCard lipgloss.Style
	RawPayload    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header and tabs
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Cyan).
		Padding(0, 2)

	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)

	// Forms
	t.SectionTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FieldFocused = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ItemRow = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ItemRowActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.SubmitReady = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Emerald).
		Bold(true).
		Padding(0, 2)

	t.SubmitDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2)

	// Result panels
	t.ResultBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.ResultTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ResultLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ResultValue = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TotalsLine = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.EmailDraft = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Overlay).
		PaddingLeft(2)

	t.AnswerBox = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.SourceItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)

	t.MetricsLine = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.BadgeGood = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(BandGood).
		Bold(true).
		Padding(0, 1)

	t.BadgeFair = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(BandFair).
		Bold(true).
		Padding(0, 1)

	t.BadgePoor = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(BandPoor).
		Bold(true).
		Padding(0, 1)

	t.PresetItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.PresetActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true).
		Padding(0, 1)

	// Status bar and spinner
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Dashboard
	t.HealthUp = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.HealthDown = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.DashboardCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.RawPayload = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// ConfidenceBadge returns the badge style for a confidence band.
func (t *Theme) ConfidenceBadge(band rag.Band) lipgloss.Style {
	switch band {
	case rag.BandGood:
		return t.BadgeGood
	case rag.BandFair:
		return t.BadgeFair
	default:
		return t.BadgePoor
	}
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
