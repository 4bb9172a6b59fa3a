// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui assembles the console: three tabbed views sharing one
// theme, one API client, and one notification channel.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rfq-console/internal/api"
	"github.com/jeranaias/rfq-console/internal/ui/components"
	"github.com/jeranaias/rfq-console/internal/ui/dashboard"
	"github.com/jeranaias/rfq-console/internal/ui/knowledge"
	"github.com/jeranaias/rfq-console/internal/ui/quotation"
	"github.com/jeranaias/rfq-console/internal/ui/styles"
)

// Tab identifies one of the console's views.
type Tab int

const (
	TabQuotation Tab = iota
	TabKnowledge
	TabDashboard
)

var tabNames = [...]string{"Quotation", "Knowledge Base", "Dashboard"}

// App is the root model.
type App struct {
	theme   *styles.Theme
	channel *components.Channel

	active    Tab
	quotation quotation.Model
	knowledge knowledge.Model
	dashboard dashboard.Model

	width  int
	height int
}

// NewApp wires the three views to one client and one channel.
func NewApp(theme *styles.Theme, client *api.Client, downloadDir string) App {
	channel := components.NewChannel()
	return App{
		theme:     theme,
		channel:   channel,
		active:    TabQuotation,
		quotation: quotation.New(theme, client, channel, downloadDir),
		knowledge: knowledge.New(theme, client, channel, downloadDir),
		dashboard: dashboard.New(theme, client),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.quotation.Init(),
		a.knowledge.Init(),
		a.dashboard.Init(),
		components.NotificationTickCmd(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		a.quotation.SetSize(msg.Width, msg.Height)
		a.knowledge.SetSize(msg.Width, msg.Height)
		a.dashboard.SetSize(msg.Width, msg.Height)
		return a, nil

	case components.NotificationTickMsg:
		a.channel.Tick()
		return a, components.NotificationTickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "f1":
			a.active = TabQuotation
			return a, nil
		case "f2":
			a.active = TabKnowledge
			return a, nil
		case "f3":
			a.active = TabDashboard
			return a, nil
		}
		// Keystrokes go to the active view only.
		return a.routeToActive(msg)
	}

	// Everything else fans out: submission outcomes, spinner frames, and
	// poll results each find their owner regardless of the active tab.
	return a.routeToAll(msg)
}

// routeToActive forwards a message to the active view.
func (a App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case TabQuotation:
		a.quotation, cmd = a.quotation.Update(msg)
	case TabKnowledge:
		a.knowledge, cmd = a.knowledge.Update(msg)
	case TabDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	}
	return a, cmd
}

// routeToAll forwards a message to every view.
func (a App) routeToAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.quotation, cmd = a.quotation.Update(msg)
	cmds = append(cmds, cmd)
	a.knowledge, cmd = a.knowledge.Update(msg)
	cmds = append(cmds, cmd)
	a.dashboard, cmd = a.dashboard.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a App) View() string {
	header := a.viewTabs()

	var body string
	switch a.active {
	case TabQuotation:
		body = a.quotation.View()
	case TabKnowledge:
		body = a.knowledge.View()
	case TabDashboard:
		body = a.dashboard.View()
	}

	out := lipgloss.JoinVertical(lipgloss.Left, header, body)

	if a.channel.HasActive() {
		stack := components.RenderNotificationStack(a.channel.Active(), a.width, 0)
		out = lipgloss.JoinVertical(lipgloss.Left, out, stack)
	}
	return out
}

// viewTabs renders the tab bar.
func (a App) viewTabs() string {
	brand := a.theme.HeaderBrand.Render(" RFQ Console ")
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		key := "f" + string(rune('1'+i))
		label := key + " " + name
		if Tab(i) == a.active {
			tabs[i] = a.theme.TabActive.Render(label)
			continue
		}
		tabs[i] = a.theme.TabInactive.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, brand, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}
