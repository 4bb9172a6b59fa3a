// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the console.
//
// This file implements the non-blocking notification channel. Submission
// outcomes surface here as corner toasts that auto-dismiss, so the
// operator keeps typing while results and errors come and go.
package components

import (
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rfq-console/internal/ui/styles"
	"github.com/jeranaias/rfq-console/internal/util"
)

// =============================================================================
// NOTIFICATION TYPES
// =============================================================================

// NotificationKind represents the type of notification.
type NotificationKind int

const (
	// KindInfo is an informational notification (cyan color)
	KindInfo NotificationKind = iota
	// KindError is an error notification (rose color)
	KindError
	// KindWarning is a warning notification (amber color)
	KindWarning
	// KindSuccess is a success notification (emerald color)
	KindSuccess
)

// DefaultNotificationDuration is the auto-dismiss duration for info and
// success notifications.
const DefaultNotificationDuration = 4 * time.Second

// ErrorNotificationDuration is the auto-dismiss duration for errors,
// longer so the message can be read.
const ErrorNotificationDuration = 8 * time.Second

// WarningNotificationDuration is the auto-dismiss duration for warnings.
const WarningNotificationDuration = 6 * time.Second

// Notification is one entry in the channel. Notifications are
// append-only from the caller's side; expiry and dismissal remove them.
type Notification struct {
	ID        int
	Message   string
	Kind      NotificationKind
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification should be dismissed.
func (n *Notification) IsExpired() bool {
	return time.Since(n.CreatedAt) >= n.Duration
}

// TimeRemaining returns how much time is left before auto-dismiss.
func (n *Notification) TimeRemaining() time.Duration {
	remaining := n.Duration - time.Since(n.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// NOTIFICATION CHANNEL
// =============================================================================

// Channel collects notifications from both composers and the dashboard.
// One instance serves the whole application; callers push exactly one
// notification per resolved submission.
type Channel struct {
	notifications []Notification
	nextID        int
	maxVisible    int
	mutex         sync.Mutex
}

// NewChannel creates an empty notification channel.
func NewChannel() *Channel {
	return &Channel{
		notifications: make([]Notification, 0),
		nextID:        1,
		maxVisible:    5,
	}
}

// push appends a notification, newest first, trimming to maxVisible.
func (c *Channel) push(message string, kind NotificationKind, duration time.Duration) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	n := Notification{
		ID:        c.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
	c.nextID++

	c.notifications = append([]Notification{n}, c.notifications...)
	if len(c.notifications) > c.maxVisible {
		c.notifications = c.notifications[:c.maxVisible]
	}
	return n.ID
}

// Error pushes an error notification.
func (c *Channel) Error(message string) int {
	return c.push(message, KindError, ErrorNotificationDuration)
}

// Warning pushes a warning notification.
func (c *Channel) Warning(message string) int {
	return c.push(message, KindWarning, WarningNotificationDuration)
}

// Info pushes an informational notification.
func (c *Channel) Info(message string) int {
	return c.push(message, KindInfo, DefaultNotificationDuration)
}

// Success pushes a success notification.
func (c *Channel) Success(message string) int {
	return c.push(message, KindSuccess, DefaultNotificationDuration)
}

// Dismiss removes a notification by ID.
func (c *Channel) Dismiss(id int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for i, n := range c.notifications {
		if n.ID == id {
			c.notifications = append(c.notifications[:i], c.notifications[i+1:]...)
			return
		}
	}
}

// Tick drops expired notifications and returns the remaining ones.
// Called on every NotificationTickMsg.
func (c *Channel) Tick() []Notification {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	active := make([]Notification, 0, len(c.notifications))
	for _, n := range c.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	c.notifications = active
	return c.notifications
}

// Active returns a copy of the current notifications.
func (c *Channel) Active() []Notification {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	result := make([]Notification, len(c.notifications))
	copy(result, c.notifications)
	return result
}

// HasActive returns true if any notification is showing.
func (c *Channel) HasActive() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.notifications) > 0
}

// Clear removes all notifications.
func (c *Channel) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.notifications = make([]Notification, 0)
}

// =============================================================================
// NOTIFICATION MESSAGES
// =============================================================================

// NotificationTickMsg is sent periodically to expire notifications.
type NotificationTickMsg struct {
	Time time.Time
}

// NotificationTickCmd returns a command that ticks the channel every 100ms.
func NotificationTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return NotificationTickMsg{Time: t}
	})
}

// =============================================================================
// NOTIFICATION RENDERING
// =============================================================================

// RenderNotification renders a single notification box.
func RenderNotification(n Notification, width int) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	var iconColor lipgloss.AdaptiveColor
	var icon string

	switch n.Kind {
	case KindError:
		iconColor = styles.Rose
		icon = styles.StatusIndicators.Error
	case KindWarning:
		iconColor = styles.Amber
		icon = styles.StatusIndicators.Warning
	case KindSuccess:
		iconColor = styles.Emerald
		icon = styles.StatusIndicators.Success
	default:
		iconColor = styles.Cyan
		icon = styles.StatusIndicators.Info
	}

	iconStyle := lipgloss.NewStyle().
		Foreground(iconColor).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	message := n.Message
	if len(message) > maxWidth-10 {
		message = util.WrapWords(message, maxWidth-10)
	}

	content := iconStyle.Render(icon+" ") + messageStyle.Render(message)

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	hints := []string{"[x] Dismiss"}
	if secs := int(n.TimeRemaining().Seconds()); secs > 0 {
		hints = append(hints, strconv.Itoa(secs)+"s")
	}
	content += "\n" + hintStyle.Render(strings.Join(hints, "  "))

	box := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(iconColor).
		Padding(0, 2).
		MaxWidth(maxWidth)

	return box.Render(content)
}

// RenderNotificationStack renders the channel's notifications stacked in
// the bottom-right corner, newest at the bottom.
func RenderNotificationStack(notifications []Notification, width, height int) string {
	if len(notifications) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(notifications))
	for _, n := range notifications {
		rendered = append(rendered, RenderNotification(n, width))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)

	positioned := lipgloss.NewStyle().
		MarginRight(2).
		MarginBottom(1).
		Render(stack)

	if width > 0 && height > 0 {
		return lipgloss.Place(
			width, height,
			lipgloss.Right, lipgloss.Bottom,
			positioned,
		)
	}
	return positioned
}
