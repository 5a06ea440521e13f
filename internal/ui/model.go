// Package ui provides ephemeral terminal notifications for bubbletea models.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/style"
)

// Model holds the notification currently shown, if any.
type Model struct {
	notification string
	notifiedAt   time.Time
	lifetime     time.Duration
}

// NotifyMsg replaces the current notification.
type NotifyMsg string

// ClearNotificationMsg resets the notification state.
type ClearNotificationMsg struct {
	at time.Time
}

// New returns a notifier whose messages disappear after lifetime.
func New(lifetime time.Duration) Model {
	return Model{lifetime: lifetime}
}

// Notify returns a tea.Cmd that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg(text)
	}
}

func (m *Model) clear() tea.Cmd {
	at := m.notifiedAt
	return tea.Tick(m.lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{at: at}
	})
}

// Notification returns the text currently shown.
func (m *Model) Notification() string {
	return m.notification
}

// Update processes notification messages and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		if m.lifetime <= 0 {
			return nil
		}
		return m.clear()
	case ClearNotificationMsg:
		// a newer notification outlives the tick of an older one
		if msg.at.Equal(m.notifiedAt) {
			m.notification = ""
		}
	}
	return nil
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Fg(color.Gray)(m.notification)
	return strings.Join(lines, "\n")
}
