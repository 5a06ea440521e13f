package remote

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/icon"
	"github.com/hostplay/hostplay/protocol"
	"github.com/hostplay/hostplay/style"
	"github.com/muesli/reflow/wrap"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (m *model) View() string {
	lines := []string{
		style.Title("Remote") + " " + style.Faint(m.address),
		"",
		m.viewStatus(),
		m.viewPending(),
		"",
		m.viewportC.View(),
		"",
		m.helpC.View(m.keymap),
	}

	return m.notifier.View(paddingStyle.Render(strings.Join(lines, "\n")))
}

func (m *model) viewStatus() string {
	var status string

	switch m.session {
	case staged:
		status = fmt.Sprintf("%s staged %s", icon.Get(icon.Pause), style.Fg(color.Purple)(m.trackName()))
	case playing:
		status = fmt.Sprintf("%s playing %s", icon.Get(icon.Play), style.Fg(color.Purple)(m.trackName()))
	default:
		status = style.Faint("idle")
	}

	if m.width > 0 {
		return style.Truncate(m.width)(status)
	}
	return status
}

func (m *model) viewPending() string {
	pending, ok := m.pending.Get()
	if !ok {
		return ""
	}

	var verb string
	switch pending {
	case protocol.Advance:
		verb = "advancing"
	case protocol.BeginPlayback:
		verb = "starting"
	default:
		verb = pending.String()
	}

	return m.spinnerC.View() + " " + style.Fg(color.Orange)(verb)
}

func (m *model) trackName() string {
	track, ok := m.track.Get()
	if !ok {
		return "unknown track"
	}
	return track.String()
}

func (m *model) renderLog() string {
	var b strings.Builder

	for i, e := range m.log {
		if i > 0 {
			b.WriteByte('\n')
		}

		line := style.Faint(e.at.Format("15:04:05")) + " " + e.text
		if m.viewportC.Width > 0 {
			line = wrap.String(line, m.viewportC.Width)
		}
		b.WriteString(line)
	}

	return b.String()
}
