package remote

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hostplay/hostplay/icon"
	"github.com/hostplay/hostplay/internal/ui"
	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/protocol"
	"github.com/samber/mo"
)

const (
	headerHeight = 6
	footerHeight = 2
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case eventMsg:
		m.observe(protocol.Event(msg))
		return m, m.waitEvent()
	case sentMsg:
		m.record(fmt.Sprintf("%s sent %s", icon.Get(icon.Progress), protocol.Command(msg)))
		if protocol.Command(msg) == protocol.LeaveSession {
			return m, ui.Notify("session left")
		}
		return m, nil
	case errMsg:
		m.pending = mo.None[protocol.Command]()
		m.record(fmt.Sprintf("%s %s", icon.Get(icon.Fail), msg.err))
		return m, nil
	case fatalMsg:
		if !errors.Is(msg.err, io.EOF) {
			m.fatal = msg.err
		}
		return m, tea.Quit
	case ui.NotifyMsg, ui.ClearNotificationMsg:
		return m, m.notifier.Update(msg)
	}

	var cmd tea.Cmd
	m.spinnerC, cmd = m.spinnerC.Update(msg)
	return m, cmd
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.forceQuit), key.Matches(msg, m.keymap.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.showHelp):
		m.helpC.ShowAll = !m.helpC.ShowAll
		m.resize(m.width, m.height)
		return m, nil
	case key.Matches(msg, m.keymap.leave):
		// leave preempts whatever is in flight and produces no event
		m.pending = mo.None[protocol.Command]()
		m.session = idle
		m.track = mo.None[protocol.TrackInfo]()
		return m, m.send(protocol.LeaveSession)
	case key.Matches(msg, m.keymap.advance):
		return m, m.issue(protocol.Advance)
	case key.Matches(msg, m.keymap.begin):
		return m, m.issue(protocol.BeginPlayback)
	}

	var cmd tea.Cmd
	m.viewportC, cmd = m.viewportC.Update(msg)
	return m, cmd
}

func (m *model) issue(command protocol.Command) tea.Cmd {
	if pending, ok := m.pending.Get(); ok {
		return ui.Notify(fmt.Sprintf("waiting for %s", pending))
	}

	m.pending = mo.Some(command)
	return m.send(command)
}

func (m *model) observe(event protocol.Event) {
	log.Debugf("remote observed %s", event)

	switch event.Kind {
	case protocol.KindAdvanced:
		m.session = staged
		m.track = mo.Some(event.Track)
		m.record(fmt.Sprintf("%s staged %s", icon.Get(icon.Success), event.Track))
	case protocol.KindStarted:
		m.session = playing
		m.record(fmt.Sprintf("%s started", icon.Get(icon.Play)))
	case protocol.KindTrackEnded:
		m.session = idle
		m.record(fmt.Sprintf("%s track ended", icon.Get(icon.Pause)))
	case protocol.KindFailed:
		switch event.Command {
		case protocol.Advance:
			m.session = idle
			m.track = mo.None[protocol.TrackInfo]()
		case protocol.BeginPlayback:
			if m.session == playing {
				m.session = staged
			}
		}
		m.record(fmt.Sprintf("%s %s: %s", icon.Get(icon.Fail), event.Command.Status(), event.Reason))
	}

	if pending, ok := m.pending.Get(); ok && answers(pending, event) {
		m.pending = mo.None[protocol.Command]()
	}
}

// answers reports whether event is the reply to command.
func answers(command protocol.Command, event protocol.Event) bool {
	switch event.Kind {
	case protocol.KindAdvanced:
		return command == protocol.Advance
	case protocol.KindStarted:
		return command == protocol.BeginPlayback
	case protocol.KindFailed:
		return command == event.Command
	default:
		return false
	}
}

func (m *model) record(text string) {
	m.log = append(m.log, entry{at: time.Now(), text: text})
	if over := len(m.log) - logLimit; over > 0 {
		m.log = slices.Delete(m.log, 0, over)
	}
	m.viewportC.SetContent(m.renderLog())
	m.viewportC.GotoBottom()
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	m.helpC.Width = width

	helpHeight := footerHeight
	if m.helpC.ShowAll {
		helpHeight = len(m.keymap.FullHelp()[0]) + 1
	}

	m.viewportC.Width = max(width-4, 0)
	m.viewportC.Height = max(height-headerHeight-helpHeight-2, 0)
	m.viewportC.SetContent(m.renderLog())
}
