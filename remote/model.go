package remote

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/internal/ui"
	"github.com/hostplay/hostplay/protocol"
	"github.com/hostplay/hostplay/style"
	"github.com/samber/mo"
)

// session is what the controller knows about the driver from the events it saw.
type session int

const (
	idle session = iota
	staged
	playing
)

// logLimit is the number of log entries kept in the viewport.
const logLimit = 500

type entry struct {
	at   time.Time
	text string
}

type model struct {
	ctx        context.Context
	controller Controller
	address    string

	keymap *keymap

	spinnerC  spinner.Model
	viewportC viewport.Model
	helpC     help.Model

	session session
	track   mo.Option[protocol.TrackInfo]
	pending mo.Option[protocol.Command]
	log     []entry

	notifier ui.Model
	fatal    error

	width, height int
}

func newModel(ctx context.Context, controller Controller, address string) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = style.New().Foreground(color.Purple)

	return &model{
		ctx:        ctx,
		controller: controller,
		address:    address,
		keymap:     newKeymap(),
		spinnerC:   s,
		viewportC:  viewport.New(0, 0),
		helpC:      help.New(),
		notifier:   ui.New(3 * time.Second),
	}
}

type (
	eventMsg protocol.Event
	sentMsg  protocol.Command
	errMsg   struct{ err error }
	fatalMsg struct{ err error }
)

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinnerC.Tick, m.waitEvent())
}

func (m *model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		event, err := m.controller.Next(m.ctx)
		if err != nil {
			return fatalMsg{err}
		}

		return eventMsg(event)
	}
}

func (m *model) send(command protocol.Command) tea.Cmd {
	return func() tea.Msg {
		if err := m.controller.Send(m.ctx, command); err != nil {
			return errMsg{err}
		}

		return sentMsg(command)
	}
}
