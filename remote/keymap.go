package remote

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/style"
)

type keymap struct {
	advance, begin, leave,
	up, down,
	quit, forceQuit,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		advance: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp(style.Fg(color.Orange)("n"), style.Fg(color.Orange)("advance")),
		),
		begin: key.NewBinding(
			key.WithKeys("p", " ", "enter"),
			key.WithHelp("p", "play"),
		),
		leave: key.NewBinding(
			key.WithKeys("l", "esc"),
			key.WithHelp("l", "leave"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.advance, k.begin, k.leave, k.quit, k.showHelp}
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.advance, k.begin, k.leave},
		{k.up, k.down},
		{k.quit, k.forceQuit, k.showHelp},
	}
}
