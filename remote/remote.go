// Package remote is an interactive terminal controller for a served driver.
package remote

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hostplay/hostplay/protocol"
)

// Controller is the connection the remote issues commands over.
type Controller interface {
	Send(ctx context.Context, command protocol.Command) error
	Next(ctx context.Context) (protocol.Event, error)
}

// Run starts the remote until the user quits or the connection drops.
func Run(ctx context.Context, controller Controller, address string) error {
	m := newModel(ctx, controller, address)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	return m.fatal
}
