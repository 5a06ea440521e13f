package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hostplay/hostplay/internal/ui"
	"github.com/hostplay/hostplay/protocol"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeController struct {
	mu     sync.Mutex
	sent   []protocol.Command
	events chan protocol.Event
	err    error
}

func (f *fakeController) Send(_ context.Context, command protocol.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, command)
	return nil
}

func (f *fakeController) Next(ctx context.Context) (protocol.Event, error) {
	select {
	case event, ok := <-f.events:
		if !ok {
			return protocol.Event{}, io.EOF
		}
		return event, nil
	case <-ctx.Done():
		return protocol.Event{}, ctx.Err()
	}
}

func press(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func feed(m *model, msg tea.Msg) tea.Msg {
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestRemote(t *testing.T) {
	Convey("Given a remote attached to a controller", t, func() {
		controller := &fakeController{events: make(chan protocol.Event, 4)}
		m := newModel(context.Background(), controller, "localhost:6677")
		m.resize(80, 30)

		Convey("When advance is pressed", func() {
			reply := feed(m, press('n'))

			Convey("Then the command is sent and awaited", func() {
				So(reply, ShouldEqual, sentMsg(protocol.Advance))
				So(controller.sent, ShouldResemble, []protocol.Command{protocol.Advance})
				So(m.pending, ShouldResemble, mo.Some(protocol.Advance))
				So(m.View(), ShouldContainSubstring, "advancing")
			})

			Convey("And advance is pressed again before the answer", func() {
				reply := feed(m, press('n'))

				Convey("Then nothing more is sent", func() {
					So(reply, ShouldEqual, ui.NotifyMsg("waiting for Advance"))
					So(controller.sent, ShouldHaveLength, 1)
				})
			})

			Convey("And the driver staged a track", func() {
				artist := "Artist B"
				feed(m, sentMsg(protocol.Advance))
				m.Update(eventMsg(protocol.Advanced(protocol.TrackInfo{Title: "B", Artist: mo.Some(artist)})))

				Convey("Then the track is shown as staged", func() {
					So(m.pending.IsAbsent(), ShouldBeTrue)
					So(m.session, ShouldEqual, staged)
					So(m.View(), ShouldContainSubstring, "B")
					So(m.renderLog(), ShouldContainSubstring, "staged")
				})

				Convey("And playback begins", func() {
					feed(m, press('p'))
					m.Update(eventMsg(protocol.Started()))

					So(controller.sent, ShouldResemble, []protocol.Command{protocol.Advance, protocol.BeginPlayback})
					So(m.session, ShouldEqual, playing)
					So(m.pending.IsAbsent(), ShouldBeTrue)

					Convey("Then the end of the track returns to idle", func() {
						m.Update(eventMsg(protocol.TrackEnded()))

						So(m.session, ShouldEqual, idle)
						So(m.renderLog(), ShouldContainSubstring, "track ended")
					})
				})
			})

			Convey("And the driver failed it", func() {
				m.Update(eventMsg(protocol.Failed(protocol.Advance, protocol.Timeout)))

				So(m.pending.IsAbsent(), ShouldBeTrue)
				So(m.session, ShouldEqual, idle)
				So(m.renderLog(), ShouldContainSubstring, string(protocol.Timeout))
			})

			Convey("And leave is pressed", func() {
				reply := feed(m, press('l'))

				Convey("Then the pending command is abandoned", func() {
					So(reply, ShouldEqual, sentMsg(protocol.LeaveSession))
					So(m.pending.IsAbsent(), ShouldBeTrue)
					So(controller.sent, ShouldResemble, []protocol.Command{protocol.Advance, protocol.LeaveSession})
				})
			})
		})

		Convey("When sending fails", func() {
			controller.err = errors.New("broken pipe")
			reply := feed(m, press('n'))
			m.Update(reply)

			Convey("Then the failure is logged and nothing is pending", func() {
				So(m.pending.IsAbsent(), ShouldBeTrue)
				So(m.renderLog(), ShouldContainSubstring, "broken pipe")
			})
		})

		Convey("When the events stream ends", func() {
			close(controller.events)
			msg := m.waitEvent()()

			Convey("Then the remote quits cleanly", func() {
				So(feed(m, msg), ShouldResemble, tea.Quit())
				So(m.fatal, ShouldBeNil)
			})
		})

		Convey("When the connection drops with an error", func() {
			_, cmd := m.Update(fatalMsg{errors.New("reset by peer")})

			So(cmd(), ShouldResemble, tea.Quit())
			So(m.fatal, ShouldBeError, "reset by peer")
		})

		Convey("When help is toggled", func() {
			short := m.View()
			feed(m, press('?'))

			So(m.helpC.ShowAll, ShouldBeTrue)
			So(strings.Count(m.View(), "\n"), ShouldBeGreaterThanOrEqualTo, strings.Count(short, "\n"))
		})
	})
}

func TestAnswers(t *testing.T) {
	Convey("Given the events a driver emits", t, func() {
		Convey("Then only the matching reply settles a command", func() {
			So(answers(protocol.Advance, protocol.Advanced(protocol.TrackInfo{Title: "A"})), ShouldBeTrue)
			So(answers(protocol.BeginPlayback, protocol.Started()), ShouldBeTrue)
			So(answers(protocol.BeginPlayback, protocol.Failed(protocol.BeginPlayback, protocol.ProtocolViolation)), ShouldBeTrue)
			So(answers(protocol.Advance, protocol.Failed(protocol.BeginPlayback, protocol.ProtocolViolation)), ShouldBeFalse)
			So(answers(protocol.BeginPlayback, protocol.TrackEnded()), ShouldBeFalse)
		})
	})
}

func TestLog(t *testing.T) {
	Convey("Given a remote that recorded more entries than it keeps", t, func() {
		controller := &fakeController{events: make(chan protocol.Event, 1)}
		m := newModel(context.Background(), controller, "localhost:6677")
		m.resize(80, 30)

		for i := 0; i < logLimit+20; i++ {
			m.record(fmt.Sprintf("entry %d", i))
		}

		Convey("Then only the latest entries should be kept", func() {
			So(m.log, ShouldHaveLength, logLimit)
			So(m.log[0].text, ShouldEqual, "entry 20")
			So(m.log[logLimit-1].text, ShouldEqual, fmt.Sprintf("entry %d", logLimit+19))
		})
	})
}
