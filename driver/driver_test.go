package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hostplay/hostplay/probe"
	"github.com/hostplay/hostplay/probe/probetest"
	"github.com/hostplay/hostplay/protocol"
	. "github.com/smartystreets/goconvey/convey"
)

const eventTimeout = 2 * time.Second

func testConfig() Config {
	return Config{
		PollInterval:      time.Millisecond,
		PollRounds:        40,
		AfterPauseDelay:   time.Millisecond,
		MovementInterval:  time.Millisecond,
		MovementRounds:    50,
		MovementAttempts:  2,
		MovementDistinct:  4,
		PauseRounds:       10,
		QueueSize:         8,
		WatchdogInterval:  20 * time.Millisecond,
		WatchdogThreshold: 1,
	}
}

// start runs a driver until the enclosing Convey block resets.
func start(p probe.Probe, family Family, config Config) *Driver {
	d := New(p, family, config)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = d.Run(ctx) }()
	Reset(func() {
		cancel()
		<-d.Done()
	})

	return d
}

func send(d *Driver, command protocol.Command) {
	So(d.Submit(context.Background(), command), ShouldBeNil)
}

func nextEvent(d *Driver) protocol.Event {
	select {
	case event := <-d.Events():
		return event
	case <-time.After(eventTimeout):
		return protocol.Event{Kind: "none"}
	}
}

// quiet reports whether no event arrives within wait.
func quiet(d *Driver, wait time.Duration) bool {
	select {
	case <-d.Events():
		return false
	case <-time.After(wait):
		return true
	}
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(eventTimeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}

	return false
}

func TestPeekAndRewind(t *testing.T) {
	Convey("Given a peek-and-rewind player paused on track A", t, func() {
		player := probetest.NewPlayer("A", "B", "C")
		player.NextPlays = true
		player.SetProgress(50)
		d := start(player, Peek, testConfig())

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then the next track should be reported", func() {
				So(event.Kind, ShouldEqual, protocol.KindAdvanced)
				So(event.Track.Title, ShouldEqual, "B")
				So(event.Track.Artist.IsAbsent(), ShouldBeTrue)
			})

			Convey("Then the page should be left on track A, paused", func() {
				So(player.Index(), ShouldEqual, 0)
				So(player.Playing(), ShouldBeFalse)
				So(player.Invoked(), ShouldResemble, []probe.Action{probe.Next, probe.Previous, probe.Pause})
				So(d.State(), ShouldEqual, Stopped)
			})

			Convey("And BeginPlayback is sent", func() {
				send(d, protocol.BeginPlayback)
				event := nextEvent(d)

				Convey("Then the staged track should play", func() {
					So(event.Kind, ShouldEqual, protocol.KindStarted)
					So(player.Index(), ShouldEqual, 1)
					So(player.Playing(), ShouldBeTrue)
					So(d.State(), ShouldEqual, Playing)
				})

				Convey("And the track reaches its end", func() {
					player.SetStep(0)
					player.SetProgress(99.5)
					event := nextEvent(d)

					Convey("Then TrackEnded should be emitted once", func() {
						So(event.Kind, ShouldEqual, protocol.KindTrackEnded)
						So(quiet(d, 30*time.Millisecond), ShouldBeTrue)
						So(d.State(), ShouldEqual, Idle)
						So(player.Playing(), ShouldBeFalse)
					})
				})

				Convey("And LeaveSession is sent", func() {
					send(d, protocol.LeaveSession)

					Convey("Then playback should stop without any event", func() {
						So(eventually(func() bool { return !player.Playing() && d.State() == Idle }), ShouldBeTrue)

						player.SetStep(0)
						player.SetProgress(99.9)
						So(quiet(d, 30*time.Millisecond), ShouldBeTrue)
					})
				})

				Convey("And Advance is sent while playing", func() {
					send(d, protocol.Advance)
					event := nextEvent(d)

					Convey("Then the player should be paused first and the following track staged", func() {
						So(event.Kind, ShouldEqual, protocol.KindAdvanced)
						So(event.Track.Title, ShouldEqual, "C")
						So(player.Index(), ShouldEqual, 1)
						So(player.Playing(), ShouldBeFalse)
						So(d.State(), ShouldEqual, Stopped)
					})
				})
			})
		})
	})

	Convey("Given a peek-and-rewind player exposing the artist", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.NextPlays = true
		player.ShowArtist = true
		d := start(player, PeekArtist, testConfig())

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then the artist should be reported", func() {
				So(event.Kind, ShouldEqual, protocol.KindAdvanced)
				So(event.Track.Title, ShouldEqual, "B")
				So(event.Track.Artist.OrEmpty(), ShouldEqual, "Artist B")
			})
		})
	})

	Convey("Given a peek-and-rewind player hiding the peeked title", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.NextPlays = true
		player.HideTitle = true
		d := start(player, Peek, testConfig())

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then it should fail with TitleNotFound after pausing", func() {
				So(event, ShouldResemble, protocol.Failed(protocol.Advance, protocol.TitleNotFound))
				So(player.Playing(), ShouldBeFalse)
				So(d.State(), ShouldEqual, Idle)
			})
		})
	})

	Convey("Given a peek-and-rewind player whose pause takes a few clicks", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.NextPlays = true
		player.PauseLag = 3
		d := start(player, Peek, testConfig())

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then pause should be clicked until it takes effect", func() {
				So(event.Kind, ShouldEqual, protocol.KindAdvanced)
				So(player.Count(probe.Pause), ShouldEqual, 4)
				So(player.Playing(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a peek-and-rewind player whose pause outlasts the pause budget", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.NextPlays = true
		config := testConfig()
		player.PauseLag = config.PauseRounds + 10
		d := start(player, Peek, config)

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then it should time out and go back to idle", func() {
				So(event, ShouldResemble, protocol.Failed(protocol.Advance, protocol.Timeout))
				So(player.Count(probe.Pause), ShouldEqual, config.PauseRounds+1)
				So(d.State(), ShouldEqual, Idle)
			})
		})
	})

	Convey("Given a peek-and-rewind player whose progress never moves", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.Frozen = true
		d := start(player, Peek, testConfig())

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then next should be clicked twice before timing out", func() {
				So(event, ShouldResemble, protocol.Failed(protocol.Advance, protocol.Timeout))
				So(player.Count(probe.Next), ShouldEqual, 2)
				So(d.State(), ShouldEqual, Idle)
			})
		})
	})

	Convey("Given a peek-and-rewind player with an empty play bar", t, func() {
		player := probetest.NewPlayer("A", "B").Unready()
		player.NextPlays = true
		d := start(player, Peek, testConfig())

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then the playlist should be started before peeking", func() {
				So(event.Kind, ShouldEqual, protocol.KindAdvanced)
				So(event.Track.Title, ShouldEqual, "B")
				So(player.Invoked()[0], ShouldEqual, probe.StartPlaylist)
				So(player.Index(), ShouldEqual, 0)
				So(player.Playing(), ShouldBeFalse)
			})
		})
	})
}

func TestDirectAdvance(t *testing.T) {
	Convey("Given a direct-advance player paused on track A", t, func() {
		player := probetest.NewPlayer("A", "B")
		d := start(player, Direct, testConfig())

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then the new title should be reported", func() {
				So(event.Kind, ShouldEqual, protocol.KindAdvanced)
				So(event.Track.Title, ShouldEqual, "B")
				So(player.Index(), ShouldEqual, 1)
				So(d.State(), ShouldEqual, Stopped)
			})

			Convey("And BeginPlayback is sent", func() {
				send(d, protocol.BeginPlayback)
				event := nextEvent(d)

				Convey("Then play should be clicked", func() {
					So(event.Kind, ShouldEqual, protocol.KindStarted)
					So(player.Playing(), ShouldBeTrue)
					So(player.Count(probe.Play), ShouldEqual, 1)
					So(d.State(), ShouldEqual, Playing)
				})
			})
		})
	})

	Convey("Given a direct-advance player with an empty play bar", t, func() {
		player := probetest.NewPlayer("A", "B").Unready()
		d := start(player, Direct, testConfig())

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then the first track of the started playlist should be reported", func() {
				So(event.Kind, ShouldEqual, protocol.KindAdvanced)
				So(event.Track.Title, ShouldEqual, "A")
				So(player.Invoked(), ShouldResemble, []probe.Action{probe.StartPlaylist, probe.Pause})
				So(player.Playing(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a direct-advance player without a next button", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.Missing[probe.Next] = true
		d := start(player, Direct, testConfig())

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then it should fail with SelectorNotFound", func() {
				So(event, ShouldResemble, protocol.Failed(protocol.Advance, protocol.SelectorNotFound))
				So(d.State(), ShouldEqual, Idle)
			})
		})
	})

	Convey("Given a direct-advance player that loses its title", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.HideTitle = true
		d := start(player, Direct, testConfig())

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then it should fail with TitleNotFound rather than report an empty track", func() {
				So(event, ShouldResemble, protocol.Failed(protocol.Advance, protocol.TitleNotFound))
			})
		})
	})

	Convey("Given a direct-advance player ignoring clicks", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.Frozen = true
		config := testConfig()
		config.PollRounds = 10
		d := start(player, Direct, config)

		Convey("When Advance is sent", func() {
			send(d, protocol.Advance)
			event := nextEvent(d)

			Convey("Then it should time out", func() {
				So(event, ShouldResemble, protocol.Failed(protocol.Advance, protocol.Timeout))
			})
		})
	})
}

func TestBeginPlayback(t *testing.T) {
	Convey("Given a direct-advance player", t, func() {
		player := probetest.NewPlayer("A", "B")
		d := start(player, Direct, testConfig())

		Convey("When BeginPlayback is sent before any Advance", func() {
			send(d, protocol.BeginPlayback)
			event := nextEvent(d)

			Convey("Then it should be a protocol violation", func() {
				So(event, ShouldResemble, protocol.Failed(protocol.BeginPlayback, protocol.ProtocolViolation))
				So(player.Playing(), ShouldBeFalse)
				So(d.State(), ShouldEqual, Idle)
			})
		})

		Convey("When the player starts on its own after Advance", func() {
			send(d, protocol.Advance)
			So(nextEvent(d).Kind, ShouldEqual, protocol.KindAdvanced)
			player.SetPlaying(true)

			send(d, protocol.BeginPlayback)
			event := nextEvent(d)

			Convey("Then BeginPlayback should be refused", func() {
				So(event, ShouldResemble, protocol.Failed(protocol.BeginPlayback, protocol.ProtocolViolation))
				So(d.State(), ShouldEqual, Stopped)
			})
		})

		Convey("When the play button is missing", func() {
			player.Missing[probe.Play] = true
			send(d, protocol.Advance)
			So(nextEvent(d).Kind, ShouldEqual, protocol.KindAdvanced)

			send(d, protocol.BeginPlayback)
			event := nextEvent(d)

			Convey("Then it should fail with SelectorNotFound and keep the staged track", func() {
				So(event, ShouldResemble, protocol.Failed(protocol.BeginPlayback, protocol.SelectorNotFound))
				So(d.State(), ShouldEqual, Stopped)
			})
		})
	})
}

func TestLeaveSession(t *testing.T) {
	Convey("Given a driver stuck in a long Advance", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.Frozen = true
		config := testConfig()
		config.PollRounds = 5000
		d := start(player, Direct, config)

		send(d, protocol.Advance)
		So(eventually(func() bool { return d.State() == AwaitingAdvance }), ShouldBeTrue)

		Convey("When LeaveSession is sent", func() {
			send(d, protocol.LeaveSession)

			Convey("Then the Advance should be abandoned without any event", func() {
				So(eventually(func() bool { return d.State() == Idle }), ShouldBeTrue)
				So(quiet(d, 50*time.Millisecond), ShouldBeTrue)
			})
		})
	})

	Convey("Given a playing track without a pause control", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.Missing[probe.Pause] = true
		player.SetPlaying(true)
		d := start(player, Direct, testConfig())

		Convey("When LeaveSession is sent", func() {
			send(d, protocol.LeaveSession)
			event := nextEvent(d)

			Convey("Then the failed pause should be reported", func() {
				So(event, ShouldResemble, protocol.Failed(protocol.LeaveSession, protocol.SelectorNotFound))
				So(d.State(), ShouldEqual, Idle)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running driver over a playing track", t, func() {
		player := probetest.NewPlayer("A")
		player.SetPlaying(true)
		d := New(player, Direct, testConfig())
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- d.Run(ctx) }()

		Convey("When it is stopped", func() {
			cancel()
			err := <-done

			Convey("Then it should pause and close", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(player.Playing(), ShouldBeFalse)
				So(d.Submit(context.Background(), protocol.Advance), ShouldEqual, ErrClosed)

				_, open := <-d.Events()
				So(open, ShouldBeFalse)
			})
		})

		Convey("When Run is called twice", func() {
			err := d.Run(ctx)

			Convey("Then the second call should fail", func() {
				So(err, ShouldNotBeNil)
			})

			cancel()
			<-done
		})
	})
}

func TestRunCancelled(t *testing.T) {
	Convey("Given a driver with a full queue of Advances", t, func() {
		player := probetest.NewPlayer("A", "B", "C")
		config := testConfig()
		d := New(player, Direct, config)
		for i := 0; i < config.QueueSize; i++ {
			send(d, protocol.Advance)
		}

		Convey("When it runs with an already cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := d.Run(ctx)

			Convey("Then no queued command should touch the player", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(player.Invoked(), ShouldBeEmpty)
				So(player.Index(), ShouldEqual, 0)

				_, open := <-d.Events()
				So(open, ShouldBeFalse)
			})
		})
	})
}

func TestParseFamily(t *testing.T) {
	Convey("Family names should resolve", t, func() {
		f, err := ParseFamily("peek-artist")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, PeekArtist)

		_, err = ParseFamily("shuffle")
		So(err, ShouldNotBeNil)
	})
}
