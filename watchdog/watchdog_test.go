package watchdog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hostplay/hostplay/probe"
	"github.com/hostplay/hostplay/probe/probetest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWatchdog(t *testing.T) {
	ctx := context.Background()

	Convey("Given a watchdog over a playing track", t, func() {
		player := probetest.NewPlayer("A", "B")
		player.SetStep(0)
		player.SetPlaying(true)
		w := New(player, time.Millisecond, 1)

		Convey("When it is disarmed", func() {
			Convey("Then its channel should be nil", func() {
				So(w.Armed(), ShouldBeFalse)
				So(w.C(), ShouldBeNil)
			})

			Convey("Then a tick should never report an end", func() {
				player.SetProgress(100)
				ended, err := w.Tick(ctx)
				So(err, ShouldBeNil)
				So(ended, ShouldBeFalse)
			})
		})

		Convey("When it is armed", func() {
			w.Arm()
			defer w.Disarm()

			Convey("Then ticks should be delivered", func() {
				select {
				case <-w.C():
				case <-time.After(time.Second):
					So("no tick", ShouldBeEmpty)
				}
			})

			Convey("And the track is far from the end", func() {
				player.SetProgress(42)
				ended, err := w.Tick(ctx)

				Convey("Then it should stay armed", func() {
					So(err, ShouldBeNil)
					So(ended, ShouldBeFalse)
					So(w.Armed(), ShouldBeTrue)
				})
			})

			Convey("And the track is within the threshold of its end", func() {
				player.SetProgress(99.5)
				ended, err := w.Tick(ctx)

				Convey("Then it should report the end exactly once", func() {
					So(err, ShouldBeNil)
					So(ended, ShouldBeTrue)
					So(w.Armed(), ShouldBeFalse)

					again, err := w.Tick(ctx)
					So(err, ShouldBeNil)
					So(again, ShouldBeFalse)
				})

				Convey("Then the player should be paused", func() {
					So(player.Playing(), ShouldBeFalse)
					So(player.Count(probe.Pause), ShouldEqual, 1)
				})
			})

			Convey("And the player already stopped at the end", func() {
				player.SetPlaying(false)
				player.SetProgress(100)
				ended, _ := w.Tick(ctx)

				Convey("Then it should not click pause", func() {
					So(ended, ShouldBeTrue)
					So(player.Count(probe.Pause), ShouldEqual, 0)
				})
			})

			Convey("And progress cannot be read", func() {
				player.ReadErr = errors.New("detached")
				ended, err := w.Tick(ctx)

				Convey("Then the error should be returned and the watchdog stay armed", func() {
					So(err, ShouldNotBeNil)
					So(ended, ShouldBeFalse)
					So(w.Armed(), ShouldBeTrue)
				})
			})
		})

		Convey("When it is disarmed after arming", func() {
			w.Arm()
			w.Disarm()

			Convey("Then no tick should be delivered", func() {
				So(w.C(), ShouldBeNil)
				So(w.Armed(), ShouldBeFalse)
			})
		})
	})
}
