package channel

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hostplay/hostplay/driver"
	"github.com/hostplay/hostplay/probe"
	"github.com/hostplay/hostplay/probe/probetest"
	"github.com/hostplay/hostplay/protocol"
	. "github.com/smartystreets/goconvey/convey"
)

func testConfig() driver.Config {
	config := driver.DefaultConfig()
	config.PollInterval = time.Millisecond
	config.AfterPauseDelay = time.Millisecond
	config.MovementInterval = time.Millisecond
	return config
}

func peekPlayer() *probetest.Player {
	player := probetest.NewPlayer("A", "B", "C")
	player.NextPlays = true
	return player
}

func TestServePipe(t *testing.T) {
	Convey("Given a driver served over a pipe", t, func() {
		player := peekPlayer()
		pipe := NewPipe(4)
		d := driver.New(player, driver.Peek, testConfig())

		served := make(chan error, 1)
		go func() {
			served <- Serve(context.Background(), d, pipe)
		}()

		Convey("When the controller advances and starts playback", func() {
			ctx := context.Background()

			So(pipe.Send(ctx, protocol.Advance), ShouldBeNil)
			advanced := <-pipe.Events()

			So(pipe.Send(ctx, protocol.BeginPlayback), ShouldBeNil)
			started := <-pipe.Events()

			Convey("Then the events should arrive in order", func() {
				So(advanced.Kind, ShouldEqual, protocol.KindAdvanced)
				So(advanced.Track.Title, ShouldEqual, "B")
				So(started.Kind, ShouldEqual, protocol.KindStarted)
				So(player.Playing(), ShouldBeTrue)
			})

			Convey("And the controller detaches", func() {
				So(pipe.Close(), ShouldBeNil)

				Convey("Then serving should end and the track be paused", func() {
					So(<-served, ShouldBeNil)
					So(player.Playing(), ShouldBeFalse)
				})
			})
		})

		Reset(func() {
			_ = pipe.Close()
		})
	})
}

func TestWebsocket(t *testing.T) {
	Convey("Given a websocket server protected by a token", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		player := peekPlayer()

		controllers := NewServer(ctx, "secret", func(ctx context.Context, t Transport) error {
			return Serve(ctx, driver.New(player, driver.Peek, testConfig()), t)
		})
		server := httptest.NewServer(controllers)
		address := strings.TrimPrefix(server.URL, "http://")

		Reset(func() {
			cancel()
			server.Close()
		})

		Convey("When a controller connects with the token", func() {
			client, err := Dial(ctx, address, "secret")
			So(err, ShouldBeNil)
			defer client.Close()

			So(client.Send(ctx, protocol.Advance), ShouldBeNil)
			event, err := client.Next(ctx)

			Convey("Then it should receive the staged track", func() {
				So(err, ShouldBeNil)
				So(event.Kind, ShouldEqual, protocol.KindAdvanced)
				So(event.Track.Title, ShouldEqual, "B")
			})

			Convey("And a second controller tries to attach", func() {
				_, err := Dial(ctx, address, "secret")

				Convey("Then it should be refused", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "409")
				})
			})

			Convey("And BeginPlayback is sent twice", func() {
				So(client.Send(ctx, protocol.BeginPlayback), ShouldBeNil)
				started, err := client.Next(ctx)
				So(err, ShouldBeNil)

				So(client.Send(ctx, protocol.BeginPlayback), ShouldBeNil)
				refused, err := client.Next(ctx)
				So(err, ShouldBeNil)

				Convey("Then the second one should fail as a protocol violation", func() {
					So(started.Kind, ShouldEqual, protocol.KindStarted)
					So(refused, ShouldResemble, protocol.Failed(protocol.BeginPlayback, protocol.ProtocolViolation))
				})
			})
		})

		Convey("When one controller advances and a second one then begins playback", func() {
			first, err := Dial(ctx, address, "secret")
			So(err, ShouldBeNil)
			advanced, err := first.Do(ctx, protocol.Advance)
			So(err, ShouldBeNil)
			So(first.Close(), ShouldBeNil)

			waitCtx, done := context.WithTimeout(ctx, 5*time.Second)
			defer done()
			So(controllers.Wait(waitCtx), ShouldBeNil)

			second, err := Dial(ctx, address, "secret")
			So(err, ShouldBeNil)
			defer second.Close()
			refused, err := second.Do(ctx, protocol.BeginPlayback)
			So(err, ShouldBeNil)

			Convey("Then the second controller should start from a fresh session", func() {
				So(advanced.MustGet().Track.Title, ShouldEqual, "B")
				So(refused.MustGet(), ShouldResemble, protocol.Failed(protocol.BeginPlayback, protocol.ProtocolViolation))
				So(player.Index(), ShouldEqual, 0)
				So(player.Playing(), ShouldBeFalse)
			})

			Convey("And it advances before beginning playback", func() {
				_, err := second.Do(ctx, protocol.Advance)
				So(err, ShouldBeNil)
				started, err := second.Do(ctx, protocol.BeginPlayback)
				So(err, ShouldBeNil)

				Convey("Then the track staged on its own connection should play", func() {
					So(started.MustGet().Kind, ShouldEqual, protocol.KindStarted)
					So(player.Index(), ShouldEqual, 1)
					So(player.Playing(), ShouldBeTrue)
				})
			})
		})

		Convey("When a controller connects without the token", func() {
			_, err := Dial(ctx, address, "")

			Convey("Then it should be unauthorized", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "401")
			})
		})

		Convey("When a controller sends garbage before a command", func() {
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, "ws://"+address+Path+"?token=secret", nil)
			So(err, ShouldBeNil)
			defer conn.Close()

			So(conn.WriteMessage(websocket.TextMessage, []byte(`{"command":"Rewind"}`)), ShouldBeNil)
			So(conn.WriteMessage(websocket.TextMessage, []byte(`{"command":"Advance"}`)), ShouldBeNil)

			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			_, data, err := conn.ReadMessage()

			Convey("Then the garbage should be ignored", func() {
				So(err, ShouldBeNil)
				event, err := protocol.DecodeEvent(data)
				So(err, ShouldBeNil)
				So(event.Kind, ShouldEqual, protocol.KindAdvanced)
			})
		})

		Convey("When the controller disconnects while playing", func() {
			client, err := Dial(ctx, address, "secret")
			So(err, ShouldBeNil)

			So(client.Send(ctx, protocol.Advance), ShouldBeNil)
			_, err = client.Next(ctx)
			So(err, ShouldBeNil)
			So(client.Send(ctx, protocol.BeginPlayback), ShouldBeNil)
			_, err = client.Next(ctx)
			So(err, ShouldBeNil)

			So(client.Close(), ShouldBeNil)

			Convey("Then playback should be paused", func() {
				deadline := time.Now().Add(5 * time.Second)
				for player.Playing() && time.Now().Before(deadline) {
					time.Sleep(5 * time.Millisecond)
				}

				So(player.Playing(), ShouldBeFalse)
				So(player.Count(probe.Pause), ShouldBeGreaterThan, 1)
			})
		})

		Convey("When the server shuts down while a controller is playing", func() {
			client, err := Dial(ctx, address, "secret")
			So(err, ShouldBeNil)
			defer client.Close()

			So(client.Send(ctx, protocol.Advance), ShouldBeNil)
			_, err = client.Next(ctx)
			So(err, ShouldBeNil)
			So(client.Send(ctx, protocol.BeginPlayback), ShouldBeNil)
			_, err = client.Next(ctx)
			So(err, ShouldBeNil)

			cancel()
			waitCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()

			Convey("Then waiting should return once the session paused", func() {
				So(controllers.Wait(waitCtx), ShouldBeNil)
				So(player.Playing(), ShouldBeFalse)
			})

			Convey("Then new controllers should be turned away", func() {
				_, err := Dial(context.Background(), address, "secret")
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "503")
			})
		})
	})
}

func TestCheckSequence(t *testing.T) {
	Convey("Command sequences for one connection should be checked", t, func() {
		So(CheckSequence([]protocol.Command{protocol.Advance}), ShouldBeNil)
		So(CheckSequence([]protocol.Command{protocol.Advance, protocol.BeginPlayback}), ShouldBeNil)
		So(CheckSequence([]protocol.Command{protocol.Advance, protocol.BeginPlayback, protocol.Advance, protocol.BeginPlayback}), ShouldBeNil)
		So(CheckSequence([]protocol.Command{protocol.LeaveSession}), ShouldBeNil)

		So(CheckSequence(nil), ShouldNotBeNil)
		So(CheckSequence([]protocol.Command{protocol.BeginPlayback}), ShouldNotBeNil)
		So(CheckSequence([]protocol.Command{protocol.Advance, protocol.BeginPlayback, protocol.BeginPlayback}), ShouldNotBeNil)
		So(CheckSequence([]protocol.Command{protocol.Advance, protocol.LeaveSession, protocol.BeginPlayback}), ShouldNotBeNil)
	})
}
