package protocol

import (
	"encoding/json"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseCommand(t *testing.T) {
	Convey("Given a raw command name", t, func() {
		Convey("When it is known", func() {
			c, err := ParseCommand("BeginPlayback")

			Convey("Then it should resolve", func() {
				So(err, ShouldBeNil)
				So(c, ShouldEqual, BeginPlayback)
			})
		})

		Convey("When it is unknown", func() {
			_, err := ParseCommand("advance")

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestStatus(t *testing.T) {
	Convey("Each command should qualify its failures", t, func() {
		So(Advance.Status(), ShouldEqual, FailedToAdvance)
		So(BeginPlayback.Status(), ShouldEqual, FailedToStart)
		So(LeaveSession.Status(), ShouldEqual, FailedToLeave)
	})
}

func TestWire(t *testing.T) {
	Convey("Given an inbound message", t, func() {
		c, err := DecodeCommand([]byte(`{"command":"Advance"}`))

		Convey("Then the command should decode", func() {
			So(err, ShouldBeNil)
			So(c, ShouldEqual, Advance)
		})

		Convey("And malformed input should be rejected", func() {
			_, err := DecodeCommand([]byte(`{"command":`))
			So(err, ShouldNotBeNil)

			_, err = DecodeCommand([]byte(`{"command":"Rewind"}`))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given an Advanced event without artist", t, func() {
		data, err := EncodeEvent(Advanced(TrackInfo{Title: "B", Artist: mo.None[string]()}))
		So(err, ShouldBeNil)

		Convey("Then the artist should be omitted", func() {
			So(string(data), ShouldEqual, `{"event":"Advanced","payload":{"title":"B"}}`)
		})
	})

	Convey("Given an Advanced event with artist", t, func() {
		event := Advanced(TrackInfo{Title: "B", Artist: mo.Some("Band")})
		data, err := EncodeEvent(event)
		So(err, ShouldBeNil)

		Convey("Then it should decode to the same event", func() {
			decoded, err := DecodeEvent(data)
			So(err, ShouldBeNil)
			So(decoded.Kind, ShouldEqual, KindAdvanced)
			So(decoded.Track.Title, ShouldEqual, "B")
			So(decoded.Track.Artist.OrEmpty(), ShouldEqual, "Band")
		})
	})

	Convey("Given a Failed event", t, func() {
		data, err := EncodeEvent(Failed(BeginPlayback, Timeout))
		So(err, ShouldBeNil)

		Convey("Then the error should carry the qualified status", func() {
			var raw struct {
				Error map[string]string `json:"error"`
			}
			So(json.Unmarshal(data, &raw), ShouldBeNil)
			So(raw.Error["command"], ShouldEqual, "BeginPlayback")
			So(raw.Error["reason"], ShouldEqual, "Timeout")
			So(raw.Error["status"], ShouldEqual, "FailedToStart")
		})
	})

	Convey("Given an Advanced wire event without a title", t, func() {
		_, err := DecodeEvent([]byte(`{"event":"Advanced","payload":{"title":""}}`))

		Convey("Then it should be rejected", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("The schemas should describe the wire fields", t, func() {
		in, err := json.Marshal(InboundSchema())
		So(err, ShouldBeNil)
		So(string(in), ShouldContainSubstring, "BeginPlayback")

		out, err := json.Marshal(OutboundSchema())
		So(err, ShouldBeNil)
		So(string(out), ShouldContainSubstring, "TrackEnded")
		So(string(out), ShouldContainSubstring, "FailedToAdvance")
	})
}
