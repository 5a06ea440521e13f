package filesystem

import (
	"io"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestBackend(t *testing.T) {
	Convey("Given an in-memory backend", t, func() {
		SetMemMapFs()
		Reset(SetOsFs)

		Convey("When a cache file is written through GacheFs", func() {
			cache := GacheFs{}
			So(cache.MkdirAll("/cache/hostplay", 0o755), ShouldBeNil)

			file, err := cache.OpenFile("/cache/hostplay/history.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = io.WriteString(file, `{"radio":{}}`)
			So(err, ShouldBeNil)
			So(file.Close(), ShouldBeNil)

			Convey("Then it should be readable through the API", func() {
				data, err := API().ReadFile("/cache/hostplay/history.json")
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `{"radio":{}}`)
			})

			Convey("Then a fresh backend should not see it", func() {
				SetMemMapFs()
				exists, err := API().Exists("/cache/hostplay/history.json")
				So(err, ShouldBeNil)
				So(exists, ShouldBeFalse)
			})
		})

		Convey("When a missing cache file is opened for reading", func() {
			_, err := GacheFs{}.OpenFile("/cache/none.json", os.O_RDONLY, 0)

			Convey("Then the error should wrap the not-exist error", func() {
				So(err, ShouldWrap, os.ErrNotExist)
			})
		})

		Convey("When a read-only view is used", func() {
			So(API().WriteFile("/backends/radio.lua", []byte("Backend = {}"), 0o644), ShouldBeNil)
			Use(afero.NewReadOnlyFs(API().Fs))

			Convey("Then reads should succeed and writes fail", func() {
				_, err := API().ReadFile("/backends/radio.lua")
				So(err, ShouldBeNil)
				So(API().WriteFile("/backends/other.lua", nil, 0o644), ShouldNotBeNil)
			})
		})
	})

	Convey("The real filesystem should be the default after a reset", t, func() {
		SetOsFs()
		So(API().Name(), ShouldEqual, "OsFs")
	})
}
