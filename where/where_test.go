package where

import (
	"path/filepath"
	"testing"

	"github.com/hostplay/hostplay/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override", func() {
			t.Setenv(EnvConfigPath, "/tmp/hostplay-test-config")
			So(Config(), ShouldEqual, "/tmp/hostplay-test-config")
			So(Backends(), ShouldEqual, filepath.Join("/tmp/hostplay-test-config", "backends"))
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Profile() and Backends() live under Config()", func() {
			So(filepath.Dir(Profile()), ShouldEqual, Config())
			So(filepath.Dir(Backends()), ShouldEqual, Config())
		})
	})
}
